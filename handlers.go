package gesture

import "time"

// Handlers holds optional per-kind callbacks. Nil fields are skipped.
type Handlers struct {
	OnTap            func(Event)
	OnDoubleTap      func(Event)
	OnLongPressStart func(Event)
	OnLongPressEnd   func(Event)
	// OnSwipe receives all four directions; inspect Event.Kind.
	OnSwipe func(Event)
	OnPinch func(Event)
	// OnPan receives begin, change and end phases.
	OnPan func(Event)

	OnTouchStart  func(TouchContext)
	OnTouchMove   func(TouchContext)
	OnTouchEnd    func(TouchContext)
	OnTouchCancel func(TouchContext)
}

// --- Handler registry ---

type gestureHandler struct {
	id uint32
	fn func(Event)
}

type touchHandler struct {
	id uint32
	fn func(TouchContext)
}

type handlerRegistry struct {
	gesture []gestureHandler
	touch   []touchHandler
	nextID  uint32

	// dispatching counts nested dispatch loops. While non-zero, Remove
	// only clears fn and compaction waits for the outermost loop to end.
	dispatching int
	dirty       bool
}

type handlerKind uint8

const (
	handlerGesture handlerKind = iota
	handlerTouch
)

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires. Removing twice
// is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.reg.dispatching > 0 {
		h.reg.markRemoved(h.kind, h.id)
		return
	}
	switch h.kind {
	case handlerGesture:
		h.reg.gesture = removeGestureHandler(h.reg.gesture, h.id)
	case handlerTouch:
		h.reg.touch = removeTouchHandler(h.reg.touch, h.id)
	}
}

func (reg *handlerRegistry) markRemoved(kind handlerKind, id uint32) {
	switch kind {
	case handlerGesture:
		for i := range reg.gesture {
			if reg.gesture[i].id == id {
				reg.gesture[i].fn = nil
				reg.dirty = true
			}
		}
	case handlerTouch:
		for i := range reg.touch {
			if reg.touch[i].id == id {
				reg.touch[i].fn = nil
				reg.dirty = true
			}
		}
	}
}

func (reg *handlerRegistry) begin() {
	reg.dispatching++
}

// end closes a dispatch loop and drops entries removed during it.
func (reg *handlerRegistry) end() {
	reg.dispatching--
	if reg.dispatching > 0 || !reg.dirty {
		return
	}
	reg.dirty = false
	g := reg.gesture[:0]
	for _, h := range reg.gesture {
		if h.fn != nil {
			g = append(g, h)
		}
	}
	clear(reg.gesture[len(g):])
	reg.gesture = g
	t := reg.touch[:0]
	for _, h := range reg.touch {
		if h.fn != nil {
			t = append(t, h)
		}
	}
	clear(reg.touch[len(t):])
	reg.touch = t
}

func removeGestureHandler(s []gestureHandler, id uint32) []gestureHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeTouchHandler(s []touchHandler, id uint32) []touchHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = touchHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnGesture registers a callback for every classified gesture.
func (r *Recognizer) OnGesture(fn func(Event)) CallbackHandle {
	r.handlers.nextID++
	id := r.handlers.nextID
	r.handlers.gesture = append(r.handlers.gesture, gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &r.handlers, kind: handlerGesture}
}

// OnTouch registers a callback for every raw contact event.
func (r *Recognizer) OnTouch(fn func(TouchContext)) CallbackHandle {
	r.handlers.nextID++
	id := r.handlers.nextID
	r.handlers.touch = append(r.handlers.touch, touchHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &r.handlers, kind: handlerTouch}
}

// --- Dispatch ---

// emit runs the per-kind handler, the registered gesture handlers, the
// event sink and, for feedback-worthy gestures, haptics.
func (r *Recognizer) emit(ev Event) {
	ev.Session = r.session.id
	r.logEvent(ev)

	h := &r.Handlers
	switch {
	case ev.Kind == KindTap:
		if h.OnTap != nil {
			h.OnTap(ev)
		}
	case ev.Kind == KindDoubleTap:
		if h.OnDoubleTap != nil {
			h.OnDoubleTap(ev)
		}
	case ev.Kind == KindLongPress && ev.Phase == PhaseBegin:
		if h.OnLongPressStart != nil {
			h.OnLongPressStart(ev)
		}
	case ev.Kind == KindLongPress:
		if h.OnLongPressEnd != nil {
			h.OnLongPressEnd(ev)
		}
	case ev.Kind.IsSwipe():
		if h.OnSwipe != nil {
			h.OnSwipe(ev)
		}
	case ev.Kind == KindPinch:
		if h.OnPinch != nil {
			h.OnPinch(ev)
		}
	case ev.Kind == KindPan:
		if h.OnPan != nil {
			h.OnPan(ev)
		}
	}

	reg := &r.handlers
	reg.begin()
	for i, n := 0, len(reg.gesture); i < n; i++ {
		if fn := reg.gesture[i].fn; fn != nil {
			fn(ev)
		}
	}
	reg.end()
	if r.sink != nil {
		r.sink.EmitGesture(ev)
	}

	if wantsHaptic(ev) {
		r.vibrate()
	}
}

func wantsHaptic(ev Event) bool {
	switch {
	case ev.Kind == KindTap, ev.Kind == KindDoubleTap, ev.Kind.IsSwipe():
		return true
	case ev.Kind == KindLongPress:
		return ev.Phase == PhaseBegin
	}
	return false
}

func (r *Recognizer) vibrate() {
	if !r.cfg.HapticFeedback || r.haptics == nil {
		return
	}
	r.haptics.Vibrate(r.cfg.HapticIntensity)
}

func (r *Recognizer) fireTouch(phase TouchPhase, points []Point, t time.Duration) {
	ctx := TouchContext{Phase: phase, Points: points, Time: t}
	h := &r.Handlers
	switch phase {
	case TouchPhaseStart:
		if h.OnTouchStart != nil {
			h.OnTouchStart(ctx)
		}
	case TouchPhaseMove:
		if h.OnTouchMove != nil {
			h.OnTouchMove(ctx)
		}
	case TouchPhaseEnd:
		if h.OnTouchEnd != nil {
			h.OnTouchEnd(ctx)
		}
	case TouchPhaseCancel:
		if h.OnTouchCancel != nil {
			h.OnTouchCancel(ctx)
		}
	}
	reg := &r.handlers
	reg.begin()
	for i, n := 0, len(reg.touch); i < n; i++ {
		if fn := reg.touch[i].fn; fn != nil {
			fn(ctx)
		}
	}
	reg.end()
}
