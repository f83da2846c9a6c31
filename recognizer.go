package gesture

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// --- Session state ---

// session is the lifetime of contact from first touch to full lift or
// cancel. It is reset, never reallocated, between interactions.
type session struct {
	active bool
	id     uuid.UUID
	start  Sample
	last   Sample

	history sampleRing

	longPress Timer

	initialDist float64
	scale       float64
	lastScale   float64

	isLongPressing bool
	isPinching     bool
	isPanning      bool
}

// tapMemory remembers the previous tap across sessions for double-tap
// detection.
type tapMemory struct {
	valid bool
	point Point
	time  time.Duration
}

// Recognizer converts a raw contact stream into classified gestures. All
// methods must be called from one goroutine, the same one that runs the
// Scheduler's callbacks. Construct one Recognizer per touch surface.
type Recognizer struct {
	// Handlers holds optional per-kind callbacks. It may be replaced at any
	// time between events.
	Handlers Handlers

	cfg      Config
	sched    Scheduler
	haptics  Haptics
	sink     EventSink
	log      zerolog.Logger
	handlers handlerRegistry

	session  session
	gen      uint64
	velocity Point
	lastTap  tapMemory
}

// NewRecognizer creates a recognizer with the given thresholds. sched arms
// the long-press timer; a nil scheduler disables long-press detection.
// Out-of-range history settings are clamped rather than rejected; use
// Config.Validate to surface them.
func NewRecognizer(cfg Config, sched Scheduler) *Recognizer {
	r := &Recognizer{
		sched: sched,
		log:   zerolog.Nop(),
	}
	r.applyConfig(cfg)
	return r
}

func (r *Recognizer) applyConfig(cfg Config) {
	if cfg.HistorySize < 2 {
		cfg.HistorySize = 2
	}
	if cfg.VelocitySamples < 2 {
		cfg.VelocitySamples = 2
	}
	if cfg.VelocitySamples > cfg.HistorySize {
		cfg.VelocitySamples = cfg.HistorySize
	}
	r.cfg = cfg
	r.session.history = newSampleRing(cfg.HistorySize)
}

// Config returns the active thresholds.
func (r *Recognizer) Config() Config {
	return r.cfg
}

// SetConfig replaces the thresholds. Any live session is cancelled without
// emitting a gesture.
func (r *Recognizer) SetConfig(cfg Config) {
	r.resetSession()
	r.applyConfig(cfg)
}

// SetHaptics sets the feedback sink. Nil disables haptics.
func (r *Recognizer) SetHaptics(h Haptics) {
	r.haptics = h
}

// SetEventSink sets the optional bridge that receives every gesture.
func (r *Recognizer) SetEventSink(sink EventSink) {
	r.sink = sink
}

// State reports the current position in the session state machine.
func (r *Recognizer) State() State {
	s := &r.session
	switch {
	case !s.active:
		return StateIdle
	case s.isPinching:
		return StatePinching
	case s.isLongPressing:
		return StateLongPressing
	case s.isPanning:
		return StatePanning
	}
	return StateTouching
}

// Velocity returns the latest velocity estimate in pixels per second.
func (r *Recognizer) Velocity() Point {
	return r.velocity
}

// Reset cancels any live session and forgets the previous tap.
func (r *Recognizer) Reset() {
	r.resetSession()
	r.lastTap = tapMemory{}
}

// --- Contact events ---

// TouchStart reports new contact. The first call of a session begins it;
// a call carrying two or more points while a one-finger session is live
// promotes the session to a pinch. Empty points are ignored.
func (r *Recognizer) TouchStart(points []Point, t time.Duration) {
	if len(points) == 0 {
		return
	}
	r.fireTouch(TouchPhaseStart, points, t)

	s := &r.session
	if !s.active {
		r.beginSession(points[0], t)
		if len(points) >= 2 {
			r.beginPinch(points, t)
		} else {
			r.armLongPress(t)
		}
		return
	}
	if len(points) >= 2 && !s.isPinching {
		r.promoteToPinch(points, t)
	}
}

// TouchMove reports the current positions of all active contacts.
func (r *Recognizer) TouchMove(points []Point, t time.Duration) {
	if len(points) == 0 {
		return
	}
	r.fireTouch(TouchPhaseMove, points, t)

	s := &r.session
	if !s.active {
		return
	}
	prev := s.last
	r.record(Sample{Point: points[0], Time: t})

	if len(points) >= 2 {
		if !s.isPinching {
			r.promoteToPinch(points, t)
			return
		}
		r.updatePinch(points, t)
		return
	}
	if s.isPinching {
		// One finger lifted mid-pinch; the pinch owns the session until
		// full lift.
		return
	}

	p := points[0]
	disp := p.Dist(s.start.Point)
	if s.longPress != nil && disp > r.cfg.LongPressThreshold {
		r.cancelLongPress()
		r.log.Debug().Float64("displacement", disp).Msg("long press cancelled by movement")
	}
	if s.isLongPressing {
		return
	}

	elapsed := t - s.start.Time
	switch {
	case s.isPanning:
		r.emit(Event{
			Kind:     KindPan,
			Phase:    PhaseChange,
			Position: p,
			Delta:    p.Sub(prev.Point),
			Velocity: r.velocity,
			Duration: elapsed,
			Time:     t,
		})
	case disp >= r.cfg.TapThreshold && elapsed >= r.cfg.TapMaxDuration:
		r.cancelLongPress()
		s.isPanning = true
		r.logTransition(StatePanning, t)
		r.emit(Event{
			Kind:     KindPan,
			Phase:    PhaseBegin,
			Position: p,
			Delta:    p.Sub(s.start.Point),
			Velocity: r.velocity,
			Duration: elapsed,
			Time:     t,
		})
	}
}

// TouchEnd reports that the last contact lifted at p. It classifies the
// session and then resets it unconditionally.
func (r *Recognizer) TouchEnd(p Point, t time.Duration) {
	r.fireTouch(TouchPhaseEnd, []Point{p}, t)

	s := &r.session
	if !s.active {
		return
	}
	r.cancelLongPress()

	prev := s.last
	r.record(Sample{Point: p, Time: t})
	duration := t - s.start.Time
	disp := p.Sub(s.start.Point)
	dist := disp.Len()

	switch {
	case s.isLongPressing:
		r.emit(Event{
			Kind:     KindLongPress,
			Phase:    PhaseEnd,
			Position: p,
			Duration: duration,
			Time:     t,
		})
	case s.isPinching:
		r.log.Debug().Float64("scale", s.scale).Msg("pinch released")
	case s.isPanning:
		r.emit(Event{
			Kind:     KindPan,
			Phase:    PhaseEnd,
			Position: p,
			Delta:    p.Sub(prev.Point),
			Velocity: r.velocity,
			Duration: duration,
			Time:     t,
		})
	case duration < r.cfg.TapMaxDuration && dist < r.cfg.TapThreshold:
		r.classifyTap(p, duration, t)
	case duration < r.cfg.SwipeTimeout:
		r.classifySwipe(p, disp, duration, t)
	default:
		r.logDrop("no gesture matched", duration, dist)
	}

	r.resetSession()
}

// TouchCancel abandons the session without emitting a gesture.
func (r *Recognizer) TouchCancel(t time.Duration) {
	r.fireTouch(TouchPhaseCancel, nil, t)
	if r.session.active {
		r.log.Debug().Dur("at", t).Msg("session cancelled")
	}
	r.resetSession()
}

// --- Classification ---

func (r *Recognizer) classifyTap(p Point, duration, t time.Duration) {
	last := r.lastTap
	if last.valid &&
		t-last.time < r.cfg.DoubleTapTimeout &&
		p.Dist(last.point) < r.cfg.DoubleTapThreshold {
		r.lastTap = tapMemory{}
		r.emit(Event{Kind: KindDoubleTap, Phase: PhaseEnd, Position: p, Duration: duration, Time: t})
		return
	}
	r.lastTap = tapMemory{valid: true, point: p, time: t}
	r.emit(Event{Kind: KindTap, Phase: PhaseEnd, Position: p, Duration: duration, Time: t})
}

// classifySwipe picks the axis with the larger displacement (ties go
// horizontal) and requires both distance and velocity in that axis to
// exceed their thresholds.
func (r *Recognizer) classifySwipe(p, disp Point, duration, t time.Duration) {
	absX, absY := math.Abs(disp.X), math.Abs(disp.Y)
	v := r.velocity

	var kind Kind
	var axisDist, axisVel float64
	if absX >= absY {
		axisDist, axisVel = absX, math.Abs(v.X)
		kind = KindSwipeLeft
		if disp.X > 0 {
			kind = KindSwipeRight
		}
	} else {
		axisDist, axisVel = absY, math.Abs(v.Y)
		kind = KindSwipeUp
		if disp.Y > 0 {
			kind = KindSwipeDown
		}
	}
	if axisDist <= r.cfg.SwipeThreshold {
		r.logDrop("swipe too short", duration, axisDist)
		return
	}
	if axisVel <= r.cfg.SwipeVelocityThreshold {
		r.logDrop("swipe too slow", duration, axisDist)
		return
	}
	r.emit(Event{
		Kind:     kind,
		Phase:    PhaseEnd,
		Position: p,
		Duration: duration,
		Velocity: v,
		Distance: disp.Len(),
		Time:     t,
	})
}

// --- Pinch ---

func (r *Recognizer) beginPinch(points []Point, t time.Duration) {
	s := &r.session
	r.cancelLongPress()
	s.isPinching = true
	s.initialDist = points[0].Dist(points[1])
	s.scale = 1
	s.lastScale = 1
	r.logTransition(StatePinching, t)
}

// promoteToPinch handles a second finger landing on a live one-finger
// session. Multi-touch wins over pan; a held long press keeps the session.
func (r *Recognizer) promoteToPinch(points []Point, t time.Duration) {
	s := &r.session
	if s.isLongPressing {
		return
	}
	if s.isPanning {
		s.isPanning = false
		r.emit(Event{
			Kind:     KindPan,
			Phase:    PhaseEnd,
			Position: s.last.Point,
			Velocity: r.velocity,
			Duration: t - s.start.Time,
			Time:     t,
		})
	}
	r.beginPinch(points, t)
}

func (r *Recognizer) updatePinch(points []Point, t time.Duration) {
	s := &r.session
	d := points[0].Dist(points[1])
	if s.initialDist <= 0 {
		// Fingers started on the same spot; measure from the first real
		// separation instead.
		s.initialDist = d
		return
	}
	s.scale = d / s.initialDist
	if math.Abs(s.scale-s.lastScale) <= r.cfg.PinchThreshold {
		return
	}
	s.lastScale = s.scale
	r.emit(Event{
		Kind:     KindPinch,
		Phase:    PhaseChange,
		Position: points[0],
		Center:   points[0].Midpoint(points[1]),
		Scale:    s.scale,
		Duration: t - s.start.Time,
		Time:     t,
	})
}

// --- Long press ---

func (r *Recognizer) armLongPress(t time.Duration) {
	if r.sched == nil {
		return
	}
	gen := r.gen
	at := t + r.cfg.LongPressDelay
	r.session.longPress = r.sched.Schedule(at, func() {
		r.fireLongPress(gen, at)
	})
}

// fireLongPress runs from the scheduler. A callback from a finished
// session, or one that raced a disqualifying event, is ignored.
func (r *Recognizer) fireLongPress(gen uint64, at time.Duration) {
	s := &r.session
	if gen != r.gen || !s.active || s.longPress == nil {
		return
	}
	s.longPress = nil
	if s.isPinching || s.isPanning || s.isLongPressing {
		return
	}
	if s.last.Point.Dist(s.start.Point) > r.cfg.LongPressThreshold {
		return
	}
	s.isLongPressing = true
	r.logTransition(StateLongPressing, at)
	r.emit(Event{
		Kind:     KindLongPress,
		Phase:    PhaseBegin,
		Position: s.last.Point,
		Duration: at - s.start.Time,
		Time:     at,
	})
}

func (r *Recognizer) cancelLongPress() {
	if r.session.longPress != nil {
		r.session.longPress.Stop()
		r.session.longPress = nil
	}
}

// --- Session lifecycle ---

func (r *Recognizer) beginSession(p Point, t time.Duration) {
	r.resetSession()
	s := &r.session
	s.active = true
	s.id = uuid.New()
	s.start = Sample{Point: p, Time: t}
	s.last = s.start
	s.history.push(s.start)
	r.logTransition(StateTouching, t)
}

func (r *Recognizer) record(sample Sample) {
	s := &r.session
	s.history.push(sample)
	s.last = sample
	r.velocity = s.history.velocity(r.cfg.VelocitySamples)
}

// resetSession returns to Idle. It bumps the generation so any timer
// callback still in flight for the old session is ignored.
func (r *Recognizer) resetSession() {
	r.cancelLongPress()
	r.gen++
	s := &r.session
	s.history.reset()
	*s = session{history: s.history}
	r.velocity = Point{}
}
