package gesture

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxContacts is the number of touch slots a Surface tracks.
const maxContacts = 10

// Surface feeds a Recognizer from Ebitengine's polled input. Call Update
// once per tick from ebiten.Game.Update. It keeps its own fixed-step clock
// and a ManualScheduler on that clock, so long-press timing follows the
// game's tick rate.
type Surface struct {
	rec   *Recognizer
	sched *ManualScheduler
	now   time.Duration

	// Mouse makes the left mouse button act as a single contact when no
	// touches are down. Handy on desktop.
	Mouse bool

	touchMap   [maxContacts]ebiten.TouchID
	touchUsed  [maxContacts]bool
	touchIDs   []ebiten.TouchID
	slotPoints [maxContacts]Point
	slotActive [maxContacts]bool

	prev    []Point
	cur     []Point
	lastEnd Point

	injectQueue [][]Point
}

// NewSurface creates a surface with its own recognizer using cfg.
func NewSurface(cfg Config) *Surface {
	s := &Surface{sched: NewManualScheduler()}
	s.rec = NewRecognizer(cfg, s.sched)
	return s
}

// Recognizer returns the recognizer the surface drives.
func (s *Surface) Recognizer() *Recognizer {
	return s.rec
}

// Now returns the surface clock.
func (s *Surface) Now() time.Duration {
	return s.now
}

// defaultTick is the clock step used when Ebitengine reports no fixed tick
// rate.
const defaultTick = time.Second / ebiten.DefaultTPS

// Update advances the clock by one tick, fires due timers and feeds the
// current contact set. Injected frames take precedence over real input.
func (s *Surface) Update() {
	s.step(tickDuration(ebiten.TPS(), ebiten.ActualTPS()))
}

// tickDuration converts a tick rate into a clock step. Under
// ebiten.SyncWithFPS the fixed rate is not positive, so the measured rate
// is used, and defaultTick until one has been measured.
func tickDuration(tps int, actual float64) time.Duration {
	if tps > 0 {
		return time.Second / time.Duration(tps)
	}
	if actual > 0 {
		return time.Duration(float64(time.Second) / actual)
	}
	return defaultTick
}

func (s *Surface) step(tick time.Duration) {
	if tick <= 0 {
		tick = defaultTick
	}
	s.now += tick
	s.sched.Advance(s.now)

	if !s.processInjected() {
		s.feed(s.poll())
	}
}

// poll reads touches (and optionally the mouse) from Ebitengine, ordered by
// slot so the first finger down stays first.
func (s *Surface) poll() []Point {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	s.slotActive = [maxContacts]bool{}
	for _, tid := range s.touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		x, y := ebiten.TouchPosition(tid)
		s.slotActive[slot] = true
		s.slotPoints[slot] = Point{float64(x), float64(y)}
	}
	for i := 0; i < maxContacts; i++ {
		if s.touchUsed[i] && !s.slotActive[i] {
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}

	s.cur = s.cur[:0]
	for i := 0; i < maxContacts; i++ {
		if s.slotActive[i] {
			s.cur = append(s.cur, s.slotPoints[i])
		}
	}
	if len(s.cur) == 0 && s.Mouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.cur = append(s.cur, Point{float64(x), float64(y)})
	}
	return s.cur
}

// touchSlot maps an ebiten.TouchID to a slot, allocating one for a new
// touch. Returns -1 when every slot is taken.
func (s *Surface) touchSlot(tid ebiten.TouchID) int {
	for i := 0; i < maxContacts; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 0; i < maxContacts; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// feed diffs the contact set against the previous tick and calls the
// recognizer. Only the first two contacts take part in classification.
func (s *Surface) feed(points []Point) {
	if len(points) > 2 {
		points = points[:2]
	}
	prevN, curN := len(s.prev), len(points)

	switch {
	case prevN == 0 && curN > 0:
		s.rec.TouchStart(points, s.now)
	case prevN > 0 && curN == 0:
		s.rec.TouchEnd(s.lastEnd, s.now)
	case curN > prevN:
		s.rec.TouchStart(points, s.now)
	case curN > 0 && !samePoints(s.prev, points):
		s.rec.TouchMove(points, s.now)
	}

	if curN > 0 {
		s.lastEnd = points[0]
	}
	s.prev = append(s.prev[:0], points...)
}

func samePoints(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
