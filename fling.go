package gesture

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fling continues a released pan with decaying momentum. Create one from a
// Pan end event's velocity and call Update(dt) each frame; apply the
// returned delta to whatever was being dragged.
//
// There is no global animation manager; callers own the Fling.
type Fling struct {
	tweens [2]*gween.Tween
	x, y   float64
	Done   bool
}

// NewFling builds a fling that travels velocity*duration/2 pixels per axis,
// the distance covered when decelerating linearly to rest. fn shapes the
// deceleration; nil uses ease.OutCubic.
func NewFling(velocity Point, duration time.Duration, fn ease.TweenFunc) *Fling {
	if fn == nil {
		fn = ease.OutCubic
	}
	secs := float32(duration.Seconds())
	f := &Fling{}
	if secs <= 0 {
		f.Done = true
		return f
	}
	f.tweens[0] = gween.New(0, float32(velocity.X)*secs/2, secs, fn)
	f.tweens[1] = gween.New(0, float32(velocity.Y)*secs/2, secs, fn)
	return f
}

// FlingFromEvent is a convenience for a Pan end event. It returns nil when
// the release speed is below minSpeed pixels per second.
func FlingFromEvent(ev Event, minSpeed float64, duration time.Duration, fn ease.TweenFunc) *Fling {
	if ev.Kind != KindPan || ev.Phase != PhaseEnd || ev.Velocity.Len() < minSpeed {
		return nil
	}
	return NewFling(ev.Velocity, duration, fn)
}

// Update advances the fling by dt seconds and returns the movement since
// the previous call.
func (f *Fling) Update(dt float32) Point {
	if f.Done {
		return Point{}
	}
	vx, doneX := f.tweens[0].Update(dt)
	vy, doneY := f.tweens[1].Update(dt)
	d := Point{float64(vx) - f.x, float64(vy) - f.y}
	f.x, f.y = float64(vx), float64(vy)
	f.Done = doneX && doneY
	return d
}

// Offset returns the total distance travelled so far.
func (f *Fling) Offset() Point {
	return Point{f.x, f.y}
}
