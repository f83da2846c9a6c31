package gesture

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Point is a screen-space contact position.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Len returns the length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Len()
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// Sample is a contact position at an instant on the host's monotonic
// timeline.
type Sample struct {
	Point Point
	Time  time.Duration
}

// Kind identifies a classified gesture.
type Kind uint8

const (
	KindTap        Kind = iota // short contact with little movement
	KindDoubleTap              // second tap inside the double-tap window
	KindLongPress              // contact held still past the long-press delay
	KindSwipeLeft              // fast horizontal flick toward -X
	KindSwipeRight             // fast horizontal flick toward +X
	KindSwipeUp                // fast vertical flick toward -Y
	KindSwipeDown              // fast vertical flick toward +Y
	KindPinch                  // two-finger scale change
	KindPan                    // slow single-finger drag
)

var kindNames = [...]string{
	KindTap:        "tap",
	KindDoubleTap:  "double_tap",
	KindLongPress:  "long_press",
	KindSwipeLeft:  "swipe_left",
	KindSwipeRight: "swipe_right",
	KindSwipeUp:    "swipe_up",
	KindSwipeDown:  "swipe_down",
	KindPinch:      "pinch",
	KindPan:        "pan",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsSwipe reports whether k is one of the four swipe directions.
func (k Kind) IsSwipe() bool {
	return k >= KindSwipeLeft && k <= KindSwipeDown
}

// Phase distinguishes the stages of continuous gestures. Discrete gestures
// (tap, double tap, swipes) always carry PhaseEnd.
type Phase uint8

const (
	PhaseBegin  Phase = iota // long press fired, pan started
	PhaseChange              // pan moved, pinch scale changed
	PhaseEnd                 // gesture finished
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseChange:
		return "change"
	default:
		return "end"
	}
}

// Event is a classified gesture.
type Event struct {
	Kind     Kind
	Phase    Phase
	Position Point
	// Duration is the time since the session's first contact.
	Duration time.Duration
	// Velocity in pixels per second, estimated from the rolling history.
	// Valid for swipes and pans.
	Velocity Point
	// Scale is current/initial finger distance. Valid for KindPinch.
	Scale float64
	// Center is the midpoint between the two fingers. Valid for KindPinch.
	Center Point
	// Delta is the movement since the previous sample. Valid for KindPan.
	Delta Point
	// Distance is the total displacement. Valid for swipes.
	Distance float64
	Time     time.Duration
	Session  uuid.UUID
}

// TouchPhase identifies a raw contact callback.
type TouchPhase uint8

const (
	TouchPhaseStart TouchPhase = iota
	TouchPhaseMove
	TouchPhaseEnd
	TouchPhaseCancel
)

func (p TouchPhase) String() string {
	switch p {
	case TouchPhaseStart:
		return "start"
	case TouchPhaseMove:
		return "move"
	case TouchPhaseEnd:
		return "end"
	default:
		return "cancel"
	}
}

// TouchContext describes a raw contact event as the host delivered it,
// before classification. Points must not be retained; the recognizer may
// reuse the slice.
type TouchContext struct {
	Phase  TouchPhase
	Points []Point
	Time   time.Duration
}

// State is the recognizer's position in the session state machine.
type State uint8

const (
	StateIdle State = iota
	StateTouching
	StateLongPressing
	StatePanning
	StatePinching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTouching:
		return "touching"
	case StateLongPressing:
		return "long_pressing"
	case StatePanning:
		return "panning"
	case StatePinching:
		return "pinching"
	}
	return "unknown"
}

// EventSink receives every classified gesture after the registered
// handlers have run. Used for ECS and analytics bridges.
type EventSink interface {
	EmitGesture(event Event)
}
