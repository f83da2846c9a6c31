package gesture

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Intensity selects the strength of a haptic pulse.
type Intensity uint8

const (
	IntensityLight  Intensity = iota // short, soft tick
	IntensityMedium                  // noticeable bump
	IntensityHeavy                   // strong buzz
)

func (i Intensity) String() string {
	switch i {
	case IntensityLight:
		return "light"
	case IntensityMedium:
		return "medium"
	case IntensityHeavy:
		return "heavy"
	}
	return fmt.Sprintf("intensity(%d)", uint8(i))
}

// MarshalText implements encoding.TextMarshaler.
func (i Intensity) MarshalText() ([]byte, error) {
	if i > IntensityHeavy {
		return nil, fmt.Errorf("unknown intensity %d", uint8(i))
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Intensity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "light":
		*i = IntensityLight
	case "medium":
		*i = IntensityMedium
	case "heavy":
		*i = IntensityHeavy
	default:
		return fmt.Errorf("unknown intensity %q", text)
	}
	return nil
}

// Haptics is the feedback side channel. Vibrate is fire-and-forget: it has
// no result and the platform may not honor it.
type Haptics interface {
	Vibrate(intensity Intensity)
}

// HapticsFunc adapts a plain function to Haptics.
type HapticsFunc func(Intensity)

// Vibrate calls f(intensity).
func (f HapticsFunc) Vibrate(intensity Intensity) { f(intensity) }

// hapticPulse is the duration and magnitude ebiten.Vibrate receives for each
// intensity.
var hapticPulse = [...]struct {
	duration  time.Duration
	magnitude float64
}{
	IntensityLight:  {10 * time.Millisecond, 0.3},
	IntensityMedium: {20 * time.Millisecond, 0.6},
	IntensityHeavy:  {30 * time.Millisecond, 1.0},
}

// EbitenHaptics vibrates the device through Ebitengine. Desktop platforms
// and browsers without the Vibration API silently ignore it.
type EbitenHaptics struct{}

// Vibrate implements Haptics.
func (EbitenHaptics) Vibrate(intensity Intensity) {
	if int(intensity) >= len(hapticPulse) {
		intensity = IntensityHeavy
	}
	p := hapticPulse[intensity]
	ebiten.Vibrate(&ebiten.VibrateOptions{
		Duration:  p.duration,
		Magnitude: p.magnitude,
	})
}
