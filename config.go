package gesture

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the recognizer thresholds. Distances are in pixels,
// velocities in pixels per second.
type Config struct {
	TapThreshold   float64       `yaml:"tap_threshold"`
	TapMaxDuration time.Duration `yaml:"tap_max_duration"`

	DoubleTapThreshold float64       `yaml:"double_tap_threshold"`
	DoubleTapTimeout   time.Duration `yaml:"double_tap_timeout"`

	LongPressDelay     time.Duration `yaml:"long_press_delay"`
	LongPressThreshold float64       `yaml:"long_press_threshold"`

	SwipeThreshold         float64       `yaml:"swipe_threshold"`
	SwipeVelocityThreshold float64       `yaml:"swipe_velocity_threshold"`
	SwipeTimeout           time.Duration `yaml:"swipe_timeout"`

	PinchThreshold float64 `yaml:"pinch_threshold"`

	HapticFeedback  bool      `yaml:"haptic_feedback"`
	HapticIntensity Intensity `yaml:"haptic_intensity"`

	// HistorySize caps the rolling sample history.
	HistorySize int `yaml:"history_size"`
	// VelocitySamples is how many of the newest samples feed the velocity
	// estimate.
	VelocitySamples int `yaml:"velocity_samples"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		TapThreshold:           10,
		TapMaxDuration:         300 * time.Millisecond,
		DoubleTapThreshold:     30,
		DoubleTapTimeout:       500 * time.Millisecond,
		LongPressDelay:         500 * time.Millisecond,
		LongPressThreshold:     10,
		SwipeThreshold:         50,
		SwipeVelocityThreshold: 300,
		SwipeTimeout:           300 * time.Millisecond,
		PinchThreshold:         0.1,
		HapticFeedback:         true,
		HapticIntensity:        IntensityLight,
		HistorySize:            10,
		VelocitySamples:        3,
	}
}

// Validate rejects thresholds the recognizer cannot work with.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"tap_threshold", c.TapThreshold},
		{"double_tap_threshold", c.DoubleTapThreshold},
		{"long_press_threshold", c.LongPressThreshold},
		{"swipe_threshold", c.SwipeThreshold},
		{"swipe_velocity_threshold", c.SwipeVelocityThreshold},
		{"pinch_threshold", c.PinchThreshold},
	} {
		if f.v < 0 {
			return fmt.Errorf("config: %s must not be negative, got %v", f.name, f.v)
		}
	}
	for _, f := range []struct {
		name string
		v    time.Duration
	}{
		{"tap_max_duration", c.TapMaxDuration},
		{"double_tap_timeout", c.DoubleTapTimeout},
		{"long_press_delay", c.LongPressDelay},
		{"swipe_timeout", c.SwipeTimeout},
	} {
		if f.v < 0 {
			return fmt.Errorf("config: %s must not be negative, got %v", f.name, f.v)
		}
	}
	if c.HistorySize < 2 {
		return fmt.Errorf("config: history_size must be at least 2, got %d", c.HistorySize)
	}
	if c.VelocitySamples < 2 || c.VelocitySamples > c.HistorySize {
		return fmt.Errorf("config: velocity_samples must be in [2, %d], got %d", c.HistorySize, c.VelocitySamples)
	}
	if c.HapticIntensity > IntensityHeavy {
		return fmt.Errorf("config: unknown haptic_intensity %d", c.HapticIntensity)
	}
	return nil
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. Environment variables in the file
// are expanded before decoding.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig([]byte(os.ExpandEnv(string(data))))
}

// YAML encodes c with the same keys ParseConfig accepts.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
