package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScript(t *testing.T) {
	sc, err := LoadScript([]byte(`
steps:
  - {action: start, at: 0ms, points: [{x: 50, y: 50}]}
  - {action: move, at: 40ms, points: [{x: 51, y: 50}]}
  - {action: end, at: 120ms, points: [{x: 52, y: 51}]}
`))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 3)

	assert.Equal(t, "start", sc.Steps[0].Action)
	assert.Equal(t, []Point{{50, 50}}, sc.Steps[0].Points)
	assert.Equal(t, 40*time.Millisecond, sc.Steps[1].At)
	assert.Equal(t, 120*time.Millisecond, sc.Duration())
}

func TestLoadScript_JSON(t *testing.T) {
	sc, err := LoadScript([]byte(`{
		"steps": [
			{"action": "start", "at": "0s", "points": [{"x": 1, "y": 2}]},
			{"action": "cancel", "at": "10ms"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, "cancel", sc.Steps[1].Action)
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"empty", "steps: []", "no steps"},
		{"unknown action", "steps: [{action: wiggle, at: 0ms}]", "unknown action"},
		{"start without points", "steps: [{action: start, at: 0ms}]", "needs points"},
		{"time goes backward", `
steps:
  - {action: start, at: 50ms, points: [{x: 0, y: 0}]}
  - {action: end, at: 10ms}
`, "before previous"},
		{"malformed", "steps: {", "parse script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestScript_Run(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		kinds []Kind
	}{
		{"tap", `
steps:
  - {action: start, at: 0ms, points: [{x: 50, y: 50}]}
  - {action: end, at: 120ms, points: [{x: 52, y: 51}]}
`, []Kind{KindTap}},
		{"swipe up", `
steps:
  - {action: start, at: 0ms, points: [{x: 0, y: 100}]}
  - {action: move, at: 150ms, points: [{x: 0, y: 40}]}
  - {action: end, at: 180ms, points: [{x: 0, y: 30}]}
`, []Kind{KindSwipeUp}},
		{"long press via advance", `
steps:
  - {action: start, at: 0ms, points: [{x: 10, y: 10}]}
  - {action: advance, at: 600ms}
  - {action: end, at: 700ms}
`, []Kind{KindLongPress, KindLongPress}},
		{"cancel drops everything", `
steps:
  - {action: start, at: 0ms, points: [{x: 10, y: 10}]}
  - {action: cancel, at: 50ms}
`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := LoadScript([]byte(tt.data))
			require.NoError(t, err)

			r, sched, rc := newTestRecognizer()
			sc.Run(r, sched)

			assert.Equal(t, tt.kinds, nilIfEmpty(rc.kinds()))
			assert.Equal(t, StateIdle, r.State())
		})
	}
}

func TestScript_EndWithoutPointsUsesLastPosition(t *testing.T) {
	sc, err := LoadScript([]byte(`
steps:
  - {action: start, at: 0ms, points: [{x: 0, y: 0}]}
  - {action: move, at: 50ms, points: [{x: 120, y: 0}]}
  - {action: end, at: 100ms}
`))
	require.NoError(t, err)

	r, sched, rc := newTestRecognizer()
	sc.Run(r, sched)
	require.Len(t, rc.events, 1)
	assert.Equal(t, KindSwipeRight, rc.events[0].Kind)
	assert.Equal(t, Point{120, 0}, rc.events[0].Position)
}

func nilIfEmpty(k []Kind) []Kind {
	if len(k) == 0 {
		return nil
	}
	return k
}
