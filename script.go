package gesture

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ScriptStep is a single timestamped contact event.
type ScriptStep struct {
	Action string        `yaml:"action"`
	At     time.Duration `yaml:"at"`
	Points []Point       `yaml:"points,omitempty"`
}

type scriptFile struct {
	Steps []ScriptStep `yaml:"steps"`
}

// Script replays a recorded contact stream against a Recognizer. Actions
// are start, move, end, cancel and advance (fire due timers only).
//
//	steps:
//	  - {action: start, at: 0ms,   points: [{x: 50, y: 50}]}
//	  - {action: end,   at: 120ms, points: [{x: 52, y: 51}]}
type Script struct {
	Steps []ScriptStep
}

// LoadScript parses a YAML (or JSON) script and validates it.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	var last time.Duration
	for i, st := range f.Steps {
		switch st.Action {
		case "start", "move":
			if len(st.Points) == 0 {
				return nil, fmt.Errorf("parse script: step %d: %s needs points", i, st.Action)
			}
		case "end", "cancel", "advance":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.At < last {
			return nil, fmt.Errorf("parse script: step %d: time %v before previous %v", i, st.At, last)
		}
		last = st.At
	}
	return &Script{Steps: f.Steps}, nil
}

// Duration returns the time of the final step.
func (sc *Script) Duration() time.Duration {
	if len(sc.Steps) == 0 {
		return 0
	}
	return sc.Steps[len(sc.Steps)-1].At
}

// Run applies every step in order. When sched is non-nil it is advanced to
// each step's time first, so long-press timers fire where they would live.
// An end step without points lifts at the last reported position.
func (sc *Script) Run(r *Recognizer, sched *ManualScheduler) {
	var lastPoint Point
	for _, st := range sc.Steps {
		if sched != nil {
			sched.Advance(st.At)
		}
		switch st.Action {
		case "start":
			r.TouchStart(st.Points, st.At)
			lastPoint = st.Points[0]
		case "move":
			r.TouchMove(st.Points, st.At)
			lastPoint = st.Points[0]
		case "end":
			p := lastPoint
			if len(st.Points) > 0 {
				p = st.Points[0]
			}
			r.TouchEnd(p, st.At)
		case "cancel":
			r.TouchCancel(st.At)
		}
	}
}
