package gesture

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// SetLogger routes recognizer diagnostics to l. Transitions and emitted
// gestures log at debug level, discarded ambiguous input at trace level.
func (r *Recognizer) SetLogger(l zerolog.Logger) {
	r.log = l
}

// SetDebugMode enables or disables human-readable diagnostics on stderr.
// Disabling it discards all recognizer logging.
func (r *Recognizer) SetDebugMode(enabled bool) {
	if !enabled {
		r.log = zerolog.Nop()
		return
	}
	r.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		Level(zerolog.TraceLevel).
		With().Timestamp().Str("component", "gesture").Logger()
}

func (r *Recognizer) logTransition(to State, t time.Duration) {
	r.log.Debug().
		Str("session", r.session.id.String()).
		Stringer("state", to).
		Dur("at", t).
		Msg("transition")
}

func (r *Recognizer) logEvent(ev Event) {
	e := r.log.Debug()
	if !e.Enabled() {
		return
	}
	e = e.Str("session", ev.Session.String()).
		Stringer("kind", ev.Kind).
		Stringer("phase", ev.Phase).
		Float64("x", ev.Position.X).
		Float64("y", ev.Position.Y).
		Dur("duration", ev.Duration)
	switch {
	case ev.Kind == KindPinch:
		e = e.Float64("scale", ev.Scale)
	case ev.Kind == KindPan, ev.Kind.IsSwipe():
		e = e.Float64("vx", ev.Velocity.X).Float64("vy", ev.Velocity.Y)
	}
	e.Msg("gesture")
}

func (r *Recognizer) logDrop(reason string, duration time.Duration, dist float64) {
	r.log.Trace().
		Str("session", r.session.id.String()).
		Dur("duration", duration).
		Float64("distance", dist).
		Msg(reason)
}
