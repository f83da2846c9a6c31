// Package gesture classifies raw multi-touch input into discrete gestures
// for [Ebitengine] games and any other host that can report contacts.
//
// A [Recognizer] consumes contact start, move, end and cancel events and
// emits tap, double tap, long press, four-way swipe, pinch and pan
// gestures. It keeps one interaction session at a time, a bounded rolling
// history for velocity estimation, and a cancellable long-press timer
// armed through a [Scheduler].
//
// # Quick start
//
// With Ebitengine, let a [Surface] poll input for you:
//
//	surface := gesture.NewSurface(gesture.DefaultConfig())
//	surface.Recognizer().Handlers.OnSwipe = func(ev gesture.Event) {
//		log.Println("swipe", ev.Kind)
//	}
//
//	func (g *Game) Update() error { g.surface.Update(); return nil }
//
// Any other host drives a [Recognizer] directly, passing timestamps on a
// monotonic timeline shared with its scheduler:
//
//	sched := gesture.NewManualScheduler()
//	rec := gesture.NewRecognizer(gesture.DefaultConfig(), sched)
//	rec.OnGesture(func(ev gesture.Event) { fmt.Println(ev.Kind) })
//
//	sched.Advance(now)
//	rec.TouchStart([]gesture.Point{{X: 50, Y: 50}}, now)
//
// # Classification
//
// On lift the session is classified in priority order: an active long
// press ends, a pinch is released, a pan ends, otherwise a short still
// contact becomes a tap (or a double tap when it follows another tap
// closely), and a short fast stroke becomes a swipe along its dominant
// axis. Anything else is dropped silently. Pan and pinch events stream
// while the contact is live.
//
// Haptic feedback ([Haptics], [EbitenHaptics]) accompanies taps, double
// taps, long-press starts and swipes. [Fling] continues a released pan with
// eased momentum (via [gween]). The ECS bridge lives in the
// gesture/ecs module (via [Donburi]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package gesture
