package gesture

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// timer; false means it already fired or was already stopped.
	Stop() bool
}

// Scheduler arms callbacks at an absolute time on the host's monotonic
// timeline, the same timeline touch timestamps use. Callbacks must run on
// the goroutine that drives the recognizer.
type Scheduler interface {
	Schedule(at time.Duration, fn func()) Timer
}

// --- ManualScheduler ---

type manualTimer struct {
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// ManualScheduler fires callbacks only when Advance is called. It suits
// fixed-step game loops and deterministic tests. Not safe for concurrent
// use.
type ManualScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*manualTimer
	due     []*manualTimer
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Now returns the time of the most recent Advance.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Schedule arms fn to run on the first Advance whose time is >= at.
func (s *ManualScheduler) Schedule(at time.Duration, fn func()) Timer {
	s.seq++
	t := &manualTimer{at: at, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock to now and runs every due, unstopped callback in
// deadline order (ties in scheduling order). Callbacks may schedule or
// stop other timers; newly scheduled timers that are already due run in
// the same call. Moving the clock backward is ignored.
func (s *ManualScheduler) Advance(now time.Duration) {
	if now > s.now {
		s.now = now
	}
	for {
		s.due = s.due[:0]
		keep := s.pending[:0]
		for _, t := range s.pending {
			switch {
			case t.stopped:
			case t.at <= s.now:
				s.due = append(s.due, t)
			default:
				keep = append(keep, t)
			}
		}
		for i := len(keep); i < len(s.pending); i++ {
			s.pending[i] = nil
		}
		s.pending = keep
		if len(s.due) == 0 {
			return
		}
		sort.Slice(s.due, func(i, j int) bool {
			if s.due[i].at != s.due[j].at {
				return s.due[i].at < s.due[j].at
			}
			return s.due[i].seq < s.due[j].seq
		})
		for _, t := range s.due {
			if t.stopped {
				continue
			}
			t.fired = true
			t.fn()
		}
	}
}

// Len returns the number of armed timers.
func (s *ManualScheduler) Len() int {
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// --- ChannelScheduler ---

// ChannelScheduler arms wall-clock timers and hands due callbacks to C, so
// a host event loop can run them on its own goroutine:
//
//	for {
//		select {
//		case fn := <-sched.C():
//			fn()
//		case ev := <-touches:
//			// feed the recognizer
//		}
//	}
type ChannelScheduler struct {
	origin time.Time
	ch     chan func()
	done   chan struct{}

	mu     sync.Mutex
	timers map[*channelTimer]struct{}
	closed bool
}

type channelTimer struct {
	s *ChannelScheduler
	t *time.Timer
}

func (t *channelTimer) Stop() bool {
	stopped := t.t.Stop()
	t.s.mu.Lock()
	delete(t.s.timers, t)
	t.s.mu.Unlock()
	return stopped
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }

// NewChannelScheduler returns a scheduler whose timeline starts at origin.
// Touch timestamps handed to the recognizer must be measured from the same
// origin (see Since).
func NewChannelScheduler(origin time.Time, buffer int) *ChannelScheduler {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelScheduler{
		origin: origin,
		ch:     make(chan func(), buffer),
		done:   make(chan struct{}),
		timers: make(map[*channelTimer]struct{}),
	}
}

// C delivers callbacks whose deadline has passed.
func (s *ChannelScheduler) C() <-chan func() {
	return s.ch
}

// Since converts a wall-clock instant into the scheduler's timeline.
func (s *ChannelScheduler) Since(t time.Time) time.Duration {
	return t.Sub(s.origin)
}

// Schedule arms fn for at on the scheduler's timeline. Deadlines in the
// past are delivered as soon as possible.
func (s *ChannelScheduler) Schedule(at time.Duration, fn func()) Timer {
	delay := at - time.Since(s.origin)
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return stoppedTimer{}
	}
	ct := &channelTimer{s: s}
	ct.t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, live := s.timers[ct]
		delete(s.timers, ct)
		closed := s.closed
		s.mu.Unlock()
		if !live || closed {
			return
		}
		select {
		case s.ch <- fn:
		case <-s.done:
		}
	})
	s.timers[ct] = struct{}{}
	return ct
}

// Close stops every armed timer. Callbacks already queued on C are left
// for the host to drain or drop.
func (s *ChannelScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	for ct := range s.timers {
		ct.t.Stop()
		delete(s.timers, ct)
	}
}
