package gesture

// InjectFrame queues one synthetic tick with the given contacts in place
// of polled input. An empty frame means every contact is up. Each Update
// consumes one queued frame.
func (s *Surface) InjectFrame(points ...Point) {
	frame := make([]Point, len(points))
	copy(frame, points)
	s.injectQueue = append(s.injectQueue, frame)
}

// InjectRelease queues a tick with no contacts.
func (s *Surface) InjectRelease() {
	s.InjectFrame()
}

// InjectTap queues a press at (x, y) held for holdFrames ticks, then a
// release. holdFrames below 1 is treated as 1.
func (s *Surface) InjectTap(x, y float64, holdFrames int) {
	if holdFrames < 1 {
		holdFrames = 1
	}
	for i := 0; i < holdFrames; i++ {
		s.InjectFrame(Point{x, y})
	}
	s.InjectRelease()
}

// InjectSwipe queues a single-finger stroke from (fromX, fromY) to (toX, toY)
// linearly interpolated over frames ticks, followed by a release. The total
// sequence consumes frames+1 ticks. Minimum frames is 2.
func (s *Surface) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectFrame(Point{fromX + (toX-fromX)*t, fromY + (toY-fromY)*t})
	}
	s.InjectRelease()
}

// InjectPinch queues a two-finger gesture centred on (cx, cy) whose finger
// separation goes from fromDist to toDist over frames ticks, followed by a
// release. Minimum frames is 2.
func (s *Surface) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		half := (fromDist + (toDist-fromDist)*t) / 2
		s.InjectFrame(Point{cx - half, cy}, Point{cx + half, cy})
	}
	s.InjectRelease()
}

// Pending returns the number of queued synthetic frames.
func (s *Surface) Pending() int {
	return len(s.injectQueue)
}

// processInjected pops one frame and feeds it. Returns true if a frame was
// consumed, in which case real input is skipped for this tick.
func (s *Surface) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	frame := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = nil
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.feed(frame)
	return true
}
