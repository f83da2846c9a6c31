package gesture

import "time"

// sampleRing is a fixed-capacity ring of the newest samples.
type sampleRing struct {
	data []Sample
	pos  int
	full bool
}

func newSampleRing(capacity int) sampleRing {
	if capacity < 2 {
		capacity = 2
	}
	return sampleRing{data: make([]Sample, capacity)}
}

// push appends s, overwriting the oldest sample when full.
func (r *sampleRing) push(s Sample) {
	r.data[r.pos] = s
	r.pos++
	if r.pos >= len(r.data) {
		r.pos = 0
		r.full = true
	}
}

func (r *sampleRing) len() int {
	if r.full {
		return len(r.data)
	}
	return r.pos
}

// at returns the i-th newest sample; at(0) is the most recent.
func (r *sampleRing) at(i int) Sample {
	idx := r.pos - 1 - i
	if idx < 0 {
		idx += len(r.data)
	}
	return r.data[idx]
}

func (r *sampleRing) reset() {
	r.pos = 0
	r.full = false
	clear(r.data)
}

// velocity estimates pixels per second from the newest n samples as the
// displacement between the oldest and newest of them over their elapsed
// time. Fewer than two samples, or no elapsed time, yields zero.
func (r *sampleRing) velocity(n int) Point {
	if l := r.len(); n > l {
		n = l
	}
	if n < 2 {
		return Point{}
	}
	newest := r.at(0)
	oldest := r.at(n - 1)
	dt := newest.Time - oldest.Time
	if dt <= 0 {
		return Point{}
	}
	secs := float64(dt) / float64(time.Second)
	d := newest.Point.Sub(oldest.Point)
	return Point{d.X / secs, d.Y / secs}
}
