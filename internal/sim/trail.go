package sim

import "github.com/san-kum/dpend/internal/pendulum"

const DefaultTrailLength = 500

// Trail is a fixed-capacity FIFO of recent bob positions. Once full, every
// push evicts the oldest point.
type Trail struct {
	buf   []pendulum.Point
	start int
	n     int
}

// NewTrail returns an empty trail; capacity <= 0 selects DefaultTrailLength.
func NewTrail(capacity int) *Trail {
	if capacity <= 0 {
		capacity = DefaultTrailLength
	}
	return &Trail{buf: make([]pendulum.Point, capacity)}
}

func (t *Trail) Push(p pendulum.Point) {
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

// Points returns the stored points from oldest to newest in a new slice.
func (t *Trail) Points() []pendulum.Point {
	out := make([]pendulum.Point, t.n)
	for i := 0; i < t.n; i++ {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

func (t *Trail) Len() int { return t.n }

func (t *Trail) Cap() int { return len(t.buf) }

func (t *Trail) Reset() {
	t.start = 0
	t.n = 0
}
