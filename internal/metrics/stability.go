package metrics

import (
	"math"

	"github.com/san-kum/dpend/internal/dynamo"
)

// Stability is the fraction of samples that are finite and whose components
// all stay within threshold in magnitude. A threshold <= 0 checks finiteness
// only.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
	firstBad   float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		firstBad:  math.NaN(),
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.samples++
	for _, val := range x {
		if math.IsNaN(val) || math.IsInf(val, 0) || (s.threshold > 0 && math.Abs(val) > s.threshold) {
			if s.violations == 0 {
				s.firstBad = t
			}
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

// FirstViolation returns the time of the first violating sample and whether
// one was seen.
func (s *Stability) FirstViolation() (float64, bool) {
	return s.firstBad, s.violations > 0
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.firstBad = math.NaN()
}
