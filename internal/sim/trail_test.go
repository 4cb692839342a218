package sim

import (
	"testing"

	"github.com/san-kum/dpend/internal/pendulum"
)

func TestTrailDefaultCapacity(t *testing.T) {
	if got := NewTrail(0).Cap(); got != DefaultTrailLength {
		t.Errorf("expected %d, got %d", DefaultTrailLength, got)
	}
}

func TestTrailEvictsOldest(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 5; i++ {
		tr.Push(pendulum.Point{X: float64(i)})
	}
	if tr.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", tr.Len())
	}
	pts := tr.Points()
	for i, want := range []float64{2, 3, 4} {
		if pts[i].X != want {
			t.Errorf("point %d: got %g, want %g", i, pts[i].X, want)
		}
	}
}

func TestTrailPartialAndReset(t *testing.T) {
	tr := NewTrail(4)
	tr.Push(pendulum.Point{X: 1})
	tr.Push(pendulum.Point{X: 2})
	if pts := tr.Points(); len(pts) != 2 || pts[0].X != 1 || pts[1].X != 2 {
		t.Errorf("unexpected points %v", pts)
	}

	tr.Reset()
	if tr.Len() != 0 || len(tr.Points()) != 0 {
		t.Error("trail not empty after reset")
	}
	tr.Push(pendulum.Point{X: 9})
	if pts := tr.Points(); len(pts) != 1 || pts[0].X != 9 {
		t.Errorf("unexpected points after reset %v", pts)
	}
}
