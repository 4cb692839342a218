package analysis

import (
	"math"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/pendulum"
)

// FlipEnergy is the least total energy at which either arm can pass over its
// pivot. The cheapest flip raises the upper arm with the lower one hanging,
// or the lower arm with the upper one hanging.
func FlipEnergy(p pendulum.Params) float64 {
	upper := p.M1*p.Gravity*p.L1 + p.M2*p.Gravity*(p.L1-p.L2)
	lower := -(p.M1+p.M2)*p.Gravity*p.L1 + p.M2*p.Gravity*p.L2
	return math.Min(upper, lower)
}

// CanFlip reports whether s has enough energy for a flip. When it returns
// false no arm of an exactly integrated trajectory ever turns over.
func CanFlip(s pendulum.State, p pendulum.Params) bool {
	return pendulum.Energy(s, p) >= FlipEnergy(p)
}

// FirstFlip returns the first recorded time at which either arm has turned
// past upright, |θ| > π. Angles are not wrapped, so a flip stays visible.
func FirstFlip(times []float64, states []dynamo.State) (float64, bool) {
	for i, x := range states {
		if len(x) < 2 {
			continue
		}
		if math.Abs(x[0]) > math.Pi || math.Abs(x[1]) > math.Pi {
			return times[i], true
		}
	}
	return math.NaN(), false
}
