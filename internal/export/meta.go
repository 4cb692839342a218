package export

import "github.com/san-kum/dpend/internal/pendulum"

// Meta describes how a run was produced.
type Meta struct {
	Integrator string
	Params     pendulum.Params
	Dt         float64
	Duration   float64
}
