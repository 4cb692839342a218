// Package sim owns the mutable state of one double pendulum and advances it.
//
// A [Simulator] is built once from validated parameters and initial state,
// then stepped by the render loop with [Simulator.Advance], one discrete
// update of size dt per call. Renderers read value copies through
// [Simulator.State] and [Simulator.Positions] and keep a [Trail] of the
// second bob. [Simulator.Run] drives the same loop headlessly for a fixed
// duration.
//
// A Simulator is not safe for concurrent use. Independent simulators share
// nothing and may run on separate goroutines, see [RunAll].
package sim
