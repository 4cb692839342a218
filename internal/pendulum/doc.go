// Package pendulum implements the mechanical model of a planar double
// pendulum: two massless rigid arms, each ending in a point mass, swinging
// under gravity without friction.
//
// Angles are absolute, measured from straight down with counter-clockwise
// positive, and are never wrapped into [0, 2π). The rotation count they carry
// is what lets trails and phase portraits tell a full flip from a swing.
//
//   - [Params]: masses, arm lengths and gravity, fixed for a run
//   - [State]: angles and angular velocities
//   - [Accelerations]: closed-form equations of motion
//   - [Model]: adapts the equations to [dynamo.System] for the integrators
//
// # Singular configurations
//
// The shared denominator 2·m1 + m2 − m2·cos 2δ is bounded below by 2·m1, so
// for validated parameters it never vanishes. Accelerations are not clamped:
// extreme velocities or an oversized time step produce large or non-finite
// values that propagate into the state, where callers detect them with
// [State.IsFinite].
package pendulum
