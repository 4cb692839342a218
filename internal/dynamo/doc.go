// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of autonomous ordinary differential equations (dX/dt = f(X, t)):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems
//   - [Integrator]: fixed-step numerical scheme
//   - [Hamiltonian]: systems that can report their total energy
//   - [Observer] and [Metric]: per-step hooks used by batch runs
//
// # Example
//
//	model := pendulum.NewModel(params)
//	next := integrators.NewRK4().Step(model, model.Pack(s), 0, dt)
//
// # Thread Safety
//
// Integrators keep scratch buffers between calls and are NOT thread-safe.
// Give every concurrent simulation its own integrator.
package dynamo
