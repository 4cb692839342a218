// Package analysis characterises pendulum trajectories.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via twin-trajectory separation
//   - [GeneratePhasePortrait]: 2D projection of the state trajectory
//   - [GeneratePoincareSection]: upward crossings of one component through a level
//   - [PowerSpectrum]: one-sided power spectrum of a sampled signal
//
// # Chaos Detection
//
// A clearly positive largest exponent indicates chaotic motion:
//
//	lambda, err := analysis.LyapunovExponent(model, integ, x0, dt, duration, 1e-8)
//	if lambda > 0.5 {
//	    // nearby starts diverge exponentially
//	}
//
// Small swings of the double pendulum are quasi-periodic and give estimates
// close to zero that shrink as the duration grows.
package analysis
