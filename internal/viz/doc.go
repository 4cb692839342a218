// Package viz renders the pendulum in the terminal.
//
// The live view is a Bubble Tea program: every tick advances the simulator
// by one step and redraws the arms, bobs and the trail of the second bob on
// a braille [Canvas]. A side panel shows the state, the energy history and
// the current energy drift.
//
// # Key Bindings
//
//	Space   - Pause/Resume
//	R       - Reset to the initial state
//	T       - Cycle colour themes
//	S       - Save the current frame as SVG
//	Q / Esc - Quit
//
// [PlotSeries] draws static time series for the non-interactive commands.
package viz
