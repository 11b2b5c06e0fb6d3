// Package viz renders a running simulation in the terminal.
//
// The view is a braille [Canvas] (2x4 dots per cell) showing the star, the
// bodies and their trails projected through a [Camera]. The bubbletea
// [Model] advances the simulator a fixed number of ticks per frame and only
// reads body state; it never changes the physics.
//
// # Keys
//
//	space      pause / resume
//	n          single tick while paused
//	w a s d    pan
//	arrows     tilt and turn
//	+ -        zoom
//	[ ]        ticks per frame
//	t          cycle theme
//	r          toggle trails
//	q          quit
package viz
