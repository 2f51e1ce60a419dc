// Package viz renders force layouts in the terminal.
//
// A [Camera] orbits the origin and projects layout positions onto a
// Braille [Canvas]; [DrawScene] draws links and nodes far to near.
// [GraphModel] is the Bubble Tea program behind the live view: it owns the
// frame clock, ticks the engine with the real elapsed delta and keeps node
// selection to itself.
//
// # Key Bindings
//
//	Space     - Pause/Resume
//	R         - Re-seed and restart the layout
//	Tab/S-Tab - Select next/previous paper
//	[ ]       - Cycle parameters
//	Up/Down   - Tune the selected parameter
//	x y z     - Orbit the camera
//	+ -       - Zoom
//	?         - Show help overlay
package viz
