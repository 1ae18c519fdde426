// Package viz draws a flow session in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas
//   - [Viewport]: maps the configured domain onto canvas sub-pixels
//   - [Model]: Bubble Tea program that drives the session once per frame
//
// # Key Bindings
//
//	Space   - Pause/Resume
//	.       - Single tick while paused
//	Arrows  - Drag the marker one unit (starts a new trail)
//	D       - Delete the trail being drawn
//	X       - Remove the marker
//	R       - Reset the session
//	T       - Cycle color themes
//	?       - Show help overlay
package viz
