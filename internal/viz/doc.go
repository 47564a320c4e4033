// Package viz renders a live session in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: one session stepped at 60 ticks per second
//   - [Canvas]: Braille-based pixel canvas the frame is rasterized onto
//   - [Viewport]: world-to-canvas mapping, and cell-to-world for the mouse
//
// # Key Bindings
//
//	Space   - Pause/Resume simulation
//	R       - Reset the active mode
//	S/Enter - Start (drop the settling balls)
//	M       - Cycle to the next mode
//	?       - Show help overlay
//	Q       - Quit
//
// The terminal mouse works like the window does: drag a ball to throw
// it, drag from the cannon to aim.
package viz
