// Package viz provides terminal-based visualization for drift runs.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: preset picker and release editor
//   - [Model]: live view animating a drift run step by step
//   - [Canvas]: Braille-based pixel canvas projected over the domain
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume the run
//	R     - Reset to the release state
//	T     - Cycle color themes
//	Tab   - Cycle field parameters
//	Up/Dn - Tune the selected parameter
//	Q     - Quit
package viz
