// Package viz provides the terminal front end for random walk runs.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: parameter screen (population, hop probability, boundary,
//     iterations, speed, seed) that launches a live run
//   - [Model]: live run that redraws the grid every step with a step
//     counter and a progress bar
//   - [RenderGrid]: lipgloss grid drawing shared by both
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart with the same seed
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit (Esc returns to the parameter screen from a live run)
package viz
