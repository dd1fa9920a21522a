// Package viz renders trajectories for the terminal and for image files.
//
//   - [Plot], [PlotMany]: line charts drawn with asciigraph
//   - [SavePNG]: PNG line plots drawn with gonum/plot
//   - [Replay]: Bubble Tea model that plays a stored trajectory back
//   - [Table]: lipgloss tables for comparison reports
//
// # Key Bindings (Replay)
//
//	Space - Pause/Resume playback
//	R     - Restart from t0
//	←/→   - Step back/forward while paused
//	Q     - Quit
//
// Non-finite states are skipped when drawing; the trajectory itself is never
// altered.
package viz
