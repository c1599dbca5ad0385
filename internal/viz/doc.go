// Package viz renders heat runs in the terminal.
//
// [Model] is a Bubble Tea program that steps a simulation live and plots the
// temperature profile with asciigraph. [RenderSummary] and
// [RenderComparison] format finished runs for the CLI, and [PlotCurve]
// draws a saved curve file.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Steps per frame
//	R     - Restart the run
//	T     - Cycle color themes
//	?     - Show help
//	Q     - Quit
package viz
