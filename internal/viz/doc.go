// Package viz renders evaluation results for the terminal with lipgloss.
//
//   - [RenderSummary]: staged system sizes and table widths
//   - [RenderEnergies]: per-frame category energies
//   - [RenderMetrics]: run metrics, sorted by name
//   - [SparklineChart], [ProgressBar]: compact inline charts
package viz
