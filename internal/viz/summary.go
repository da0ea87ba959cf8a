package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/sim"
	"github.com/san-kum/ffeval/internal/stage"
)

// RenderSummary lists the term counts and table widths of a staged system.
func RenderSummary(name string, s stage.Summary) string {
	rows := [][2]string{
		{"atoms", fmt.Sprint(s.Atoms)},
		{"types", fmt.Sprint(s.Types)},
		{"nbfix", fmt.Sprint(s.NBFix)},
		{"bonds", fmt.Sprint(s.Bonds)},
		{"angles", fmt.Sprint(s.Angles)},
		{"dihedrals", fmt.Sprint(s.Dihedrals)},
		{"impropers", fmt.Sprint(s.Impropers)},
		{"1-4 pairs", fmt.Sprint(s.Pairs14)},
		{"widths", fmt.Sprintf("excl %d  bond %d  1-4 %d  torsion %d", s.ExclusionWidth, s.BondWidth, s.Pair14Width, s.TorsionWidth)},
	}
	return Panel.Render(Title.Render(name) + "\n" + labelled(rows))
}

// RenderEnergies prints one row per frame with the six categories and the
// total, followed by a sparkline of the totals.
func RenderEnergies(result *sim.Result, limit int) string {
	var sb strings.Builder
	header := fmt.Sprintf("%6s", "frame")
	for _, c := range ff.Categories() {
		header += fmt.Sprintf(" %12s", c)
	}
	header += fmt.Sprintf(" %12s", "total")
	sb.WriteString(HeaderStyle.Render(header) + "\n")

	n := result.NumFrames()
	if limit > 0 && n > limit {
		n = limit
	}
	for i := 0; i < n; i++ {
		row := fmt.Sprintf("%6d", i)
		for _, v := range result.Energies[i] {
			row += fmt.Sprintf(" %12.5f", v)
		}
		sb.WriteString(row + MetricValue.Render(fmt.Sprintf(" %12.5f", result.Totals[i])) + "\n")
	}
	if n < result.NumFrames() {
		sb.WriteString(Subtle.Render(fmt.Sprintf("... %d more frames", result.NumFrames()-n)) + "\n")
	}
	if result.NumFrames() > 1 {
		sb.WriteString(MetricLabel.Render("total ") + SparklineChart(result.Totals, 60) + "\n")
	}
	return sb.String()
}

// RenderMetrics lists metrics sorted by name.
func RenderMetrics(metrics map[string]float64) string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][2]string, len(names))
	for i, name := range names {
		rows[i] = [2]string{name, fmt.Sprintf("%.6g", metrics[name])}
	}
	return labelled(rows)
}

// RenderCheck reports a force check against tol.
func RenderCheck(frame int, maxDev float64, atom int, tol float64) string {
	status := Good.Render("ok")
	if maxDev > tol {
		status = Bad.Render("FAIL")
	}
	return fmt.Sprintf("frame %-4d %s  max deviation %s at atom %d",
		frame, status, MetricValue.Render(fmt.Sprintf("%.3e", maxDev)), atom)
}

func labelled(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = MetricLabel.Render(fmt.Sprintf("%-*s", width, r[0])) + "  " + MetricValue.Render(r[1])
	}
	return strings.Join(lines, "\n")
}
