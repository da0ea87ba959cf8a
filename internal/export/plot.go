package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/sim"
)

var formats = map[string]bool{".png": true, ".svg": true, ".pdf": true}

// EnergyPlot draws one line per category, plus the total, against the frame
// index. The image format follows the extension of path.
func EnergyPlot(result *sim.Result, title, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !formats[ext] {
		return fmt.Errorf("unsupported plot format %q", ext)
	}
	if result.NumFrames() == 0 {
		return fmt.Errorf("no frames to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "energy (kcal/mol)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, c := range ff.Categories() {
		if err := addSeries(p, c.String(), result.Series(c), i); err != nil {
			return err
		}
	}
	if err := addSeries(p, "total", result.Totals, ff.NumCategories); err != nil {
		return err
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

func addSeries(p *plot.Plot, name string, ys []float64, style int) error {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i].X = float64(i)
		pts[i].Y = y
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	line.LineStyle.Color = plotutil.Color(style)
	line.LineStyle.Dashes = plotutil.Dashes(style / len(plotutil.DefaultColors))
	points.GlyphStyle.Color = line.LineStyle.Color
	points.GlyphStyle.Shape = plotutil.Shape(style)

	p.Add(line, points)
	p.Legend.Add(name, line, points)
	return nil
}
