package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/tofmon/internal/hist"
)

// SavePNG writes a 1-D snapshot as a step-line PNG, for quick shifts-style
// inspection without a browser.
func SavePNG(s hist.Snapshot, path string) error {
	if s.Dim != 1 {
		return fmt.Errorf("snapshot %s: PNG export supports 1-D counters only", s.Name)
	}

	counts, lo, width := rebin1D(s)
	pts := make(plotter.XYs, len(counts))
	for i, v := range counts {
		pts[i] = plotter.XY{X: lo + (float64(i)+0.5)*width, Y: v}
	}

	p := plot.New()
	p.Title.Text = s.Name
	p.X.Label.Text = s.Title
	p.Y.Label.Text = "counts"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot %s: %w", s.Name, err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
