// Package report renders counter snapshots for visual inspection: a
// self-contained HTML page of charts for a whole set, and PNG export for
// single counters.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/tofmon/internal/hist"
)

// maxRenderBins caps the number of rendered bins per axis; finer counters
// are rebinned by merging adjacent bins so the page stays light.
const maxRenderBins = 200

// WriteHTML renders every snapshot as one chart on a single page: bars
// for 1-D counters, heatmaps for 2-D.
func WriteHTML(w io.Writer, snaps []hist.Snapshot) error {
	page := components.NewPage()
	page.PageTitle = "PID timing monitor"

	for _, s := range snaps {
		switch s.Dim {
		case 1:
			page.AddCharts(barChart(s))
		case 2:
			page.AddCharts(heatMap(s))
		default:
			return fmt.Errorf("snapshot %s: unsupported dimension %d", s.Name, s.Dim)
		}
	}
	return page.Render(w)
}

func barChart(s hist.Snapshot) *charts.Bar {
	counts, edgesLo, width := rebin1D(s)

	categories := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, v := range counts {
		categories[i] = strconv.FormatFloat(edgesLo+(float64(i)+0.5)*width, 'g', 5, 64)
		data[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: s.Name, Subtitle: fmt.Sprintf("%s  entries=%d", s.Title, s.Entries)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(categories).AddSeries("counts", data)
	return bar
}

func heatMap(s hist.Snapshot) *charts.HeatMap {
	counts, xbins, ybins := rebin2D(s)

	var data []opts.HeatMapData
	maxCount := 0.0
	for iy := 0; iy < ybins; iy++ {
		for ix := 0; ix < xbins; ix++ {
			v := counts[iy*xbins+ix]
			if v == 0 {
				continue
			}
			if v > maxCount {
				maxCount = v
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{ix, iy, v}})
		}
	}

	xcats := make([]string, xbins)
	for i := range xcats {
		xcats[i] = strconv.FormatFloat(s.XMin+(float64(i)+0.5)*(s.XMax-s.XMin)/float64(xbins), 'g', 4, 64)
	}
	ycats := make([]string, ybins)
	for i := range ycats {
		ycats[i] = strconv.FormatFloat(s.YMin+(float64(i)+0.5)*(s.YMax-s.YMin)/float64(ybins), 'g', 4, 64)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: s.Name, Subtitle: fmt.Sprintf("%s  entries=%d", s.Title, s.Entries)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ycats}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#31688e", "#35b779", "#fde725"}},
		}),
	)
	hm.SetXAxis(xcats).AddSeries("counts", data)
	return hm
}

// rebin1D merges adjacent bins of a 1-D snapshot down to at most
// maxRenderBins, preserving total counts.
func rebin1D(s hist.Snapshot) (counts []float64, lo, width float64) {
	k := mergeFactor(s.XBins)
	out := make([]float64, (s.XBins+k-1)/k)
	for i, v := range s.Counts {
		out[i/k] += v
	}
	return out, s.XMin, (s.XMax - s.XMin) / float64(s.XBins) * float64(k)
}

// rebin2D merges adjacent bins along both axes of a 2-D snapshot.
func rebin2D(s hist.Snapshot) (counts []float64, xbins, ybins int) {
	kx := mergeFactor(s.XBins)
	ky := mergeFactor(s.YBins)
	xbins = (s.XBins + kx - 1) / kx
	ybins = (s.YBins + ky - 1) / ky
	out := make([]float64, xbins*ybins)
	for iy := 0; iy < s.YBins; iy++ {
		for ix := 0; ix < s.XBins; ix++ {
			out[(iy/ky)*xbins+ix/kx] += s.Counts[iy*s.XBins+ix]
		}
	}
	return out, xbins, ybins
}

func mergeFactor(bins int) int {
	k := 1
	for bins/k > maxRenderBins {
		k++
	}
	return k
}
