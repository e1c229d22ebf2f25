// Package hist implements fixed-binning 1-D and 2-D counters.
//
// A counter's binning (name, axis ranges, bin counts) is fixed at
// construction and never resized; fills only ever add. Counters are the
// engine's only cross-batch state and are written by a single goroutine —
// callers that share a Set across goroutines must serialize access
// themselves.
package hist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// H1 is a one-dimensional fixed-range counter.
type H1 struct {
	name    string
	title   string
	bins    int
	min     float64
	max     float64
	width   float64
	counts  []float64
	under   float64
	over    float64
	entries int64
}

// NewH1 creates a 1-D counter with bins equal-width bins over [min, max).
func NewH1(name, title string, bins int, min, max float64) *H1 {
	if bins <= 0 || max <= min {
		panic(fmt.Sprintf("hist: invalid binning for %q: bins=%d range=[%v,%v)", name, bins, min, max))
	}
	return &H1{
		name:   name,
		title:  title,
		bins:   bins,
		min:    min,
		max:    max,
		width:  (max - min) / float64(bins),
		counts: make([]float64, bins),
	}
}

// Name returns the counter's stable identifier.
func (h *H1) Name() string { return h.name }

// Title returns the human-readable axis description.
func (h *H1) Title() string { return h.title }

// Bins returns the number of in-range bins.
func (h *H1) Bins() int { return h.bins }

// Range returns the axis bounds.
func (h *H1) Range() (min, max float64) { return h.min, h.max }

// Fill adds one count at x. Values outside [min, max) land in the
// underflow/overflow counters and still count as entries; NaN counts as
// overflow.
func (h *H1) Fill(x float64) {
	h.entries++
	switch {
	case math.IsNaN(x):
		h.over++
	case x < h.min:
		h.under++
	case x >= h.max:
		h.over++
	default:
		h.counts[h.findBin(x)]++
	}
}

func (h *H1) findBin(x float64) int {
	i := int((x - h.min) / h.width)
	if i >= h.bins { // guard the max==x edge against float rounding
		i = h.bins - 1
	}
	return i
}

// BinContent returns the count in bin i.
func (h *H1) BinContent(i int) float64 { return h.counts[i] }

// BinCenter returns the x coordinate at the center of bin i.
func (h *H1) BinCenter(i int) float64 {
	return h.min + (float64(i)+0.5)*h.width
}

// Entries returns the total number of Fill calls since the last Reset,
// including under/overflow.
func (h *H1) Entries() int64 { return h.entries }

// Underflow returns the count of fills below the axis range.
func (h *H1) Underflow() float64 { return h.under }

// Overflow returns the count of fills at or above the axis range.
func (h *H1) Overflow() float64 { return h.over }

// Mean returns the count-weighted mean of the in-range bin centers.
func (h *H1) Mean() float64 {
	return stat.Mean(h.centers(), h.counts)
}

// StdDev returns the count-weighted standard deviation of the in-range
// bin centers.
func (h *H1) StdDev() float64 {
	return stat.StdDev(h.centers(), h.counts)
}

func (h *H1) centers() []float64 {
	c := make([]float64, h.bins)
	for i := range c {
		c[i] = h.BinCenter(i)
	}
	return c
}

// Reset zeroes all bins and the entry count. Binning is untouched.
func (h *H1) Reset() {
	for i := range h.counts {
		h.counts[i] = 0
	}
	h.under, h.over = 0, 0
	h.entries = 0
}

// Snapshot returns an immutable copy of the counter's state.
func (h *H1) Snapshot() Snapshot {
	counts := make([]float64, len(h.counts))
	copy(counts, h.counts)
	return Snapshot{
		Name:    h.name,
		Title:   h.title,
		Dim:     1,
		XBins:   h.bins,
		XMin:    h.min,
		XMax:    h.max,
		Counts:  counts,
		Under:   h.under,
		Over:    h.over,
		Entries: h.entries,
	}
}

// H2 is a two-dimensional fixed-range counter. Counts are stored row-major
// by y bin.
type H2 struct {
	name    string
	title   string
	xbins   int
	xmin    float64
	xmax    float64
	xwidth  float64
	ybins   int
	ymin    float64
	ymax    float64
	ywidth  float64
	counts  []float64
	outside float64
	entries int64
}

// NewH2 creates a 2-D counter over [xmin,xmax) x [ymin,ymax).
func NewH2(name, title string, xbins int, xmin, xmax float64, ybins int, ymin, ymax float64) *H2 {
	if xbins <= 0 || ybins <= 0 || xmax <= xmin || ymax <= ymin {
		panic(fmt.Sprintf("hist: invalid binning for %q", name))
	}
	return &H2{
		name:   name,
		title:  title,
		xbins:  xbins,
		xmin:   xmin,
		xmax:   xmax,
		xwidth: (xmax - xmin) / float64(xbins),
		ybins:  ybins,
		ymin:   ymin,
		ymax:   ymax,
		ywidth: (ymax - ymin) / float64(ybins),
		counts: make([]float64, xbins*ybins),
	}
}

// Name returns the counter's stable identifier.
func (h *H2) Name() string { return h.name }

// Title returns the human-readable axes description.
func (h *H2) Title() string { return h.title }

// XBins returns the number of x bins.
func (h *H2) XBins() int { return h.xbins }

// YBins returns the number of y bins.
func (h *H2) YBins() int { return h.ybins }

// XRange returns the x axis bounds.
func (h *H2) XRange() (min, max float64) { return h.xmin, h.xmax }

// YRange returns the y axis bounds.
func (h *H2) YRange() (min, max float64) { return h.ymin, h.ymax }

// Fill adds one count at (x, y). Points outside either axis range land in
// a single spill counter and still count as entries.
func (h *H2) Fill(x, y float64) {
	h.entries++
	if math.IsNaN(x) || math.IsNaN(y) ||
		x < h.xmin || x >= h.xmax || y < h.ymin || y >= h.ymax {
		h.outside++
		return
	}
	ix := int((x - h.xmin) / h.xwidth)
	if ix >= h.xbins {
		ix = h.xbins - 1
	}
	iy := int((y - h.ymin) / h.ywidth)
	if iy >= h.ybins {
		iy = h.ybins - 1
	}
	h.counts[iy*h.xbins+ix]++
}

// BinContent returns the count in bin (ix, iy).
func (h *H2) BinContent(ix, iy int) float64 { return h.counts[iy*h.xbins+ix] }

// Entries returns the total number of Fill calls since the last Reset.
func (h *H2) Entries() int64 { return h.entries }

// Outside returns the count of fills outside either axis range.
func (h *H2) Outside() float64 { return h.outside }

// Reset zeroes all bins and the entry count. Binning is untouched.
func (h *H2) Reset() {
	for i := range h.counts {
		h.counts[i] = 0
	}
	h.outside = 0
	h.entries = 0
}

// Snapshot returns an immutable copy of the counter's state.
func (h *H2) Snapshot() Snapshot {
	counts := make([]float64, len(h.counts))
	copy(counts, h.counts)
	return Snapshot{
		Name:    h.name,
		Title:   h.title,
		Dim:     2,
		XBins:   h.xbins,
		XMin:    h.xmin,
		XMax:    h.xmax,
		YBins:   h.ybins,
		YMin:    h.ymin,
		YMax:    h.ymax,
		Counts:  counts,
		Over:    h.outside,
		Entries: h.entries,
	}
}

// Snapshot is a frozen copy of a counter, suitable for persistence or
// rendering. For Dim == 2 the counts are row-major by y bin and the Over
// field carries the outside-range spill.
type Snapshot struct {
	Name    string    `json:"name"`
	Title   string    `json:"title"`
	Dim     int       `json:"dim"`
	XBins   int       `json:"x_bins"`
	XMin    float64   `json:"x_min"`
	XMax    float64   `json:"x_max"`
	YBins   int       `json:"y_bins,omitempty"`
	YMin    float64   `json:"y_min,omitempty"`
	YMax    float64   `json:"y_max,omitempty"`
	Counts  []float64 `json:"counts"`
	Under   float64   `json:"under,omitempty"`
	Over    float64   `json:"over,omitempty"`
	Entries int64     `json:"entries"`
}
