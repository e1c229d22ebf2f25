// Package evtime provides the production event-time estimator consumed by
// the engine as its EventTimeOracle.
//
// The estimate is the inverse-variance weighted mean of per-track event
// time candidates: each contributing track proposes
// TOFSignal − ExpSignal[Pion] as the interaction's time origin, weighted by
// its expected time resolution. Tracks outside the contributor filter
// (fast tracks, by default p ≥ 2 GeV/c) are excluded; an estimate built
// from fewer than MinMultiplicity contributors is reported unusable.
package evtime

import (
	"math"

	"github.com/banshee-data/tofmon/internal/tof"
)

// DefaultMaxP is the default momentum ceiling, in GeV/c, for a track to
// contribute to the estimate.
const DefaultMaxP = 2.0

// DefaultMinMultiplicity is the smallest contributor count that yields a
// usable estimate. Below it there is nothing to cross-check a track
// against once its own contribution is removed.
const DefaultMinMultiplicity = 2

// unusableTimeError is returned as the TimeError of estimates that cannot
// be used; it sits far above tof.MaxUsableTimeError.
const unusableTimeError = 1e6

// Constants are the per-hypothesis values the estimator reads from its
// injected table.
type Constants struct {
	// MassGeV is the hypothesis rest mass in GeV/c².
	MassGeV float64
	// SigmaPS is the fallback expected-time resolution in ps, used when a
	// track record carries none.
	SigmaPS float64
}

// ConstantsTable is the read-only lookup capability for hypothesis
// constants. Implementations must return stable values for the lifetime of
// the estimator.
type ConstantsTable interface {
	Lookup(h tof.Hypothesis) Constants
}

// StandardTable returns the built-in hypothesis table: PDG masses and a
// flat 120 ps expected resolution.
func StandardTable() ConstantsTable {
	return standardTable{}
}

type standardTable struct{}

func (standardTable) Lookup(h tof.Hypothesis) Constants {
	c := Constants{SigmaPS: 120}
	switch h {
	case tof.Pion:
		c.MassGeV = 0.13957039
	case tof.Kaon:
		c.MassGeV = 0.493677
	case tof.Proton:
		c.MassGeV = 0.93827209
	}
	return c
}

// Estimator is a weighted-mean event-time oracle. The zero value is not
// usable; construct with New.
type Estimator struct {
	// Filter keeps a track in the contributor set.
	Filter func(tof.Track) bool
	// MinMultiplicity is the usability floor on the contributor count.
	MinMultiplicity int

	table ConstantsTable
}

// New returns an estimator with the default contributor filter
// (p < DefaultMaxP) and multiplicity floor, reading hypothesis constants
// from table. A nil table selects StandardTable.
func New(table ConstantsTable) *Estimator {
	if table == nil {
		table = StandardTable()
	}
	return &Estimator{
		Filter:          func(tr tof.Track) bool { return tr.P < DefaultMaxP },
		MinMultiplicity: DefaultMinMultiplicity,
		table:           table,
	}
}

// contribution returns track tr's event-time candidate and weight, or
// ok=false when the track is outside the contributor set.
func (e *Estimator) contribution(tr tof.Track) (t, w float64, ok bool) {
	if !e.Filter(tr) {
		return 0, 0, false
	}
	sigma := tr.ExpSigma[tof.Pion]
	if sigma <= 0 {
		sigma = e.table.Lookup(tof.Pion).SigmaPS
	}
	return tr.TOFSignal - tr.ExpSignal[tof.Pion], 1 / (sigma * sigma), true
}

// Estimate computes the weighted-mean event time of the group.
func (e *Estimator) Estimate(tracks []tof.Track) tof.Estimate {
	var s0, s1 float64
	n := 0
	for _, tr := range tracks {
		t, w, ok := e.contribution(tr)
		if !ok {
			continue
		}
		s0 += w
		s1 += w * t
		n++
	}
	if n < e.MinMultiplicity || s0 <= 0 {
		return tof.Estimate{TimeError: unusableTimeError, Multiplicity: n}
	}
	return tof.Estimate{
		Time:         s1 / s0,
		TimeError:    math.Sqrt(1 / s0),
		Multiplicity: n,
	}
}

// RemoveBias recomputes the estimate with track i's contribution removed.
// A track outside the contributor set leaves the estimate unchanged; a
// removal that would empty the contributor set also leaves it unchanged,
// matching the upstream estimator's behaviour.
func (e *Estimator) RemoveBias(tracks []tof.Track, i int, est tof.Estimate) (time, timeError float64) {
	ti, wi, ok := e.contribution(tracks[i])
	if !ok {
		return est.Time, est.TimeError
	}
	var s0, s1 float64
	for _, tr := range tracks {
		t, w, contributes := e.contribution(tr)
		if !contributes {
			continue
		}
		s0 += w
		s1 += w * t
	}
	s0 -= wi
	s1 -= wi * ti
	if s0 <= 0 {
		return est.Time, est.TimeError
	}
	return s1 / s0, math.Sqrt(1 / s0)
}
