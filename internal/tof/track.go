// Package tof implements the event-time clustering and TOF/FT0 coincidence
// matching engine behind the PID timing monitor.
//
// Per batch the engine selects tracks, partitions them into
// interaction-candidate groups by time adjacency, merge-joins each group
// against the time-sorted reference-detector stream, estimates a per-group
// event time, and accumulates derived quantities (residuals, velocity,
// mass, coincidence times) into fixed-binning counters.
package tof

// Hypothesis indexes the closed set of particle-mass hypotheses a track
// carries expected times for.
type Hypothesis int

const (
	Pion Hypothesis = iota
	Kaon
	Proton
	numHypotheses
)

// Hypotheses lists the closed hypothesis set in index order.
var Hypotheses = [numHypotheses]Hypothesis{Pion, Kaon, Proton}

// String returns the short hypothesis tag used in counter names.
func (h Hypothesis) String() string {
	switch h {
	case Pion:
		return "Pi"
	case Kaon:
		return "Ka"
	case Proton:
		return "Pr"
	}
	return "?"
}

// Track is one reconstructed track with a matched TOF measurement. It is
// immutable for the duration of a batch.
type Track struct {
	// TOFSignal is the measured time of flight in picoseconds, signed.
	TOFSignal float64
	// ExpSignal holds the expected time of flight per mass hypothesis, ps.
	ExpSignal [numHypotheses]float64
	// ExpSigma holds the expected time resolution per hypothesis, ps.
	ExpSigma [numHypotheses]float64
	// Length is the integrated track path length to the TOF layer, cm.
	Length float64
	// P, Pt, Eta are the momentum (GeV/c), transverse momentum and
	// pseudorapidity of the underlying track.
	P   float64
	Pt  float64
	Eta float64
	// NClusters is the inner-tracker cluster count used for quality cuts.
	NClusters int
	// DCA and DCAY are the distance of closest approach to the beam axis
	// and its transverse component; DCAValid is false when the propagation
	// to the axis failed.
	DCA      float64
	DCAY     float64
	DCAValid bool
	// Source identifies which matching chain produced the track.
	Source Source
}

// Group is a run of time-adjacent tracks treated as candidates from one
// interaction. Tracks are ordered ascending by TOFSignal; the slice aliases
// the batch's sorted track list and is only valid within the batch.
type Group struct {
	Tracks []Track
}

// First returns the timestamp of the group's anchor (earliest) track.
func (g Group) First() float64 { return g.Tracks[0].TOFSignal }

// Last returns the timestamp of the group's latest track.
func (g Group) Last() float64 { return g.Tracks[len(g.Tracks)-1].TOFSignal }
