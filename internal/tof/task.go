package tof

import (
	"fmt"

	"github.com/banshee-data/tofmon/internal/monitoring"
)

// InputTrack is the kinematic side of a reconstructed track as handed off
// by the host's decoding glue, before it is joined with its TOF match.
type InputTrack struct {
	P         float64
	Pt        float64
	Eta       float64
	NClusters int
	DCA       float64
	DCAY      float64
	DCAValid  bool
	Source    Source
}

// TOFMatch is the TOF-side matching record for one track. TrackIndex
// references the batch's InputTrack slice; the correspondence is 1:1 and a
// dangling index aborts the batch.
type TOFMatch struct {
	TrackIndex int
	// Signal is the measured TOF time, ps.
	Signal float64
	// ExpSignal and ExpSigma are per-hypothesis expected times and
	// resolutions, ps, ordered as the Hypotheses set.
	ExpSignal [3]float64
	ExpSigma  [3]float64
	// Length is the integrated path length to the TOF layer, cm.
	Length float64
}

// Batch is one unit of input: the decoded tracks and matches for a time
// frame, plus the optional reference-detector stream and the batch's first
// orbit number (reference orbits are stored absolute and converted to
// batch-relative).
type Batch struct {
	Tracks     []InputTrack
	Matches    []TOFMatch
	RefHits    []RefHit
	FirstOrbit uint32
}

// Task owns one run's worth of engine state: the configuration, the
// event-time oracle and the counters. Batches are processed strictly one
// at a time by a single goroutine; the only state carried across batches
// is the counters.
type Task struct {
	cfg      Config
	oracle   EventTimeOracle
	counters *Counters
	acc      *Accumulator
	batches  int
}

// NewTask builds a task from a parsed configuration and an oracle,
// declaring the full counter inventory.
func NewTask(cfg Config, oracle EventTimeOracle) *Task {
	c := NewCounters()
	return &Task{
		cfg:      cfg,
		oracle:   oracle,
		counters: c,
		acc:      NewAccumulator(c, oracle, cfg.UseFT0),
	}
}

// Counters exposes the task's counter inventory.
func (t *Task) Counters() *Counters { return t.counters }

// Reset zeroes every counter. Bound to activity boundaries: a new run
// starts from empty counters with the same binning contract.
func (t *Task) Reset() {
	t.counters.Set.Reset()
}

// ProcessBatch runs the full pipeline over one batch: join tracks with
// their TOF matches, select, sort, group, window-match against the
// reference stream and accumulate. It returns an error only for data
// inconsistencies; every in-band skip condition is ordinary control flow.
func (t *Task) ProcessBatch(b Batch) error {
	t.batches++

	if len(b.Matches) > len(b.Tracks) {
		return fmt.Errorf("batch %d: %d TOF matches for %d tracks", t.batches, len(b.Matches), len(b.Tracks))
	}

	cands := make([]Track, 0, len(b.Matches))
	for _, m := range b.Matches {
		if m.TrackIndex < 0 || m.TrackIndex >= len(b.Tracks) {
			return fmt.Errorf("batch %d: TOF match references track %d of %d", t.batches, m.TrackIndex, len(b.Tracks))
		}
		in := b.Tracks[m.TrackIndex]
		if !t.cfg.Sources.Has(in.Source) {
			continue
		}
		tr := joinTrack(in, m)
		if !t.cfg.Selector.Accept(tr) {
			continue
		}
		cands = append(cands, tr)
	}

	SortTracks(cands)

	var refHits []RefHit
	if t.cfg.UseFT0 {
		refHits = b.RefHits
	}
	matcher := NewMatcher(refHits, b.FirstOrbit)

	groups := Groups(cands)
	for _, g := range groups {
		t.acc.ProcessGroup(g, matcher.Candidates(g))
	}

	monitoring.Logf("tof: batch %d: %d tracks selected, %d groups, %d reference hits",
		t.batches, len(cands), len(groups), len(refHits))
	return nil
}

func joinTrack(in InputTrack, m TOFMatch) Track {
	tr := Track{
		TOFSignal: m.Signal,
		Length:    m.Length,
		P:         in.P,
		Pt:        in.Pt,
		Eta:       in.Eta,
		NClusters: in.NClusters,
		DCA:       in.DCA,
		DCAY:      in.DCAY,
		DCAValid:  in.DCAValid,
		Source:    in.Source,
	}
	for _, h := range Hypotheses {
		tr.ExpSignal[h] = m.ExpSignal[h]
		tr.ExpSigma[h] = m.ExpSigma[h]
	}
	return tr
}
