package evtime

import (
	"math"
	"testing"

	"github.com/banshee-data/tofmon/internal/tof"
)

func contributor(signal, expPi, sigma, p float64) tof.Track {
	tr := tof.Track{TOFSignal: signal, P: p}
	tr.ExpSignal[tof.Pion] = expPi
	tr.ExpSigma[tof.Pion] = sigma
	return tr
}

func TestEstimateWeightedMean(t *testing.T) {
	e := New(nil)
	// Two contributors with equal 100 ps resolution: candidates 200 and
	// 400 ps average to 300; error = sqrt(1/(2/100²)) = 100/√2.
	tracks := []tof.Track{
		contributor(1200, 1000, 100, 1.0),
		contributor(1400, 1000, 100, 1.0),
	}
	est := e.Estimate(tracks)
	if !est.Usable() {
		t.Fatalf("estimate unusable: %+v", est)
	}
	if math.Abs(est.Time-300) > 1e-9 {
		t.Errorf("time = %v, want 300", est.Time)
	}
	want := 100 / math.Sqrt2
	if math.Abs(est.TimeError-want) > 1e-9 {
		t.Errorf("error = %v, want %v", est.TimeError, want)
	}
	if est.Multiplicity != 2 {
		t.Errorf("multiplicity = %d, want 2", est.Multiplicity)
	}
}

func TestEstimateUnequalWeights(t *testing.T) {
	e := New(nil)
	// 50 ps track carries 4x the weight of a 100 ps track.
	tracks := []tof.Track{
		contributor(1000, 1000, 50, 1.0),  // candidate 0
		contributor(1500, 1000, 100, 1.0), // candidate 500
	}
	est := e.Estimate(tracks)
	// (4*0 + 1*500)/5 = 100
	if math.Abs(est.Time-100) > 1e-9 {
		t.Errorf("time = %v, want 100", est.Time)
	}
}

func TestEstimateFilterExcludesFastTracks(t *testing.T) {
	e := New(nil)
	tracks := []tof.Track{
		contributor(1200, 1000, 100, 1.0),
		contributor(1400, 1000, 100, 1.0),
		contributor(9999, 1000, 100, 2.5), // over DefaultMaxP, ignored
	}
	est := e.Estimate(tracks)
	if est.Multiplicity != 2 {
		t.Errorf("multiplicity = %d, want 2 (fast track excluded)", est.Multiplicity)
	}
	if math.Abs(est.Time-300) > 1e-9 {
		t.Errorf("time = %v, want 300", est.Time)
	}
}

func TestEstimateLowMultiplicityUnusable(t *testing.T) {
	e := New(nil)
	est := e.Estimate([]tof.Track{contributor(1200, 1000, 100, 1.0)})
	if est.Usable() {
		t.Errorf("single-track estimate must be unusable, got %+v", est)
	}
	if est.Multiplicity != 1 {
		t.Errorf("multiplicity = %d, want 1", est.Multiplicity)
	}

	if est := e.Estimate(nil); est.Usable() {
		t.Errorf("empty estimate must be unusable, got %+v", est)
	}
}

func TestEstimateFallbackSigmaFromTable(t *testing.T) {
	e := New(nil)
	// Zero recorded resolution falls back to the table's 120 ps.
	tracks := []tof.Track{
		contributor(1200, 1000, 0, 1.0),
		contributor(1400, 1000, 0, 1.0),
	}
	est := e.Estimate(tracks)
	want := 120 / math.Sqrt2
	if math.Abs(est.TimeError-want) > 1e-9 {
		t.Errorf("error = %v, want %v (table fallback)", est.TimeError, want)
	}
}

func TestRemoveBias(t *testing.T) {
	e := New(nil)
	tracks := []tof.Track{
		contributor(1200, 1000, 100, 1.0), // candidate 200
		contributor(1400, 1000, 100, 1.0), // candidate 400
	}
	est := e.Estimate(tracks)

	// Removing track 0 leaves only candidate 400.
	time, timeErr := e.RemoveBias(tracks, 0, est)
	if math.Abs(time-400) > 1e-9 {
		t.Errorf("bias-removed time = %v, want 400", time)
	}
	if math.Abs(timeErr-100) > 1e-9 {
		t.Errorf("bias-removed error = %v, want 100", timeErr)
	}

	// Idempotent: identical inputs, identical output.
	time2, timeErr2 := e.RemoveBias(tracks, 0, est)
	if time2 != time || timeErr2 != timeErr {
		t.Errorf("RemoveBias not idempotent: (%v,%v) vs (%v,%v)", time, timeErr, time2, timeErr2)
	}
}

func TestRemoveBiasNonContributor(t *testing.T) {
	e := New(nil)
	tracks := []tof.Track{
		contributor(1200, 1000, 100, 1.0),
		contributor(1400, 1000, 100, 1.0),
		contributor(9999, 1000, 100, 2.5), // not a contributor
	}
	est := e.Estimate(tracks)
	time, timeErr := e.RemoveBias(tracks, 2, est)
	if time != est.Time || timeErr != est.TimeError {
		t.Errorf("non-contributor removal changed the estimate: (%v,%v)", time, timeErr)
	}
}

func TestRemoveBiasEmptiedEstimateUnchanged(t *testing.T) {
	e := New(nil)
	e.MinMultiplicity = 1
	tracks := []tof.Track{contributor(1200, 1000, 100, 1.0)}
	est := e.Estimate(tracks)
	if !est.Usable() {
		t.Fatalf("estimate should be usable at floor 1: %+v", est)
	}
	time, timeErr := e.RemoveBias(tracks, 0, est)
	if time != est.Time || timeErr != est.TimeError {
		t.Errorf("emptied removal should leave the estimate unchanged, got (%v,%v)", time, timeErr)
	}
}

func TestStandardTable(t *testing.T) {
	tbl := StandardTable()
	pi := tbl.Lookup(tof.Pion)
	ka := tbl.Lookup(tof.Kaon)
	pr := tbl.Lookup(tof.Proton)
	if !(pi.MassGeV < ka.MassGeV && ka.MassGeV < pr.MassGeV) {
		t.Errorf("mass ordering broken: %v %v %v", pi.MassGeV, ka.MassGeV, pr.MassGeV)
	}
	for _, c := range []Constants{pi, ka, pr} {
		if c.SigmaPS != 120 {
			t.Errorf("fallback sigma = %v, want 120", c.SigmaPS)
		}
	}
}
