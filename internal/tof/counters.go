package tof

import "github.com/banshee-data/tofmon/internal/hist"

// refChannelTag names the reference-detector channels in counter names,
// indexed by RefChannel.
var refChannelTag = [3]string{"AC", "A", "C"}

// Counters is the task's pre-declared counter inventory. Names and
// binnings form the task's stable output contract and never change after
// construction; bin contents only grow until an explicit Reset.
type Counters struct {
	Set *hist.Set

	// Per-track residuals against the bias-removed event time, one per
	// mass hypothesis, plus their spread over transverse momentum.
	Deltat   [numHypotheses]*hist.H1
	DeltatPt [numHypotheses]*hist.H2

	// Derived kinematics.
	Mass    *hist.H1
	MassVsP *hist.H2
	BetaVsP *hist.H2

	// Momentum sub-range (0.7–1.1 GeV/c) correlations of the pion
	// residual against the estimate's quality.
	DeltatPiEvTimeRes   *hist.H2
	DeltatPiEvTimeMult  *hist.H2
	EvTimeResEvTimeMult *hist.H2

	// Event time of the track stream w.r.t. its bunch crossing.
	EvTimeTOF *hist.H1

	// Coincidence with the reference detector, per channel (AC, A, C):
	// 2-D time-vs-time, 1-D difference, and the same-BC gated duplicates.
	EvTimeTOFVsFT0       [3]*hist.H2
	DeltaEvTimeTOFVsFT0  [3]*hist.H1
	EvTimeTOFVsFT0SameBC [3]*hist.H2
	DeltaEvTimeSameBCFT0 [3]*hist.H1
	DeltaBCTOFFT0        *hist.H1
}

// NewCounters declares the full counter inventory into a fresh set.
func NewCounters() *Counters {
	s := hist.NewSet()
	c := &Counters{Set: s}

	c.Deltat[Pion] = s.H1("DeltatPi", ";t_{TOF} - t_{exp}^{#pi} (ps)", 500, -5000, 5000)
	c.Deltat[Kaon] = s.H1("DeltatKa", ";t_{TOF} - t_{exp}^{K} (ps)", 500, -5000, 5000)
	c.Deltat[Proton] = s.H1("DeltatPr", ";t_{TOF} - t_{exp}^{p} (ps)", 500, -5000, 5000)
	c.DeltatPt[Pion] = s.H2("DeltatPi_Pt", ";#it{p}_{T} (GeV/#it{c});t_{TOF} - t_{exp}^{#pi} (ps)", 5000, 0, 20, 500, -5000, 5000)
	c.DeltatPt[Kaon] = s.H2("DeltatKa_Pt", ";#it{p}_{T} (GeV/#it{c});t_{TOF} - t_{exp}^{K} (ps)", 1000, 0, 20, 500, -5000, 5000)
	c.DeltatPt[Proton] = s.H2("DeltatPr_Pt", ";#it{p}_{T} (GeV/#it{c});t_{TOF} - t_{exp}^{p} (ps)", 1000, 0, 20, 500, -5000, 5000)
	c.Mass = s.H1("HadronMasses", ";M (GeV/#it{c}^{2})", 1000, 0, 3)
	c.MassVsP = s.H2("HadronMassesvsP", ";#it{p} (GeV/#it{c});M (GeV/#it{c}^{2})", 1000, 0, 5, 1000, 0, 3)
	c.BetaVsP = s.H2("BetavsP", ";#it{p} (GeV/#it{c});TOF #beta", 1000, 0, 5, 1000, 0, 1.5)
	c.DeltatPiEvTimeRes = s.H2("DeltatPiEvtimeRes", "0.7 < p < 1.1 GeV/#it{c};TOF event time resolution (ps);t_{TOF} - t_{exp}^{#pi} (ps)", 200, 0, 200, 500, -5000, 5000)
	c.DeltatPiEvTimeMult = s.H2("DeltatPiEvTimeMult", "0.7 < p < 1.1 GeV/#it{c};TOF multiplicity; t_{TOF} - t_{exp}^{#pi} (ps)", 100, 0, 100, 500, -5000, 5000)
	c.EvTimeResEvTimeMult = s.H2("EvTimeResEvTimeMult", "0.7 < p < 1.1 GeV/#it{c};TOF multiplicity;TOF event time resolution (ps)", 100, 0, 100, 200, 0, 200)
	c.EvTimeTOF = s.H1("EvTimeTOF", "t_{0}^{TOF};t_{0}^{TOF} (ps);Counts", 1000, -5000, 5000)

	for ch, tag := range refChannelTag {
		c.EvTimeTOFVsFT0[ch] = s.H2("EvTimeTOFVsFT0"+tag,
			"t_{0}^{FT0"+tag+"} vs t_{0}^{TOF} w.r.t. BC;t_{0}^{TOF} w.r.t. BC (ps);t_{0}^{FT0"+tag+"} w.r.t. BC (ps)",
			1000, -5000, 5000, 1000, -5000, 5000)
	}
	for ch, tag := range refChannelTag {
		c.DeltaEvTimeTOFVsFT0[ch] = s.H1("DeltaEvTimeTOFVsFT0"+tag,
			";t_{0}^{TOF} - t_{0}^{FT0"+tag+"} (ps)", 200, -2000, 2000)
	}
	for ch, tag := range refChannelTag {
		c.EvTimeTOFVsFT0SameBC[ch] = s.H2("EvTimeTOFVsFT0"+tag+"SameBC",
			"t_{0}^{FT0"+tag+"} vs t_{0}^{TOF} w.r.t. BC;t_{0}^{TOF} w.r.t. BC (ps);t_{0}^{FT0"+tag+"} w.r.t. BC (ps)",
			1000, -5000, 5000, 1000, -5000, 5000)
	}
	for ch, tag := range refChannelTag {
		c.DeltaEvTimeSameBCFT0[ch] = s.H1("DeltaEvTimeTOFVsFT0"+tag+"SameBC",
			";t_{0}^{TOF} - t_{0}^{FT0"+tag+"} (ps)", 200, -2000, 2000)
	}
	c.DeltaBCTOFFT0 = s.H1("DeltaBCTOFFT0", "#Delta BC (TOF-FT0 evt time);#Delta BC", 16, -8, 8)

	return c
}
