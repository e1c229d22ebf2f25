package tof

import (
	"math"

	"github.com/banshee-data/tofmon/internal/units"
)

// Momentum sub-range, GeV/c, for the residual-vs-estimate-quality
// correlation counters.
const (
	qualityCorrMinP = 0.7
	qualityCorrMaxP = 1.1
)

// Accumulator derives per-group and per-track quantities against the
// estimated event time and bins them into the task's counters.
type Accumulator struct {
	counters *Counters
	oracle   EventTimeOracle
	useRef   bool
}

// NewAccumulator binds counters to an oracle. useRef enables the
// reference-detector coincidence fills; with it false those counters exist
// but are never touched.
func NewAccumulator(c *Counters, oracle EventTimeOracle, useRef bool) *Accumulator {
	return &Accumulator{counters: c, oracle: oracle, useRef: useRef}
}

// ProcessGroup estimates the group's event time and accumulates. An
// unusable estimate means the group touches no counter at all; that is
// ordinary control flow, not an error.
func (a *Accumulator) ProcessGroup(g Group, refCand []RefHit) {
	est := a.oracle.Estimate(g.Tracks)
	if !est.Usable() {
		return
	}

	c := a.counters
	nBC := units.NearestBC(est.Time)
	evTimeBC := est.Time - float64(nBC)*units.BCTimePS
	bcIndex := nBC % units.MaxBunches

	if a.useRef {
		for _, hit := range refCand {
			refTimes := [3]float64{
				hit.ChannelTime(ChAC),
				hit.ChannelTime(ChA),
				hit.ChannelTime(ChC),
			}
			for ch := range refTimes {
				c.EvTimeTOFVsFT0[ch].Fill(evTimeBC, refTimes[ch])
				c.DeltaEvTimeTOFVsFT0[ch].Fill(evTimeBC - refTimes[ch])
			}
			// The window matcher already bounds candidates to 8 BCs, so
			// matching bunch index alone identifies the same crossing.
			if bcIndex == int(hit.BC) {
				for ch := range refTimes {
					c.EvTimeTOFVsFT0SameBC[ch].Fill(evTimeBC, refTimes[ch])
					c.DeltaEvTimeSameBCFT0[ch].Fill(evTimeBC - refTimes[ch])
				}
			}
			c.DeltaBCTOFFT0.Fill(float64(bcIndex - int(hit.BC)))
		}
	}

	for i, tr := range g.Tracks {
		evTime, evTimeRes := a.oracle.RemoveBias(g.Tracks, i, est)

		beta := tr.Length / (tr.TOFSignal - evTime) * units.CInvPSPerCM
		// Velocities outside [0,1] are tolerated, not rejected; the
		// absolute value keeps the root real.
		mass := tr.P / beta * math.Sqrt(math.Abs(1-beta*beta))

		for _, h := range Hypotheses {
			deltat := tr.TOFSignal - evTime - tr.ExpSignal[h]
			c.Deltat[h].Fill(deltat)
			c.DeltatPt[h].Fill(tr.Pt, deltat)
		}
		c.Mass.Fill(mass)
		c.BetaVsP.Fill(tr.P, beta)
		c.MassVsP.Fill(tr.P, mass)
		c.EvTimeTOF.Fill(evTimeBC)

		if tr.P > qualityCorrMinP && tr.P < qualityCorrMaxP {
			deltatPi := tr.TOFSignal - evTime - tr.ExpSignal[Pion]
			c.DeltatPiEvTimeRes.Fill(evTimeRes, deltatPi)
			c.DeltatPiEvTimeMult.Fill(float64(est.Multiplicity), deltatPi)
			c.EvTimeResEvTimeMult.Fill(float64(est.Multiplicity), evTimeRes)
		}
	}
}
