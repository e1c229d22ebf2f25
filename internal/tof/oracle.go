package tof

// MaxUsableTimeError is the usability threshold on an event-time estimate,
// in picoseconds. An estimate whose TimeError is at or above this value is
// the oracle's "not usable" signal: the group's fills are skipped and
// processing continues with the next group.
const MaxUsableTimeError = 150.0

// Estimate is a combined event-time estimate for one track group.
type Estimate struct {
	// Time is the estimated common time origin, ps.
	Time float64
	// TimeError is the estimate's uncertainty, ps. At or above
	// MaxUsableTimeError the estimate is unusable.
	TimeError float64
	// Multiplicity is the number of tracks that contributed.
	Multiplicity int
}

// Usable reports whether the estimate may gate coincidence and per-track
// accumulation.
func (e Estimate) Usable() bool { return e.TimeError < MaxUsableTimeError }

// EventTimeOracle estimates a group's event time from the combinatorial
// agreement of per-track expected times. The engine treats it as opaque:
// it calls Estimate once per group and RemoveBias once per track in a
// usable group, and reacts only to the usability of the result.
type EventTimeOracle interface {
	// Estimate computes the group's event time. tracks is the group's
	// time-ordered track slice.
	Estimate(tracks []Track) Estimate

	// RemoveBias returns the estimate with track i's own contribution
	// removed, for evaluating that track's residual without
	// self-correlation. It must be a pure function of its arguments:
	// calling it twice with identical inputs yields identical output.
	RemoveBias(tracks []Track, i int, est Estimate) (time, timeError float64)
}
