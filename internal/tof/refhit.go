package tof

import "github.com/banshee-data/tofmon/internal/units"

// RefChannel indexes the collision-time channels of a reference-detector
// hit: the combined AC estimate, the A side, the C side, and a vertex slot
// that the coincidence counters do not consume.
type RefChannel int

const (
	ChAC RefChannel = iota
	ChA
	ChC
	ChVertex
	numRefChannels
)

// RefHit is one reconstructed point from the fast reference detector. The
// interaction it belongs to is addressed by (Orbit, BC); collision times
// are picoseconds relative to that bunch crossing, with an independent
// validity flag per channel.
type RefHit struct {
	Orbit   uint32
	BC      uint16
	CollTime [numRefChannels]float64
	Valid    [numRefChannels]bool
	Trigger  uint8
}

// Time returns the hit's absolute time in picoseconds, with the orbit taken
// relative to firstOrbit for the batch.
func (r RefHit) Time(firstOrbit uint32) float64 {
	return units.BCTimeFromIR(r.Orbit-firstOrbit, r.BC)
}

// ChannelTime returns the collision time for ch, or 0 when the channel did
// not fire.
func (r RefHit) ChannelTime(ch RefChannel) float64 {
	if !r.Valid[ch] {
		return 0
	}
	return r.CollTime[ch]
}
