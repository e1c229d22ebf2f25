// Package units provides shared accelerator timing constants and conversions.
//
// All absolute times in the engine are picoseconds. The accelerator delivers
// collisions on a fixed bunch-crossing (BC) grid: MaxBunches crossings per
// orbit, one crossing every BCTimePS picoseconds. Detector records address a
// crossing as an (orbit, bc) pair; these helpers convert between that pair
// and absolute picoseconds.
package units

const (
	// BCTimePS is the bunch-crossing period in picoseconds (25 ns).
	BCTimePS = 25000.0
	// BCTimePSInv is 1/BCTimePS, kept as a constant so conversions
	// multiply rather than divide.
	BCTimePSInv = 1.0 / BCTimePS
	// MaxBunches is the number of bunch crossings per orbit.
	MaxBunches = 3564
	// OrbitTimePS is the duration of one full orbit in picoseconds.
	OrbitTimePS = MaxBunches * BCTimePS
	// CInvPSPerCM is the inverse speed of light in ps/cm. Dividing a
	// path length in cm over a flight time in ps by the speed of light
	// via this constant yields a dimensionless velocity (beta).
	CInvPSPerCM = 33.35641
)

// BCTimeFromIR converts an interaction record (orbit, bc), with the orbit
// taken relative to the first orbit of the batch, to absolute picoseconds.
func BCTimeFromIR(orbit uint32, bc uint16) float64 {
	return (float64(orbit)*MaxBunches + float64(bc)) * BCTimePS
}

// NearestBC returns the bunch-crossing index closest to t. A half-period
// offset keeps the truncation from rounding down for times just before a
// crossing; t is expected to be bounded below by -BCTimePS/5.
func NearestBC(t float64) int {
	return int((t + BCTimePS/5) * BCTimePSInv)
}

// TimeWRTBC returns t relative to its nearest bunch crossing, in
// picoseconds.
func TimeWRTBC(t float64) float64 {
	return t - float64(NearestBC(t))*BCTimePS
}
