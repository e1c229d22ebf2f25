package tof

// Selection defaults, matching the values the task ships with when no
// custom parameters are supplied.
const (
	DefaultMinPt       = 0.1
	DefaultMaxEta      = 0.8
	DefaultMinClusters = 40
	DefaultMaxDCA      = 100.0
	DefaultMaxDCAY     = 10.0
)

// Selector filters raw tracks by kinematic and quality cuts before they
// enter the grouping pipeline. Accept is a pure predicate; rejected tracks
// take no further part in the batch.
type Selector struct {
	MinPt       float64
	MaxEta      float64
	MinClusters int
	MaxDCA      float64
	MaxDCAY     float64
}

// NewSelector returns a Selector with the default cuts.
func NewSelector() Selector {
	return Selector{
		MinPt:       DefaultMinPt,
		MaxEta:      DefaultMaxEta,
		MinClusters: DefaultMinClusters,
		MaxDCA:      DefaultMaxDCA,
		MaxDCAY:     DefaultMaxDCAY,
	}
}

// Accept reports whether tr passes every cut.
func (s Selector) Accept(tr Track) bool {
	if tr.Pt < s.MinPt {
		return false
	}
	if abs(tr.Eta) > s.MaxEta {
		return false
	}
	if tr.NClusters < s.MinClusters {
		return false
	}
	// The propagation to the beam axis is done upstream; a track whose
	// closest approach could not be computed, or sits outside the DCA
	// bounds, is dropped.
	if !tr.DCAValid {
		return false
	}
	if abs(tr.DCA) > s.MaxDCA || abs(tr.DCAY) > s.MaxDCAY {
		return false
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
