package tof

import (
	"sort"

	"github.com/banshee-data/tofmon/internal/units"
)

// RefWindowBC is the half-width, in bunch crossings, of the candidate
// window around a group's time span.
const RefWindowBC = 8

// Matcher extracts, for each track group, the reference hits whose time
// falls within RefWindowBC bunch crossings of the group's span. It keeps
// one monotone cursor into the time-sorted hit stream: both streams are
// globally time ordered within a batch, so hits that fell before one
// group's window can never enter a later group's, and the total scan cost
// across all groups of a batch is linear.
//
// A Matcher is built once per batch and must see groups in increasing time
// order.
type Matcher struct {
	hits       []RefHit
	firstOrbit uint32
	cursor     int
}

// NewMatcher builds a matcher over hits, sorting them by derived time.
// firstOrbit anchors the batch's orbit numbering. A nil or empty hit slice
// yields a matcher that always returns an empty candidate window.
func NewMatcher(hits []RefHit, firstOrbit uint32) *Matcher {
	sorted := make([]RefHit, len(hits))
	copy(sorted, hits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time(firstOrbit) < sorted[j].Time(firstOrbit)
	})
	return &Matcher{hits: sorted, firstOrbit: firstOrbit}
}

// Candidates returns the hits with time in
// [g.First − 8 BC, g.Last + 8 BC], boundary inclusive. The cursor advances
// past hits strictly before the window start and stays on the first
// in-window hit, so overlapping windows of consecutive groups rescan only
// their shared hits.
func (m *Matcher) Candidates(g Group) []RefHit {
	first := g.First() - RefWindowBC*units.BCTimePS
	last := g.Last() + RefWindowBC*units.BCTimePS

	var cand []RefHit
	for j := m.cursor; j < len(m.hits); j++ {
		t := m.hits[j].Time(m.firstOrbit)
		if t < first {
			m.cursor = j + 1
			continue
		}
		if t > last {
			break
		}
		cand = append(cand, m.hits[j])
	}
	return cand
}

// Cursor exposes the stream position for tests of the monotone-advance
// invariant.
func (m *Matcher) Cursor() int { return m.cursor }
