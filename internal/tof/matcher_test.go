package tof

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/tofmon/internal/units"
)

// hitAtBC builds a RefHit at the given batch-relative bunch-crossing count.
func hitAtBC(bc int) RefHit {
	return RefHit{
		Orbit: uint32(bc / units.MaxBunches),
		BC:    uint16(bc % units.MaxBunches),
	}
}

// groupSpanBC builds a group whose anchor and last track sit at the given
// bunch-crossing counts.
func groupSpanBC(firstBC, lastBC int) Group {
	return Group{Tracks: tracksAt(float64(firstBC)*units.BCTimePS, float64(lastBC)*units.BCTimePS)}
}

func TestMatcherWindow(t *testing.T) {
	// Window half-width is 8 BC. Stream laid out around a group spanning
	// [160, 168] BC: window is [152, 176] BC, boundary inclusive.
	hits := []RefHit{
		hitAtBC(88),  // 9 windows early: excluded
		hitAtBC(160), // on the group anchor: included
		hitAtBC(176), // exactly on the window edge: included
		hitAtBC(320), // far late: excluded
	}
	m := NewMatcher(hits, 0)

	got := m.Candidates(groupSpanBC(160, 168))
	want := []RefHit{hitAtBC(160), hitAtBC(176)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate window mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherCursorMonotone(t *testing.T) {
	hits := []RefHit{
		hitAtBC(10), hitAtBC(100), hitAtBC(110), hitAtBC(500), hitAtBC(900),
	}
	m := NewMatcher(hits, 0)

	groups := []Group{
		groupSpanBC(100, 104),
		groupSpanBC(108, 112),
		groupSpanBC(500, 500),
		groupSpanBC(2000, 2000),
	}
	prevCursor := 0
	counts := make([]int, len(groups))
	for i, g := range groups {
		counts[i] = len(m.Candidates(g))
		if m.Cursor() < prevCursor {
			t.Fatalf("cursor moved backwards: %d after %d", m.Cursor(), prevCursor)
		}
		prevCursor = m.Cursor()
	}

	// Group 0 window [92,112]: hits 100, 110. Group 1 window [100,120]:
	// the shared hits 100 and 110 again; the cursor must not have passed
	// them. Group 2 picks up 500; group 3 finds nothing past 900+8.
	want := []int{2, 2, 1, 0}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("candidate counts (-want +got):\n%s", diff)
	}
}

func TestMatcherOverlapResume(t *testing.T) {
	// After a group whose window ends before a hit, that hit must still
	// be available to the next group.
	hits := []RefHit{hitAtBC(50)}
	m := NewMatcher(hits, 0)

	if got := m.Candidates(groupSpanBC(10, 12)); len(got) != 0 {
		t.Fatalf("window [2,20] should be empty, got %d hits", len(got))
	}
	if got := m.Candidates(groupSpanBC(48, 52)); len(got) != 1 {
		t.Errorf("window [40,60] should contain the hit, got %d", len(got))
	}
}

func TestMatcherEmptyStream(t *testing.T) {
	m := NewMatcher(nil, 0)
	if got := m.Candidates(groupSpanBC(0, 8)); got != nil {
		t.Errorf("empty stream must yield no candidates, got %v", got)
	}
}

func TestMatcherUnsortedInputSorted(t *testing.T) {
	// NewMatcher owns sorting; feed hits out of order.
	hits := []RefHit{hitAtBC(300), hitAtBC(100), hitAtBC(200)}
	m := NewMatcher(hits, 0)
	got := m.Candidates(groupSpanBC(195, 205))
	if len(got) != 1 || got[0].BC != 200 {
		t.Errorf("expected the 200 BC hit, got %v", got)
	}
}

func TestRefHitTimeFirstOrbit(t *testing.T) {
	h := RefHit{Orbit: 12, BC: 7}
	want := units.BCTimeFromIR(2, 7)
	if got := h.Time(10); got != want {
		t.Errorf("Time(10) = %v, want %v", got, want)
	}
}
