package hist

import "fmt"

// Counter is the common surface of H1 and H2 used by the Set.
type Counter interface {
	Name() string
	Reset()
	Snapshot() Snapshot
}

// Set is an ordered registry of counters. All counters of a task are
// declared into one Set at initialization; the Set is then the single
// handle for reset and snapshotting. Iteration order is declaration order.
type Set struct {
	order  []Counter
	byName map[string]Counter
}

// NewSet creates an empty registry.
func NewSet() *Set {
	return &Set{byName: make(map[string]Counter)}
}

// H1 declares a 1-D counter into the set. Duplicate names are a
// programming error and panic.
func (s *Set) H1(name, title string, bins int, min, max float64) *H1 {
	h := NewH1(name, title, bins, min, max)
	s.add(h)
	return h
}

// H2 declares a 2-D counter into the set.
func (s *Set) H2(name, title string, xbins int, xmin, xmax float64, ybins int, ymin, ymax float64) *H2 {
	h := NewH2(name, title, xbins, xmin, xmax, ybins, ymin, ymax)
	s.add(h)
	return h
}

func (s *Set) add(c Counter) {
	if _, dup := s.byName[c.Name()]; dup {
		panic(fmt.Sprintf("hist: duplicate counter name %q", c.Name()))
	}
	s.byName[c.Name()] = c
	s.order = append(s.order, c)
}

// Get returns the counter registered under name, or nil.
func (s *Set) Get(name string) Counter { return s.byName[name] }

// Len returns the number of registered counters.
func (s *Set) Len() int { return len(s.order) }

// Names returns the counter names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.order))
	for i, c := range s.order {
		names[i] = c.Name()
	}
	return names
}

// Reset zeroes every counter in the set.
func (s *Set) Reset() {
	for _, c := range s.order {
		c.Reset()
	}
}

// Snapshots returns frozen copies of every counter in declaration order.
func (s *Set) Snapshots() []Snapshot {
	snaps := make([]Snapshot, len(s.order))
	for i, c := range s.order {
		snaps[i] = c.Snapshot()
	}
	return snaps
}
