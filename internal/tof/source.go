package tof

import (
	"fmt"
	"strings"
)

// Source identifies a track matching chain. TOF-matched sources require
// their base chain to be loaded alongside them, which Validate enforces.
type Source int

const (
	SrcTPC Source = iota
	SrcTPCTOF
	SrcITSTPC
	SrcITSTPCTOF
	SrcTPCTRD
	SrcTPCTRDTOF
	SrcITSTPCTRD
	SrcITSTPCTRDTOF
	numSources
)

var sourceNames = [numSources]string{
	"TPC",
	"TPC-TOF",
	"ITS-TPC",
	"ITS-TPC-TOF",
	"TPC-TRD",
	"TPC-TRD-TOF",
	"ITS-TPC-TRD",
	"ITS-TPC-TRD-TOF",
}

// String returns the canonical source name.
func (s Source) String() string {
	if s < 0 || s >= numSources {
		return fmt.Sprintf("Source(%d)", int(s))
	}
	return sourceNames[s]
}

// SourceMask is a bit set of Sources.
type SourceMask uint16

// AllowedSources is every source the task knows how to consume.
const AllowedSources SourceMask = 1<<numSources - 1

// Mask returns the single-bit mask for s.
func (s Source) Mask() SourceMask { return 1 << uint(s) }

// Has reports whether src is in the mask.
func (m SourceMask) Has(src Source) bool { return m&src.Mask() != 0 }

// String renders the mask as a comma-separated source list.
func (m SourceMask) String() string {
	var parts []string
	for i := Source(0); i < numSources; i++ {
		if m.Has(i) {
			parts = append(parts, i.String())
		}
	}
	return strings.Join(parts, ",")
}

// ParseSourceMask parses a comma-separated source list ("ITS-TPC-TOF,ITS-TPC").
// Unknown names are an error; the empty string is the empty mask.
func ParseSourceMask(s string) (SourceMask, error) {
	var m SourceMask
	if s == "" {
		return m, nil
	}
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		found := false
		for i := Source(0); i < numSources; i++ {
			if name == sourceNames[i] {
				m |= i.Mask()
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown track source %q", name)
		}
	}
	return m, nil
}

// sourcePrereqs pairs each TOF-matched source with the base chain it
// cannot be consumed without.
var sourcePrereqs = [...][2]Source{
	{SrcTPCTOF, SrcTPC},
	{SrcITSTPCTOF, SrcITSTPC},
	{SrcTPCTRDTOF, SrcTPCTRD},
	{SrcITSTPCTRDTOF, SrcITSTPCTRD},
}

// Validate checks that every requested TOF-matched source comes with its
// base chain. A base chain on its own is fine; a TOF-matched source without
// it is a configuration error and processing must not start.
func (m SourceMask) Validate() error {
	for _, pair := range sourcePrereqs {
		tofSrc, base := pair[0], pair[1]
		if m.Has(tofSrc) && !m.Has(base) {
			return fmt.Errorf("inconsistent sources: %s requires %s", tofSrc, base)
		}
	}
	return nil
}
