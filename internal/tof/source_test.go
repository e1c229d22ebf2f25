package tof

import (
	"strings"
	"testing"
)

func TestParseSourceMask(t *testing.T) {
	m, err := ParseSourceMask("ITS-TPC,ITS-TPC-TOF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Has(SrcITSTPC) || !m.Has(SrcITSTPCTOF) {
		t.Errorf("mask missing requested sources: %s", m)
	}
	if m.Has(SrcTPC) {
		t.Errorf("mask contains unrequested source: %s", m)
	}
}

func TestParseSourceMaskSpacesAndEmpty(t *testing.T) {
	m, err := ParseSourceMask(" TPC , TPC-TOF ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Has(SrcTPC) || !m.Has(SrcTPCTOF) {
		t.Errorf("whitespace not trimmed: %s", m)
	}

	empty, err := ParseSourceMask("")
	if err != nil || empty != 0 {
		t.Errorf("empty string should parse to empty mask, got %v / %v", empty, err)
	}
}

func TestParseSourceMaskUnknown(t *testing.T) {
	if _, err := ParseSourceMask("ITS-TPC,BOGUS"); err == nil {
		t.Error("expected error for unknown source name")
	}
}

func TestSourceMaskValidate(t *testing.T) {
	tests := []struct {
		list string
		ok   bool
	}{
		{"ITS-TPC", true},
		{"ITS-TPC,ITS-TPC-TOF", true},
		{"TPC,TPC-TOF,ITS-TPC,ITS-TPC-TOF,TPC-TRD,TPC-TRD-TOF,ITS-TPC-TRD,ITS-TPC-TRD-TOF", true},
		{"ITS-TPC-TOF", false},          // TOF-matched without its base
		{"TPC-TOF", false},              //
		{"TPC,TPC-TRD-TOF", false},      // TRD chain incomplete
		{"ITS-TPC-TRD", true},           // base alone is fine
		{"ITS-TPC-TRD-TOF", false},      //
		{"", true},                      // empty mask asks for nothing
	}
	for _, tt := range tests {
		m, err := ParseSourceMask(tt.list)
		if err != nil {
			t.Fatalf("%q: parse error: %v", tt.list, err)
		}
		err = m.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%q) error = %v, want ok=%t", tt.list, err, tt.ok)
		}
	}
}

func TestSourceMaskString(t *testing.T) {
	m := SrcTPC.Mask() | SrcITSTPCTOF.Mask()
	s := m.String()
	if !strings.Contains(s, "TPC") || !strings.Contains(s, "ITS-TPC-TOF") {
		t.Errorf("String() = %q", s)
	}
}
