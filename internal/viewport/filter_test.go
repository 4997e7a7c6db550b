package viewport

import "testing"

func in(needle string) Filter  { return Filter{Needle: needle, Kind: In, Enabled: true} }
func out(needle string) Filter { return Filter{Needle: needle, Kind: Out, Enabled: true} }

func TestLineAllowed(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
		line    string
		want    bool
	}{
		{"no filters", nil, "Lol", true},
		{"out", []Filter{out("Lol")}, "Lol", false},
		{"in", []Filter{in("Lol")}, "Lol", true},
		{"in then out", []Filter{in("Lol"), out("Lol")}, "Lol", false},
		{"out then in", []Filter{out("Lol"), in("Lol")}, "Lol", true},
		{"anchored by in", []Filter{in("xyz")}, "Lol", false},
		{"unmatched out", []Filter{out("xyz")}, "Lol", true},
		{"disabled out ignored", []Filter{{Needle: "Lol", Kind: Out}}, "Lol", true},
		{"disabled in not anchoring", []Filter{{Needle: "xyz", Kind: In}}, "Lol", true},
	}
	for _, tt := range tests {
		got, _ := LineAllowed(tt.filters, tt.line)
		if got != tt.want {
			t.Errorf("%s: LineAllowed = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLineAllowedOutcome(t *testing.T) {
	// The grouper depends on the raw ternary to rescue continuation
	// lines: Include only when an In filter matched this line itself.
	_, outcome := LineAllowed([]Filter{in("cont")}, "\tcont line")
	if outcome != Include {
		t.Errorf("outcome = %v, want Include", outcome)
	}
	_, outcome = LineAllowed([]Filter{in("cont")}, "\tother line")
	if outcome != Indifferent {
		t.Errorf("outcome = %v, want Indifferent", outcome)
	}
	_, outcome = LineAllowed([]Filter{out("noise")}, "noise here")
	if outcome != Exclude {
		t.Errorf("outcome = %v, want Exclude", outcome)
	}
}
