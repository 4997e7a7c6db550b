package viewport

import "strings"

// FilterKind says whether a filter keeps or drops matching lines.
type FilterKind int

const (
	// In keeps lines containing the needle.
	In FilterKind = iota
	// Out drops lines containing the needle.
	Out
)

// Filter is one entry of the ordered filter list. Order is significant:
// a later filter matching the same line overrides an earlier one.
type Filter struct {
	Needle  string
	Kind    FilterKind
	Enabled bool
}

// Outcome is the ternary result of running a line through the filter
// list. The record grouper needs it: an Include outcome (an In filter
// matched this specific line) can rescue a continuation line whose record
// header was filtered away, where the derived effective boolean cannot.
type Outcome int

const (
	Indifferent Outcome = iota
	Include
	Exclude
)

// LineAllowed runs line through the ordered filter list and reports the
// effective decision plus the raw ternary outcome. Disabled filters are
// skipped. If no filter matched but an enabled In filter exists, the line
// is excluded: In filters anchor the view to their matches.
func LineAllowed(filters []Filter, line string) (bool, Outcome) {
	cur := Indifferent
	anyIn := false
	for _, f := range filters {
		if !f.Enabled {
			continue
		}
		if f.Kind == In {
			anyIn = true
		}
		if !strings.Contains(line, f.Needle) {
			continue
		}
		if f.Kind == In {
			cur = Include
		} else {
			cur = Exclude
		}
	}
	if cur == Indifferent && anyIn {
		return false, cur
	}
	return cur != Exclude, cur
}
