package viewport

import "strings"

// Highlight rewrites each line's spans into alternating plain/match
// segments around every occurrence of needle. Matches do not overlap;
// the leftmost match wins. An empty needle leaves the spans untouched.
// The concatenation of span text always equals the line text, so running
// Highlight again (e.g. after a refresh) is safe.
func Highlight(lines []DispLine, needle string) {
	if needle == "" {
		return
	}
	for i := range lines {
		lines[i].Spans = splitSpans(lines[i].Text, needle)
	}
}

func splitSpans(text, needle string) []Span {
	var spans []Span
	rest := text
	for {
		idx := strings.Index(rest, needle)
		if idx < 0 {
			break
		}
		if idx > 0 {
			spans = append(spans, Span{Text: rest[:idx]})
		}
		spans = append(spans, Span{Text: rest[idx : idx+len(needle)], Match: true})
		rest = rest[idx+len(needle):]
	}
	if len(rest) > 0 || len(spans) == 0 {
		spans = append(spans, Span{Text: rest})
	}
	return spans
}
