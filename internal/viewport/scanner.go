// Package viewport implements the engine behind the log view: given the
// memory-mapped byte buffer, a cursor offset, the active filter list and a
// screen geometry it produces the ordered display lines on screen, and
// moves the cursor in time proportional to the screen, never the file.
//
// Offsets, not slices, cross internal boundaries so provenance back into
// the buffer stays clear. All cursor values are line-start offsets: an
// offset p with p == 0 or buf[p-1] == '\n'.
package viewport

// LineStartAtOrBefore returns the start of the line containing k, i.e. the
// greatest line-start offset <= k. Idempotent.
func LineStartAtOrBefore(b []byte, k int) int {
	if k > len(b) {
		k = len(b)
	}
	for i := k - 1; i >= 0; i-- {
		if b[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// PercentOffset returns the start of the line containing the byte pct% of
// the way through b. pct clamps to [0, 100] before the multiplication.
func PercentOffset(b []byte, pct float64) int {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	goingTo := int(float64(len(b)) * (pct / 100.0))
	return LineStartAtOrBefore(b, goingTo)
}
