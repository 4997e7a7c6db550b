package viewport

import (
	"bytes"
	"time"

	"github.com/rs/zerolog/log"
)

// Refresh geometry. A full rebuild over-produces lines, well past a
// screenful; the renderer shows the rows that fit, each truncated to the
// terminal width.
const (
	refreshRows = 200
	refreshCols = 600
)

// Viewport owns the cursor into the mapped buffer and the display lines
// currently derivable from it. The buffer is shared and immutable; the
// viewport never writes it and never outlives it. All mutation happens
// from the single driving event loop.
type Viewport struct {
	buf    []byte
	cursor int

	rows, cols int

	filters []Filter
	view    []DispLine

	lastSearch   string
	searchVisits []int

	today time.Time
}

// New builds a viewport over buf. today is the default calendar date for
// timestamps that carry only a clock time.
func New(buf []byte, today time.Time) *Viewport {
	v := &Viewport{buf: buf, today: today}
	v.Refresh()
	return v
}

// View is the current ordered display-line list. The slice is owned by
// the viewport and replaced wholesale on refresh; between navigation
// calls it is stable for the renderer to read.
func (v *Viewport) View() []DispLine { return v.view }

// Cursor is the byte offset of the top of the view, always a line start.
func (v *Viewport) Cursor() int { return v.cursor }

// Size returns the buffer length.
func (v *Viewport) Size() int { return len(v.buf) }

// Percent is how far through the file the cursor sits, for the footer.
func (v *Viewport) Percent() float64 {
	if len(v.buf) == 0 {
		return 0
	}
	return float64(v.cursor) / float64(len(v.buf)) * 100
}

// Today returns the default date used for time-only timestamps.
func (v *Viewport) Today() time.Time { return v.today }

// LastSearch returns the active search term, possibly empty.
func (v *Viewport) LastSearch() string { return v.lastSearch }

// SetSize records the screen geometry used for paging.
func (v *Viewport) SetSize(rows, cols int) {
	v.rows, v.cols = rows, cols
}

// SetFilters installs the ordered filter list. Takes effect on the next
// refresh; the list is read-only during one.
func (v *Viewport) SetFilters(filters []Filter) {
	v.filters = filters
}

// Refresh rebuilds the display lines from the cursor and re-applies the
// search highlight. The cursor snaps to the first visible line so the
// top-of-view invariant holds even when filters hide the cursor's line.
func (v *Viewport) Refresh() {
	v.view = VisibleLines(v.buf[v.cursor:], v.filters, refreshRows, refreshCols, v.cursor)
	Highlight(v.view, v.lastSearch)
	if len(v.view) > 0 {
		v.cursor = v.view[0].Begin
	}
}

// StepDown shifts the view one display line forward: the line after the
// last visible one is built (skipping filtered records) and the top line
// is dropped. When no line below the view survives, the top line is still
// dropped until only the last one remains; from there it is a no-op.
func (v *Viewport) StepDown() {
	if len(v.view) == 0 {
		// Everything from the cursor is filtered out; crawl forward so
		// repeated steps eventually surface visible lines again.
		if next := v.nextLineStart(v.cursor); next < len(v.buf) {
			v.cursor = next
			v.Refresh()
		}
		return
	}
	last := v.view[len(v.view)-1]
	start := last.End + 1
	var lines []DispLine
	if start < len(v.buf) {
		lines = VisibleLines(v.buf[start:], v.filters, 1, refreshCols, start)
	}
	if len(lines) > 0 {
		Highlight(lines[:1], v.lastSearch)
		v.view = append(v.view[1:], lines[0])
	} else if len(v.view) > 1 {
		// Nothing below the view survives the filters (or EOF); the top
		// can still scroll until only the last line remains.
		v.view = v.view[1:]
	} else {
		log.Debug().Msg("step down at end of file")
		return
	}
	v.cursor = v.view[0].Begin
}

// StepUp shifts the view one display line backward. The forward builder is
// authoritative, so each candidate line above the view is replayed through
// a one-line forward build; filtered lines are skipped. Record grouping in
// reverse is approximate: a continuation line whose header is filtered out
// can reappear when scrolling up.
func (v *Viewport) StepUp() {
	if len(v.view) == 0 {
		if v.cursor > 0 {
			v.cursor = LineStartAtOrBefore(v.buf, v.cursor-1)
			v.Refresh()
		}
		return
	}
	if v.view[0].Begin == 0 {
		return
	}
	searchEnd := v.view[0].Begin
	for cur := searchEnd; cur > 0; {
		cur = LineStartAtOrBefore(v.buf, cur-1)
		lines := VisibleLines(v.buf[cur:searchEnd], v.filters, 1, refreshCols, cur)
		if len(lines) > 0 {
			Highlight(lines[:1], v.lastSearch)
			v.view = append([]DispLine{lines[0]}, v.view[:len(v.view)-1]...)
			v.cursor = cur
			return
		}
		searchEnd = cur
	}
}

// PageDown moves a screenful forward.
func (v *Viewport) PageDown() {
	for i := 0; i < v.rows+1; i++ {
		v.StepDown()
	}
}

// PageUp moves a screenful backward.
func (v *Viewport) PageUp() {
	for i := 0; i < v.rows+1; i++ {
		v.StepUp()
	}
}

// GotoBegin puts the cursor on the first line.
func (v *Viewport) GotoBegin() {
	v.cursor = 0
	v.Refresh()
}

// GotoEnd puts the cursor on the last line.
func (v *Viewport) GotoEnd() {
	v.cursor = LineStartAtOrBefore(v.buf, len(v.buf))
	v.Refresh()
}

// GotoPercent puts the cursor pct% of the way through the file.
func (v *Viewport) GotoPercent(pct float64) {
	v.cursor = PercentOffset(v.buf, pct)
	v.Refresh()
}

// GotoTime bisects the file for the first line with a timestamp >= target.
// On ErrNoTimestamp the cursor is left where it was.
func (v *Viewport) GotoTime(target time.Time) error {
	if len(v.buf) == 0 {
		return nil
	}
	off, err := Bisect(v.buf, target)
	if err != nil {
		return err
	}
	v.cursor = LineStartAtOrBefore(v.buf, off)
	v.Refresh()
	return nil
}

// Search looks for the first occurrence of needle at or after the cursor
// and moves the cursor to the start of a line containing it that survives
// the filter list. Misses keep the cursor but still record the term so
// repeats work. Hits push onto the visit stack for reverse repeat.
func (v *Viewport) Search(needle string) bool {
	v.lastSearch = needle
	if needle == "" {
		v.Refresh()
		return false
	}
	start := v.cursor
	for start < len(v.buf) {
		idx := bytes.Index(v.buf[start:], []byte(needle))
		if idx < 0 {
			break
		}
		hit := start + idx
		lineStart := LineStartAtOrBefore(v.buf, hit)
		lineEnd := len(v.buf)
		if nl := bytes.IndexByte(v.buf[lineStart:], '\n'); nl >= 0 {
			lineEnd = lineStart + nl
		}
		if ok, _ := LineAllowed(v.filters, decodeLine(v.buf[lineStart:lineEnd])); ok {
			v.cursor = lineStart
			v.searchVisits = append(v.searchVisits, lineStart)
			v.Refresh()
			return true
		}
		// The hit sits on a filtered-out line; keep looking past it.
		start = v.nextLineStart(lineStart)
	}
	log.Info().Str("needle", needle).Msg("nothing found")
	v.Refresh()
	return false
}

// RepeatSearchNext steps past the current line and reruns the last search.
func (v *Viewport) RepeatSearchNext() bool {
	if v.lastSearch == "" {
		return false
	}
	v.StepDown()
	return v.Search(v.lastSearch)
}

// RepeatSearchPrev revisits the most recent search hit. Backward substring
// search over the file is unsupported; only the visit stack goes back.
func (v *Viewport) RepeatSearchPrev() bool {
	if len(v.searchVisits) == 0 {
		log.Info().Msg("no earlier search visit to return to")
		return false
	}
	v.cursor = v.searchVisits[len(v.searchVisits)-1]
	v.searchVisits = v.searchVisits[:len(v.searchVisits)-1]
	v.Refresh()
	return true
}

// nextLineStart returns the offset just past the newline ending the line
// that starts at or before p, or len(buf) when none remains.
func (v *Viewport) nextLineStart(p int) int {
	idx := bytes.IndexByte(v.buf[p:], '\n')
	if idx < 0 {
		return len(v.buf)
	}
	return p + idx + 1
}
