package viewport

import (
	"strings"
	"unicode/utf8"
)

// Span is one styled segment of a display line. Match marks substrings of
// the active search term; the renderer decides what that looks like.
type Span struct {
	Text  string
	Match bool
}

// DispLine is a single displayed line with provenance back into the source
// buffer. Begin is a line-start offset; End is exclusive and points at the
// terminating newline, or at len(buf) for the final line. The concatenated
// span text equals Text.
type DispLine struct {
	Begin int
	End   int
	Text  string
	Spans []Span
}

// decodeLine is the lossy UTF-8 decoding of one raw line. A trailing CR is
// trimmed so CRLF files display cleanly.
func decodeLine(raw []byte) string {
	line := strings.ToValidUTF8(string(raw), "�")
	return strings.TrimSuffix(line, "\r")
}

// recordTracker groups a primary line with its continuation lines. A line
// starts a new record iff it is non-empty and its first byte is neither a
// space nor a tab; anything else continues the record above it. Once a
// record's header is filtered out the whole record is suppressed, except
// continuation lines an In filter matches individually.
type recordTracker struct {
	inBadRecord bool
}

func (r *recordTracker) allow(filters []Filter, raw []byte, line string) bool {
	newRecord := len(raw) > 0 && raw[0] != ' ' && raw[0] != '\t'
	if newRecord {
		r.inBadRecord = false
	}
	effective, outcome := LineAllowed(filters, line)
	included := effective
	if r.inBadRecord {
		included = outcome == Include
	}
	if !included && newRecord {
		r.inBadRecord = true
	}
	return included
}

// VisibleLines scans src forward and returns the display lines that fit a
// rows x cols screen, applying the filter list and record grouping. base is
// src's absolute offset within the whole buffer, so emitted locations are
// absolute. Wrap accounting treats every codepoint as width 1; invalid
// bytes decode as the replacement codepoint. A line wider than the
// remaining row budget is flushed as a partial line ending mid-record.
func VisibleLines(src []byte, filters []Filter, rows, cols, base int) []DispLine {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	var (
		lines           []DispLine
		rec             recordTracker
		displayedRows   int
		rowsForThisLine int
		usedCols        int
		lineStart       int
	)

	maybeAddLine := func(endingIndex int) {
		raw := src[lineStart:endingIndex]
		line := decodeLine(raw)
		if !rec.allow(filters, raw, line) {
			return
		}
		lines = append(lines, DispLine{
			Begin: base + lineStart,
			End:   base + endingIndex,
			Text:  line,
			Spans: []Span{{Text: line}},
		})
		displayedRows += rowsForThisLine + 1
	}

	for pos := 0; pos < len(src); {
		r, size := utf8.DecodeRune(src[pos:])
		end := pos + size
		if r == '\n' {
			maybeAddLine(pos)
			lineStart = end
			rowsForThisLine = 0
			usedCols = 0
			if displayedRows == rows {
				return lines
			}
		} else {
			usedCols++
			if usedCols == cols {
				rowsForThisLine++
				usedCols = 0
				// A record wider than the remaining budget: flush
				// what fits and stop here.
				if displayedRows+rowsForThisLine == rows {
					maybeAddLine(end)
					return lines
				}
			}
		}
		pos = end
	}

	// Tail line without a terminating newline.
	maybeAddLine(len(src))
	return lines
}
