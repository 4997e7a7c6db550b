package viewport

import (
	"time"
	"unicode/utf8"

	"github.com/haydenflinner/wd/internal/timeparse"
)

const (
	// probeBytes bounds how much of a line the timestamp probe reads.
	probeBytes = 100
	// probeLines bounds the backward walk over timestamp-less lines,
	// e.g. the body of a giant stack trace.
	probeLines = 1000
)

// ParseTimeAt parses the timestamp prefix of the line starting at p.
// It reads at most probeBytes bytes and cuts at the second ASCII space:
// "03/22/2022 08:51:06 INFO ..." probes as "03/22/2022 08:51:06". def
// supplies the calendar date for time-only stamps. Failure is quiet.
func ParseTimeAt(b []byte, p int, def time.Time) (time.Time, bool) {
	end := p + probeBytes
	if end > len(b) {
		end = len(b)
	}
	s := b[p:end]
	if !utf8.Valid(s) {
		return time.Time{}, false
	}
	spaces := 0
	cut := -1
	for i, c := range s {
		if c != ' ' {
			continue
		}
		spaces++
		if spaces == 2 {
			cut = i
			break
		}
	}
	if cut < 0 {
		return time.Time{}, false
	}
	t, err := timeparse.Parse(string(s[:cut]), time.Local, def)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateBefore walks line starts backward from k until one of them parses,
// returning its offset and instant. Multi-line records without timestamps
// are tolerated up to probeLines lines.
func DateBefore(b []byte, k int, def time.Time) (int, time.Time, bool) {
	for tries := probeLines; tries > 0; tries-- {
		lineStart := LineStartAtOrBefore(b, k)
		if ts, ok := ParseTimeAt(b, lineStart, def); ok {
			return lineStart, ts, true
		}
		if lineStart == 0 {
			break
		}
		k = lineStart - 1
	}
	return 0, time.Time{}, false
}
