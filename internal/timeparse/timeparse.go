// Package timeparse resolves the free-form timestamp strings found in log
// lines and typed into the goto dialog. Heavy lifting is delegated to
// github.com/araddon/dateparse; entries that carry only a clock time are
// combined with a caller-supplied default date.
package timeparse

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/araddon/dateparse"
)

// timeOnlyLayouts read clock-only entries like "09:44:21" or "3:04PM".
// They are tried before dateparse, which rejects or misreads such entries.
var timeOnlyLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04PM",
}

// Parse interprets s as a point in time in loc. Entries without a date
// component take their calendar date from def.
func Parse(s string, loc *time.Location, def time.Time) (_ time.Time, err error) {
	// dateparse has panicked on malformed entries before; goto-dialog
	// input reaches here unvalidated.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unparseable time %q: %v", s, r)
		}
	}()

	for _, layout := range timeOnlyLayouts {
		tc, terr := time.Parse(layout, s)
		if terr == nil {
			return onDate(tc, def, loc), nil
		}
	}

	t, err := dateparse.ParseIn(s, loc)
	if err == nil && t.Year() != 0 {
		return t, nil
	}
	if err == nil {
		// Parsed, but with no date component. Graft def's date on.
		return onDate(t, def, loc), nil
	}
	return time.Time{}, fmt.Errorf("unparseable time %q: %w", s, err)
}

func onDate(clock, def time.Time, loc *time.Location) time.Time {
	year, month, day := def.In(loc).Date()
	hour, min, sec := clock.Clock()
	return time.Date(year, month, day, hour, min, sec, clock.Nanosecond(), loc)
}

var filenameDateRe = regexp.MustCompile(`\b\d{8}\b`)

// FilenameDate scans the base name of path for the first eight-digit run
// and interprets it as YYYYMMDD. app-20220322.log => 2022-03-22.
func FilenameDate(path string) (time.Time, bool) {
	m := filenameDateRe.FindString(filepath.Base(path))
	if m == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("20060102", m, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
