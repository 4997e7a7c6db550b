package viewport

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNoTimestamp reports that the bisector probed a region where no line
// carries a parseable timestamp.
var ErrNoTimestamp = errors.New("no parseable timestamp found")

// Bisect binary-searches b for the start of the first line whose timestamp
// is >= target. The file is unindexed: each probe re-parses the nearest
// timestamp at or before the midpoint, so lines without timestamps (stack
// traces, continuations) resolve to their record's header. When the search
// exhausts without an exact hit the last midpoint is returned as an
// approximation. b must be non-empty.
func Bisect(b []byte, target time.Time) (int, error) {
	low, high := 0, len(b)-1
	mid := 0

	for low <= high {
		mid = (low + high) / 2
		lineStart, ts, ok := DateBefore(b, mid, target)
		if !ok {
			return 0, ErrNoTimestamp
		}
		log.Debug().Int("low", low).Int("mid", mid).Int("high", high).
			Time("ts", ts).Time("target", target).Msg("bisect step")
		switch {
		case ts.Before(target):
			low = mid + 1
		case ts.Equal(target):
			return lineStart, nil
		default:
			if mid == 0 {
				return 0, nil
			}
			high = mid - 1
		}
	}
	return mid, nil
}
