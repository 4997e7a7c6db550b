package viewport

import (
	"testing"
	"time"
)

func TestParseTimeAt(t *testing.T) {
	b := []byte(twoLines)
	def := time.Date(2022, 3, 22, 0, 0, 0, 0, time.Local)

	ts, ok := ParseTimeAt(b, 0, def)
	if !ok {
		t.Fatal("expected a timestamp at offset 0")
	}
	want := time.Date(2022, 3, 22, 8, 51, 6, 0, time.Local)
	if !ts.Equal(want) {
		t.Errorf("got %v, want %v", ts, want)
	}

	ts, ok = ParseTimeAt(b, 41, def)
	if !ok {
		t.Fatal("expected a timestamp at offset 41")
	}
	want = time.Date(2022, 3, 22, 8, 51, 8, 0, time.Local)
	if !ts.Equal(want) {
		t.Errorf("got %v, want %v", ts, want)
	}
}

func TestParseTimeAtRejects(t *testing.T) {
	def := time.Now()
	if _, ok := ParseTimeAt([]byte("nospacehere"), 0, def); ok {
		t.Error("line without two spaces should not parse")
	}
	if _, ok := ParseTimeAt([]byte("not a date at all"), 0, def); ok {
		t.Error("non-date prefix should not parse")
	}
	if _, ok := ParseTimeAt([]byte{0xff, ' ', 'x', ' ', 'y'}, 0, def); ok {
		t.Error("invalid UTF-8 should not parse")
	}
	if _, ok := ParseTimeAt([]byte(""), 0, def); ok {
		t.Error("empty slice should not parse")
	}
}

func TestDateBefore(t *testing.T) {
	src := []byte("03/22/2022 08:51:06 INFO head\n\tstack frame one\n\tstack frame two\n")
	def := time.Date(2022, 3, 22, 0, 0, 0, 0, time.Local)

	// Probing from inside the stack trace walks back to the header.
	off, ts, ok := DateBefore(src, len(src)-1, def)
	if !ok {
		t.Fatal("expected to find the header timestamp")
	}
	if off != 0 {
		t.Errorf("offset = %d, want 0", off)
	}
	want := time.Date(2022, 3, 22, 8, 51, 6, 0, time.Local)
	if !ts.Equal(want) {
		t.Errorf("ts = %v, want %v", ts, want)
	}
}

func TestDateBeforeNoTimestamp(t *testing.T) {
	src := []byte("no dates\nanywhere in\nthis buffer\n")
	if _, _, ok := DateBefore(src, len(src)-1, time.Now()); ok {
		t.Error("expected no timestamp")
	}
}
