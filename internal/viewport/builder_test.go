package viewport

import (
	"strings"
	"testing"
)

const twoLines = "03/22/2022 08:51:06 INFO   :...mylogline\n03/22/2022 08:51:08 INFO   :...mylogline"

func joined(src string, filters []Filter, rows, cols int) string {
	lines := VisibleLines([]byte(src), filters, rows, cols, 0)
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

func TestVisibleSingleLine(t *testing.T) {
	lines := VisibleLines([]byte("lol"), nil, 80, 80, 0)
	if len(lines) != 1 || lines[0].Text != "lol" {
		t.Fatalf("got %+v, want one line \"lol\"", lines)
	}
	if lines[0].Begin != 0 || lines[0].End != 3 {
		t.Errorf("file loc = (%d,%d), want (0,3)", lines[0].Begin, lines[0].End)
	}
}

func TestVisibleTwoLines(t *testing.T) {
	if got := joined(twoLines, nil, 80, 80); got != twoLines {
		t.Errorf("got %q, want the input back", got)
	}
	lines := VisibleLines([]byte(twoLines), nil, 80, 80, 0)
	if lines[0].Begin != 0 || lines[1].Begin != 41 {
		t.Errorf("begins = %d,%d, want 0,41", lines[0].Begin, lines[1].Begin)
	}
	if lines[0].End != 40 {
		t.Errorf("first End = %d, want 40 (the newline)", lines[0].End)
	}
}

func TestVisibleRowAndColBudgets(t *testing.T) {
	src := "\n\nhi\n\n"
	tests := []struct {
		rows, cols int
		want       string
	}{
		{80, 80, src},
		{1, 1, ""},
		{2, 1, "\n"},
		{3, 1, "\n\nh"},
		{4, 1, "\n\nhi"},
		{3, 2, "\n\nhi"},
	}
	for _, tt := range tests {
		if got := joined(src, nil, tt.rows, tt.cols); got != tt.want {
			t.Errorf("rows=%d cols=%d: got %q, want %q", tt.rows, tt.cols, got, tt.want)
		}
	}
}

func TestVisibleAbsoluteOffsets(t *testing.T) {
	whole := []byte("aaa\nbbb\nccc")
	base := 4 // start of "bbb"
	lines := VisibleLines(whole[base:], nil, 80, 80, base)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Begin != 4 || lines[0].End != 7 {
		t.Errorf("first loc = (%d,%d), want (4,7)", lines[0].Begin, lines[0].End)
	}
	if lines[1].Begin != 8 || lines[1].End != 11 {
		t.Errorf("second loc = (%d,%d), want (8,11)", lines[1].Begin, lines[1].End)
	}
}

func TestRecordGroupingSuppressesContinuations(t *testing.T) {
	src := "head\n\tcont1\n\tcont2\n"
	if got := joined(src, []Filter{out("head")}, 80, 80); got != "" {
		t.Errorf("got %q, want everything suppressed", got)
	}
	// A more specific In filter rescues just that continuation line.
	got := joined(src, []Filter{out("head"), in("cont2")}, 80, 80)
	if got != "\tcont2" {
		t.Errorf("got %q, want \"\\tcont2\"", got)
	}
}

func TestRecordGroupingResetsOnNewRecord(t *testing.T) {
	src := "bad\n\ttrace\ngood\n\ttrace2"
	got := joined(src, []Filter{out("bad")}, 80, 80)
	if got != "good\n\ttrace2" {
		t.Errorf("got %q, want the second record intact", got)
	}
}

func TestBuilderTrimsCR(t *testing.T) {
	lines := VisibleLines([]byte("a\r\nb"), nil, 80, 80, 0)
	if len(lines) != 2 || lines[0].Text != "a" || lines[1].Text != "b" {
		t.Fatalf("got %+v, want [a b]", lines)
	}
	// Provenance still covers the CR byte.
	if lines[0].End != 2 {
		t.Errorf("first End = %d, want 2", lines[0].End)
	}
}

func TestBuilderLossyDecoding(t *testing.T) {
	lines := VisibleLines([]byte{'a', 0xff, 'b'}, nil, 80, 80, 0)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "a�b" {
		t.Errorf("got %q, want replacement codepoint in the middle", lines[0].Text)
	}
}

func TestBuilderSpansMatchText(t *testing.T) {
	lines := VisibleLines([]byte(twoLines), nil, 80, 80, 0)
	for _, l := range lines {
		var b strings.Builder
		for _, sp := range l.Spans {
			b.WriteString(sp.Text)
		}
		if b.String() != l.Text {
			t.Errorf("span concat %q != text %q", b.String(), l.Text)
		}
	}
}
