package logging

import "testing"

func TestRingKeepsMostRecent(t *testing.T) {
	r := NewRing(3)
	for _, s := range []string{"one\n", "two\n", "three\n", "four\n"} {
		if _, err := r.Write([]byte(s)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	got := r.Lines()
	want := []string{"two", "three", "four"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRingSplitsMultilineWrites(t *testing.T) {
	r := NewRing(10)
	r.Write([]byte("a\nb\n"))
	got := r.Lines()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}
