// Package logging configures the process-wide zerolog logger. Output goes
// to an in-memory ring rendered by the TUI's log panel; nothing is written
// to the terminal itself, which belongs to the alternate screen.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// levelEnvVar selects the log level (zerolog level names, default info).
// This is the only environment variable the program reads.
const levelEnvVar = "WD_LOG_LEVEL"

// Ring is a fixed-capacity io.Writer keeping the most recent log lines.
type Ring struct {
	mu    sync.Mutex
	lines []string
	max   int
}

// NewRing keeps at most max lines.
func NewRing(max int) *Ring {
	return &Ring{max: max}
}

// Write appends each newline-terminated chunk as one entry, dropping the
// oldest entries past capacity.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		r.lines = append(r.lines, line)
	}
	if over := len(r.lines) - r.max; over > 0 {
		r.lines = r.lines[over:]
	}
	return len(p), nil
}

// Lines returns the retained entries, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Setup installs the global logger writing into ring.
func Setup(ring *Ring) {
	level := zerolog.InfoLevel
	if s := os.Getenv(levelEnvVar); s != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
			level = parsed
		}
	}
	writer := zerolog.ConsoleWriter{Out: ring, NoColor: true, TimeFormat: "15:04:05"}
	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
