package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/haydenflinner/wd/internal/logging"
	"github.com/haydenflinner/wd/internal/mmap"
	"github.com/haydenflinner/wd/internal/timeparse"
	"github.com/haydenflinner/wd/internal/ui"
	"github.com/haydenflinner/wd/internal/viewport"
)

// Version is set at build time via -ldflags. Defaults to dev for local builds.
var Version = "dev"

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)

var tickRateMs int

var rootCmd = &cobra.Command{
	Use:     "wd <file>",
	Version: Version,
	Short:   "Interactive viewer for very large log files",
	Long: `wd is less for structured logs: it memory-maps the file, so opening a
multi-gigabyte log is instant and memory stays proportional to the screen.

Key Features:
  - In/Out substring filters with priority ordering (press 'f').
  - Multi-line records: a filtered-out header hides its stack trace too.
  - Jump to a timestamp by binary search, no index needed (press 'g').
  - Incremental substring search with highlighting ('/', 'n', 'N').
  - Jump to a percentage ("50%") or either end of the file.`,
	Example: `  wd app-20220322.log
  WD_LOG_LEVEL=debug wd /var/log/syslog`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ring := logging.NewRing(500)
		logging.Setup(ring)

		filename := args[0]
		f, err := mmap.Open(filename)
		if err != nil {
			return err
		}
		defer f.Close()

		today := defaultDate(filename, f.Bytes())
		log.Info().Str("file", filename).Int("bytes", len(f.Bytes())).
			Time("default_date", today).Msg("opened")

		model := ui.InitialModel(filename, f.Bytes(), today, ring,
			time.Duration(tickRateMs)*time.Millisecond)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	},
}

// defaultDate picks the calendar date assumed for time-only timestamps:
// an eight-digit YYYYMMDD run in the filename, else the date of the last
// timestamped line, else today.
func defaultDate(filename string, buf []byte) time.Time {
	if t, ok := timeparse.FilenameDate(filename); ok {
		return t
	}
	if len(buf) > 0 {
		if _, ts, ok := viewport.DateBefore(buf, len(buf), time.Now()); ok {
			return ts
		}
	}
	return time.Now()
}

func Execute() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVar(&tickRateMs, "tick-rate", 250, "UI tick interval in milliseconds")
}
