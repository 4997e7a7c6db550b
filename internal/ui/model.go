package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"

	"github.com/haydenflinner/wd/internal/logging"
	"github.com/haydenflinner/wd/internal/timeparse"
	"github.com/haydenflinner/wd/internal/viewport"
)

var (
	titleStyle = func() lipgloss.Style {
		b := lipgloss.RoundedBorder()
		b.Right = "├"
		return lipgloss.NewStyle().BorderStyle(b).Padding(0, 1)
	}()

	infoStyle = func() lipgloss.Style {
		b := lipgloss.RoundedBorder()
		b.Left = "┤"
		return titleStyle.BorderStyle(b)
	}()

	// Log Level Styles
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)
	infoStyleLog = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF")).Bold(true)

	// Match Style (Search Matches)
	matchStyle = lipgloss.NewStyle().Background(lipgloss.Color("#FFFF00")).Foreground(lipgloss.Color("#000000"))

	// Goto validation
	promptOkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	promptBadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	logDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type InputMode int

const (
	ModeNormal InputMode = iota
	ModeGoto
	ModeSearch
	ModeFilters
	ModeNewFilter
)

type tickMsg time.Time

type Model struct {
	vp       *viewport.Viewport
	filename string

	textInput textinput.Model
	inputMode InputMode

	// Filter list modal
	filters       []viewport.Filter
	filterCursor  int
	newFilterKind viewport.FilterKind

	// Goto modal
	gotoValid bool

	// Log panel
	showLog bool
	logRing *logging.Ring

	status string

	screenWidth  int
	screenHeight int
	ready        bool
	headerHeight int
	footerHeight int

	tickRate time.Duration
}

func InitialModel(filename string, buf []byte, today time.Time, ring *logging.Ring, tickRate time.Duration) Model {
	ti := textinput.New()
	ti.CharLimit = 156
	ti.Width = 40

	return Model{
		vp:           viewport.New(buf, today),
		filename:     filename,
		textInput:    ti,
		inputMode:    ModeNormal,
		logRing:      ring,
		gotoValid:    true,
		headerHeight: 3,
		footerHeight: 1,
		tickRate:     tickRate,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// contentRows is the number of terminal rows left for display lines after
// the header, footer, and any open bottom panel.
func (m Model) contentRows() int {
	rows := m.screenHeight - m.headerHeight - m.footerHeight
	if m.showLog {
		rows -= m.logPanelRows()
	}
	if m.inputMode == ModeFilters || m.inputMode == ModeNewFilter {
		rows -= m.filterPanelRows()
	}
	if rows < 0 {
		rows = 0
	}
	return rows
}

func (m Model) logPanelRows() int {
	rows := (m.screenHeight - m.headerHeight - m.footerHeight) / 3
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tickMsg:
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.screenWidth = msg.Width
		m.screenHeight = msg.Height
		m.ready = true
		m.vp.SetSize(m.contentRows(), msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch m.inputMode {
		case ModeGoto:
			return m.updateGoto(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeFilters:
			return m.updateFilterList(msg)
		case ModeNewFilter:
			return m.updateNewFilter(msg)
		}
		return m.updateNormal(msg)
	}

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.vp.StepDown()
	case "k", "up":
		m.vp.StepUp()
	case "pgdown", "space", " ":
		m.vp.PageDown()
	case "pgup":
		m.vp.PageUp()

	case "g":
		m.inputMode = ModeGoto
		m.gotoValid = true
		m.textInput.Placeholder = "09:44:21, 2022-03-22 08:00, or 50%"
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink
	case "G":
		m.vp.GotoEnd()

	case "/":
		m.inputMode = ModeSearch
		m.textInput.Placeholder = "Search..."
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink
	case "n":
		if !m.vp.RepeatSearchNext() {
			m.status = fmt.Sprintf("Nothing found: %q", m.vp.LastSearch())
		}
	case "N":
		if !m.vp.RepeatSearchPrev() {
			m.status = "No earlier search hit"
		}

	case "f":
		m.inputMode = ModeFilters

	case "l":
		m.showLog = !m.showLog

	case "y":
		if view := m.vp.View(); len(view) > 0 {
			if err := clipboard.WriteAll(view[0].Text); err != nil {
				log.Warn().Err(err).Msg("clipboard write failed")
			}
		}
	}

	m.vp.SetSize(m.contentRows(), m.screenWidth)
	return m, nil
}

func (m Model) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		// gg, like less: straight to the beginning.
		m.closeInput()
		m.vp.GotoBegin()
		return m, nil
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		val := strings.TrimSpace(m.textInput.Value())
		m.closeInput()
		if val == "" {
			return m, nil
		}
		dest, err := parseGotoDest(val, m.vp.Today())
		if err != nil {
			log.Info().Str("entry", val).Msg("invalid goto entry")
			m.status = fmt.Sprintf("Invalid goto entry: %q", val)
			return m, nil
		}
		if dest.isPercent {
			m.vp.GotoPercent(dest.pct)
		} else if err := m.vp.GotoTime(dest.ts); err != nil {
			m.status = "No parseable timestamp in file"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	val := strings.TrimSpace(m.textInput.Value())
	if val == "" {
		m.gotoValid = true
	} else {
		_, err := parseGotoDest(val, m.vp.Today())
		m.gotoValid = err == nil
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		needle := m.textInput.Value()
		m.closeInput()
		if needle == "" {
			return m, nil
		}
		if !m.vp.Search(needle) {
			m.status = fmt.Sprintf("Nothing found: %q", needle)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.inputMode = ModeNormal
	m.textInput.Blur()
	m.textInput.SetValue("")
	m.vp.SetSize(m.contentRows(), m.screenWidth)
}

// gotoDest is either a percentage or a timestamp, per the goto grammar: a
// numeric prefix with a trailing '%' is a percentage, anything else must
// parse as a point in time.
type gotoDest struct {
	isPercent bool
	pct       float64
	ts        time.Time
}

func parseGotoDest(val string, today time.Time) (gotoDest, error) {
	if strings.HasSuffix(val, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil {
			return gotoDest{}, fmt.Errorf("bad percentage %q: %w", val, err)
		}
		return gotoDest{isPercent: true, pct: pct}, nil
	}
	ts, err := timeparse.Parse(val, time.Local, today)
	if err != nil {
		return gotoDest{}, err
	}
	return gotoDest{ts: ts}, nil
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	sections := []string{m.headerView(), m.contentView()}
	if m.inputMode == ModeFilters || m.inputMode == ModeNewFilter {
		sections = append(sections, m.filterListView())
	}
	if m.showLog {
		sections = append(sections, m.logPanelView())
	}
	sections = append(sections, m.footerView())
	return strings.Join(sections, "\n")
}

func (m Model) contentView() string {
	rows := m.contentRows()
	view := m.vp.View()
	rendered := make([]string, 0, rows)
	for i := 0; i < rows && i < len(view); i++ {
		rendered = append(rendered, m.renderLine(view[i]))
	}
	for len(rendered) < rows {
		rendered = append(rendered, "")
	}
	return strings.Join(rendered, "\n")
}

// renderLine turns one display line into a styled terminal row, truncated
// to the screen width. Search matches get the highlight background; lines
// without matches get level colorization.
func (m Model) renderLine(dl viewport.DispLine) string {
	width := m.screenWidth
	if width <= 0 {
		width = 80
	}

	hasMatch := false
	for _, sp := range dl.Spans {
		if sp.Match {
			hasMatch = true
			break
		}
	}
	if !hasMatch {
		return highlightLine(runewidth.Truncate(dl.Text, width, ""))
	}

	var b strings.Builder
	remaining := width
	for _, sp := range dl.Spans {
		if remaining <= 0 {
			break
		}
		txt := runewidth.Truncate(sp.Text, remaining, "")
		remaining -= runewidth.StringWidth(txt)
		if sp.Match {
			b.WriteString(matchStyle.Render(txt))
		} else {
			b.WriteString(txt)
		}
	}
	return b.String()
}

// highlightLine colorizes the first occurrence of one log-level keyword in a
// plain line, the first present of ERROR, WARN, INFO, DEBUG in that order.
func highlightLine(line string) string {
	if strings.Contains(line, "ERROR") {
		return strings.Replace(line, "ERROR", errorStyle.Render("ERROR"), 1)
	} else if strings.Contains(line, "WARN") {
		return strings.Replace(line, "WARN", warnStyle.Render("WARN"), 1)
	} else if strings.Contains(line, "INFO") {
		return strings.Replace(line, "INFO", infoStyleLog.Render("INFO"), 1)
	} else if strings.Contains(line, "DEBUG") {
		return strings.Replace(line, "DEBUG", debugStyle.Render("DEBUG"), 1)
	}
	return line
}

func (m Model) logPanelView() string {
	rows := m.logPanelRows() - 1
	lines := m.logRing.Lines()
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	width := m.screenWidth
	title := infoStyle.Render("log")
	rendered := []string{lipgloss.JoinHorizontal(lipgloss.Center,
		strings.Repeat("─", max(0, width-lipgloss.Width(title))), title)}
	for _, line := range lines {
		rendered = append(rendered, logDimStyle.Render(runewidth.Truncate(line, width, "")))
	}
	for len(rendered) < rows+1 {
		rendered = append(rendered, "")
	}
	return strings.Join(rendered, "\n")
}

func (m Model) headerView() string {
	title := titleStyle.Render(m.filename)
	line := strings.Repeat("─", max(0, m.screenWidth-lipgloss.Width(title)))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, line)
}

func (m Model) footerView() string {
	switch m.inputMode {
	case ModeGoto:
		style := promptOkStyle
		if !m.gotoValid {
			style = promptBadStyle
		}
		return style.Render("GoTo ((g) begin, enter confirm): ") + m.textInput.View()
	case ModeSearch:
		return "/" + m.textInput.View()
	case ModeNewFilter:
		kind := "In"
		if m.newFilterKind == viewport.Out {
			kind = "Out"
		}
		return fmt.Sprintf("Filter %s: %s", kind, m.textInput.View())
	}

	status := fmt.Sprintf(" %3.f%% ", m.vp.Percent())
	if n := len(m.filters); n > 0 {
		status += fmt.Sprintf("│ Filters: %d ", n)
	}
	if s := m.vp.LastSearch(); s != "" {
		status += fmt.Sprintf("│ Search: %s ", s)
	}
	if m.status != "" {
		status += "│ " + statusStyle.Render(m.status) + " "
	}

	help := " j/k scroll · g goto · / search · f filters · l log · q quit "
	spaceCount := max(0, m.screenWidth-lipgloss.Width(status)-lipgloss.Width(help))
	line := strings.Repeat("─", spaceCount)
	return lipgloss.JoinHorizontal(lipgloss.Center, status, line, help)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
