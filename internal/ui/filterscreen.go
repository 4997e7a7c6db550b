package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/haydenflinner/wd/internal/viewport"
)

var (
	filterInStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	filterOutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	filterOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m Model) filterPanelRows() int {
	rows := len(m.filters) + 1
	if m.inputMode == ModeNewFilter {
		rows++
	}
	if rows < 4 {
		rows = 4
	}
	return rows
}

// applyFilters hands the current list to the viewport. Order matters:
// later filters win over earlier ones on the same line.
func (m *Model) applyFilters() {
	filters := make([]viewport.Filter, len(m.filters))
	copy(filters, m.filters)
	m.vp.SetFilters(filters)
	m.vp.Refresh()
}

func (m Model) updateFilterList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		m.inputMode = ModeNormal
		m.vp.SetSize(m.contentRows(), m.screenWidth)
		return m, nil

	case "j", "down":
		if m.filterCursor < len(m.filters)-1 {
			m.filterCursor++
		}
	case "k", "up":
		if m.filterCursor > 0 {
			m.filterCursor--
		}

	case "i", "o":
		m.newFilterKind = viewport.In
		if msg.String() == "o" {
			m.newFilterKind = viewport.Out
		}
		m.inputMode = ModeNewFilter
		m.textInput.Placeholder = "Needle..."
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink

	case " ", "space":
		if m.filterCursor < len(m.filters) {
			m.filters[m.filterCursor].Enabled = !m.filters[m.filterCursor].Enabled
			m.applyFilters()
		}

	case "d":
		if m.filterCursor < len(m.filters) {
			m.filters = append(m.filters[:m.filterCursor], m.filters[m.filterCursor+1:]...)
			if m.filterCursor >= len(m.filters) && m.filterCursor > 0 {
				m.filterCursor--
			}
			m.applyFilters()
		}
	}
	return m, nil
}

func (m Model) updateNewFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = ModeFilters
		m.textInput.Blur()
		m.textInput.SetValue("")
		return m, nil
	case "enter":
		needle := m.textInput.Value()
		m.inputMode = ModeFilters
		m.textInput.Blur()
		m.textInput.SetValue("")
		if needle != "" {
			m.filters = append(m.filters, viewport.Filter{
				Needle:  needle,
				Kind:    m.newFilterKind,
				Enabled: true,
			})
			m.filterCursor = len(m.filters) - 1
			m.applyFilters()
			log.Info().Str("needle", needle).Msg("added filter")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) filterListView() string {
	width := m.screenWidth
	title := infoStyle.Render("Filters: (i) In (o) Out (space) Toggle (d) Delete (q/enter/esc) Close")
	rendered := []string{lipgloss.JoinHorizontal(lipgloss.Center,
		strings.Repeat("─", max(0, width-lipgloss.Width(title))), title)}

	if len(m.filters) == 0 {
		rendered = append(rendered, filterOffStyle.Render("  (no filters)"))
	}
	for i, f := range m.filters {
		marker := "  "
		if i == m.filterCursor {
			marker = ">>"
		}
		style := filterInStyle
		if f.Kind == viewport.Out {
			style = filterOutStyle
		}
		if !f.Enabled {
			style = filterOffStyle
		}
		rendered = append(rendered, marker+" "+style.Render(f.Needle))
	}

	for len(rendered) < m.filterPanelRows() {
		rendered = append(rendered, "")
	}
	return strings.Join(rendered, "\n")
}
