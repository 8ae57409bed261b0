package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const statusWidth = 12

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	idleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return okStyle
	case "error":
		return errStyle
	case "queued", "":
		return idleStyle
	}
	return busyStyle
}

func (m *progressModel) header() string {
	h := m.title
	if m.stageLabel != "" {
		h += " (" + m.stageLabel + ")"
	}
	if !m.done {
		return m.spinner.View() + " " + h
	}
	h = "done: " + h
	if m.failed > 0 {
		h += fmt.Sprintf(", %d failed", m.failed)
	}
	return h
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	for _, r := range m.rows {
		status := statusStyle(r.status).Render(fmt.Sprintf("%*s", statusWidth, r.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(r.path, nameWidth))
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to width display cells, ending in "..." when
// there is room for it. Width 0 disables truncation.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
