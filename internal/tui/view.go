package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"qactl/internal/client"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	passedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

const nameColumnWidth = 40

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Watching runs"))
	b.WriteString("\n\n")

	for i, entry := range m.entries {
		cursor := "  "
		name := entry.TestName
		if name == "" {
			name = entry.RunID
		}
		name = runewidth.Truncate(name, nameColumnWidth, "…")
		line := fmt.Sprintf("%s %s  %s",
			m.statusGlyph(entry),
			runewidth.FillRight(name, nameColumnWidth),
			statusLabel(entry))

		if i == m.selected {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.lastLog != "" {
		b.WriteString("\n" + statusStyle.Render(m.lastLog) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ navigate · y copy run id · q quit") + "\n")
	return b.String()
}

func (m Model) statusGlyph(entry Entry) string {
	if entry.Err != nil {
		return errorStyle.Render("!")
	}
	if entry.Run == nil {
		return m.spinner.View()
	}
	switch entry.Run.Status {
	case client.RunStatusPassed:
		return passedStyle.Render("✓")
	case client.RunStatusFailed:
		return failedStyle.Render("✗")
	case client.RunStatusError:
		return errorStyle.Render("!")
	default:
		return m.spinner.View()
	}
}

func statusLabel(entry Entry) string {
	if entry.Err != nil {
		return errorStyle.Render("poll error: " + entry.Err.Error())
	}
	if entry.Run == nil {
		return runningStyle.Render("pending")
	}
	label := string(entry.Run.Status)
	switch entry.Run.Status {
	case client.RunStatusPassed:
		label = passedStyle.Render(label)
	case client.RunStatusFailed:
		label = failedStyle.Render(label)
	case client.RunStatusError:
		label = errorStyle.Render(label)
	default:
		label = runningStyle.Render(label)
	}
	if entry.Run.Result != "" {
		label += statusStyle.Render("  " + runewidth.Truncate(entry.Run.Result, 60, "…"))
	}
	return label
}
