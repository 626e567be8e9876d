package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles derived from the current theme. SetTheme rebuilds them.
var (
	canvasStyle lipgloss.Style
	statsStyle  lipgloss.Style
	headerStyle lipgloss.Style
	labelStyle  lipgloss.Style
	valueStyle  lipgloss.Style
	activeStyle lipgloss.Style
	graphStyle  lipgloss.Style
	helpStyle   lipgloss.Style
	warnStyle   lipgloss.Style
)

func init() { applyTheme() }

func applyTheme() {
	t := CurrentTheme
	canvasStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)
	statsStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Muted).
		Padding(1, 2).
		Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(t.Muted).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text)
	activeStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	graphStyle = lipgloss.NewStyle().Foreground(t.Primary)
	helpStyle = lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1)
	warnStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
}

// ProgressBar renders a fixed-width completion bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return graphStyle.Render(bar)
}
