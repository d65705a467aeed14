package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// statuses is the status palette dcx renders grab progress with: one style per step
// outcome plus the title and the dimmed detail text.
var statuses = newStatusPalette(statusColors{
	title:   "#7D56F4",
	done:    "#04B575",
	failed:  "#FF0000",
	running: "#FFA500",
	pending: "#626262",
})

type statusColors struct {
	title, done, failed, running, pending string
}

type statusPalette struct {
	title   lipgloss.Style
	done    lipgloss.Style
	failed  lipgloss.Style
	running lipgloss.Style
	pending lipgloss.Style
}

func newStatusPalette(c statusColors) *statusPalette {
	return &statusPalette{
		title:   fg(c.title).Bold(true).MarginBottom(1),
		done:    fg(c.done).Bold(true),
		failed:  fg(c.failed).Bold(true),
		running: fg(c.running),
		pending: fg(c.pending),
	}
}

// marker is the glyph drawn before a settled step's label. Running steps use the spinner.
func (p *statusPalette) marker(s stepState) string {
	switch s {
	case stepDone:
		return p.done.Render("✓")
	case stepFailed:
		return p.failed.Render("✗")
	default:
		return p.pending.Render("·")
	}
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
