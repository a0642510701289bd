package components

import (
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is what the bottom bar shows.
type Status struct {
	Level    int
	Progress float64
	Online   bool
	Busy     string // label of the call in flight, empty when idle
	Spinner  string
	Hints    string // tab-specific key hints
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	busyStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)

	left := base.Render(" ") + keyStyle.Render("[?]") + base.Render("help  ") +
		keyStyle.Render("[q]") + base.Render("uit")
	if st.Hints != "" {
		left += base.Render("  " + st.Hints)
	}

	mode := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("online")
	if !st.Online {
		mode = lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("offline")
	}

	right := ""
	if st.Busy != "" {
		right = busyStyle.Render(st.Spinner+" "+st.Busy) + base.Render("  ")
	}
	right += CompactProgressBar(fmt.Sprintf("Lv %d", st.Level), st.Progress, 24) +
		base.Render("  ") + mode + base.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return left + base.Render(fmt.Sprintf("%*s", padding, "")) + right
}
