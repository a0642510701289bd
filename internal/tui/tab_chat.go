package tui

import (
	"context"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateChatKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", "i":
		a.chatActive = true
		a.scroll = 0
		return a, a.chatInput.Focus()
	}
	return a, nil
}

// updateChatInput handles keys while the chat input has focus.
func (a App) updateChatInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.chatActive = false
		a.chatInput.Blur()
		return a, nil
	case "enter":
		text := strings.TrimSpace(a.chatInput.Value())
		if text == "" || a.busy != "" {
			return a, nil
		}
		a.chatInput.Reset()
		a.scroll = 0
		return a, a.runAction("FinBuddy is thinking", func(ctx context.Context, s *session.Session) (func(*App), error) {
			_, err := s.Ask(ctx, text)
			return nil, err
		})
	}

	var cmd tea.Cmd
	a.chatInput, cmd = a.chatInput.Update(msg)
	return a, cmd
}

// renderChatTab keeps the newest messages in view; scrolling moves back
// through the transcript.
func (a App) renderChatTab(cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	userStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var lines []string
	for _, m := range a.snap.Chat {
		if m.Role == session.RoleUser {
			lines = append(lines, userStyle.Render("You"))
			lines = append(lines, strings.Split(replyBody(advisor.Reply{Text: m.Content}, inner), "\n")...)
		} else {
			lines = append(lines, botStyle.Render("FinBuddy"))
			lines = append(lines, strings.Split(replyBody(advisor.Reply{Text: m.Content, Source: m.Source}, inner), "\n")...)
		}
		lines = append(lines, "")
	}

	input := a.chatInput.View()
	if !a.chatActive {
		input = mutedText("Press enter to ask a question")
	}
	inputCard := components.ContentCard("", input, cw)

	// 2 border rows around the transcript card
	avail := max(h-lipgloss.Height(inputCard)-2, 1)
	end := max(len(lines)-a.scroll, min(avail, len(lines)))
	start := max(end-avail, 0)

	transcript := components.ContentCard("", strings.Join(lines[start:end], "\n"), cw)
	return transcript + "\n" + inputCard
}
