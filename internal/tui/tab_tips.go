package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tips"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateTipsKey(key string) (tea.Model, tea.Cmd) {
	cats := tips.Categories()
	switch key {
	case "j", "down":
		if a.tipCursor < len(cats)-1 {
			a.tipCursor++
		}
	case "k", "up":
		if a.tipCursor > 0 {
			a.tipCursor--
		}
	case "enter":
		cat := cats[a.tipCursor]
		return a, a.runAction("Finding a tip", func(ctx context.Context, s *session.Session) (func(*App), error) {
			res, err := s.Tip(ctx, cat)
			if err != nil {
				return nil, err
			}
			return func(a *App) { a.tip = &res }, nil
		})
	case "w":
		if a.challengeDone {
			return a, nil
		}
		cmd := a.mutate(func(s *session.Session) error {
			s.CompleteChallenge()
			return nil
		})
		a.challengeDone = true
		return a, cmd
	}
	return a, nil
}

func (a App) renderTipsTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var cats strings.Builder
	for i, c := range tips.Categories() {
		if i > 0 {
			cats.WriteString("\n")
		}
		if i == a.tipCursor {
			cats.WriteString(cursorStyle.Render("▸ " + c))
		} else {
			cats.WriteString(itemStyle.Render("  " + c))
		}
	}
	cats.WriteString("\n\n" + mutedText(fmt.Sprintf("%d tips viewed", a.snap.TipsViewed)))

	var parts []string
	if a.isCompactLayout() {
		parts = append(parts,
			components.ContentCard("Categories", cats.String(), cw),
			components.ContentCard("Weekly challenge", a.challengeBody(inner), cw))
	} else {
		leftW := cw / 3
		rightW := cw - leftW
		parts = append(parts, components.CardRow([]string{
			components.ContentCard("Categories", cats.String(), leftW),
			components.ContentCard("Weekly challenge", a.challengeBody(components.CardInnerWidth(rightW)), rightW),
		}))
	}

	if a.tip != nil {
		parts = append(parts, components.ContentCard(a.tip.Category+" tip", replyBody(a.tip.Reply, inner), cw))
	}

	// One saying from each collection, rotating with the tip count.
	var wisdom strings.Builder
	for i, w := range tips.WisdomCollections() {
		if len(w.Sayings) == 0 {
			continue
		}
		if i > 0 {
			wisdom.WriteString("\n")
		}
		saying := w.Sayings[a.snap.TipsViewed%len(w.Sayings)]
		wisdom.WriteString(cursorStyle.Render(w.Title) + "\n")
		wisdom.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(inner).Render(saying))
		wisdom.WriteString("\n")
	}
	parts = append(parts, components.ContentCard("Financial wisdom", strings.TrimRight(wisdom.String(), "\n"), cw))

	return strings.Join(parts, "\n")
}

func (a App) challengeBody(width int) string {
	t := theme.Active
	body := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(width).Render(a.snap.Challenge)
	if a.challengeDone {
		return body + "\n\n" + lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Width(width).
			Render(session.ChallengeDone)
	}
	return body + "\n\n" + mutedText("Press w when you have done it.")
}
