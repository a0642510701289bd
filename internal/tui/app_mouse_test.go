package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	const tabs = 8
	for active := 0; active < tabs; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < tabs; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < tabs-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d x past last tab -> tab=%d, want -1", active, got)
		}
	}
}

func TestMouseClickOnTabBarSwitchesTab(t *testing.T) {
	a := newTestApp(t)
	x := tabWidthForTest(0, 0) + 1 + 1 // inside Goals
	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabGoals {
		t.Fatalf("activeTab = %d, want %d", got, tabGoals)
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{
		len("Budget"),
		len("Goals"),
		len("Chat"),
		len("Learn"),
		len("Afford"),
		len("Tips"),
		len("Health"),
		len("Badges"),
	}

	w := nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
	if tabIdx != activeIdx && tabIdx == 7 {
		w += 3 // inactive Badges adds "[x]"
	}
	return w
}
