package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	sess := session.New(session.Config{
		Currency: "$",
		Clock:    func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) },
	})
	a := NewApp(sess, Options{})
	t.Cleanup(a.Close)

	m, _ := a.Update(tea.WindowSizeMsg{Width: 130, Height: 45})
	return m.(App)
}

func press(t *testing.T, a App, key string) App {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

func TestTabKeysSwitchTabs(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"g", tabGoals},
		{"c", tabChat},
		{"l", tabLearn},
		{"a", tabAfford},
		{"t", tabTips},
		{"h", tabHealth},
		{"x", tabBadges},
		{"b", tabBudget},
	}
	a := newTestApp(t)
	for _, tt := range tests {
		a = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Fatalf("key %q: activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestArrowKeysWrapAround(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "left")
	if a.activeTab != tabBadges {
		t.Fatalf("left from first tab = %d, want %d", a.activeTab, tabBadges)
	}
	a = press(t, a, "right")
	if a.activeTab != tabBudget {
		t.Fatalf("right from last tab = %d, want %d", a.activeTab, tabBudget)
	}
}

func TestFormOpensAndEscCloses(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "n")
	if a.form == nil {
		t.Fatal("n on Budget should open the income form")
	}
	if !strings.Contains(a.View(), "Add income") {
		t.Fatal("open form should render in the content area")
	}

	// Tab keys are form input while the form is open.
	a = press(t, a, "g")
	if a.activeTab != tabBudget {
		t.Fatalf("activeTab = %d while form open, want %d", a.activeTab, tabBudget)
	}

	a = press(t, a, "esc")
	if a.form != nil {
		t.Fatal("esc should close the form")
	}
}

func TestSubmitIncomeUpdatesSnapshot(t *testing.T) {
	a := newTestApp(t)
	cmd := submitIncome(&a, &formValues{Name: "Salary", Amount: "$4,000"})
	if cmd != nil {
		t.Fatalf("submitIncome returned a command (error flash): %q", a.flash)
	}
	if len(a.snap.Income) != 1 {
		t.Fatalf("income items = %d, want 1", len(a.snap.Income))
	}
	if !a.snap.Income[0].Amount.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("amount = %s, want 4000", a.snap.Income[0].Amount)
	}
}

func TestChallengeKeyAwardsBadgeOnce(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "t")
	a = press(t, a, "w")
	if !a.challengeDone {
		t.Fatal("challenge should be marked done")
	}
	if !hasBadge(a, gamify.BadgeChallengeCompleter) {
		t.Fatalf("badges = %v, want %s", a.snap.Badges, gamify.BadgeChallengeCompleter)
	}

	before := a.snap.Progress
	a = press(t, a, "w")
	if a.snap.Progress != before {
		t.Fatalf("second w changed progress %v -> %v", before, a.snap.Progress)
	}
}

func TestHealthKeyCalculatesScore(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "h")
	a = press(t, a, "s")
	if a.healthRep == nil {
		t.Fatal("s should store a health report")
	}
	if a.snap.Health == nil {
		t.Fatal("snapshot should carry the stored score")
	}
	if !hasBadge(a, gamify.BadgeHealthChecker) {
		t.Fatalf("badges = %v, want %s", a.snap.Badges, gamify.BadgeHealthChecker)
	}
	if !strings.Contains(a.View(), "Financial Health") {
		t.Fatal("health tab should render the report")
	}
}

func TestBusyBlocksTabActions(t *testing.T) {
	a := newTestApp(t)
	a.busy = "Thinking"
	a = press(t, a, "n")
	if a.form != nil {
		t.Fatal("actions must wait while a model call is in flight")
	}
	a = press(t, a, "g")
	if a.activeTab != tabGoals {
		t.Fatal("tab switching should still work while busy")
	}
}

func TestEveryTabRenders(t *testing.T) {
	for _, size := range []struct{ w, h int }{{130, 45}, {90, 30}} {
		a := newTestApp(t)
		m, _ := a.Update(tea.WindowSizeMsg{Width: size.w, Height: size.h})
		a = m.(App)
		for tab := tabBudget; tab <= tabBadges; tab++ {
			a.activeTab = tab
			out := a.View()
			if !strings.Contains(out, "FinBuddy") {
				t.Fatalf("%dx%d tab %d: header missing", size.w, size.h, tab)
			}
			if got := lipgloss.Height(out); got < size.h {
				t.Fatalf("%dx%d tab %d: %d lines, want at least %d", size.w, size.h, tab, got, size.h)
			}
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"", "0", nil},
		{"1200", "1200", nil},
		{"$1,234.50", "1234.5", nil},
		{" 49.99 ", "49.99", nil},
		{"abc", "0", errNotAmount},
		{"-20", "0", errNegative},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("parseAmount(%q) err = %v, want %v", tt.in, err, tt.wantErr)
		}
		if got.String() != tt.want {
			t.Fatalf("parseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if err := validateAmount("  "); !errors.Is(err, errBlank) {
		t.Fatalf("validateAmount(blank) = %v, want errBlank", err)
	}
	if err := validateOptionalAmount(""); err != nil {
		t.Fatalf("validateOptionalAmount(blank) = %v, want nil", err)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2027-01-31"); err != nil {
		t.Fatalf("parseDate valid: %v", err)
	}
	if _, err := parseDate("31/01/2027"); !errors.Is(err, errNotDate) {
		t.Fatalf("parseDate invalid = %v, want errNotDate", err)
	}
}

func TestErrorText(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", session.ErrInvalidInput, errors.New("name is required"))
	if got := errorText(wrapped); got != "name is required" {
		t.Fatalf("errorText(invalid) = %q", got)
	}
	qe := &learn.QuizParseError{Raw: "nope", Err: errors.New("bad json")}
	if got := errorText(qe); !strings.Contains(got, "quiz") {
		t.Fatalf("errorText(quiz) = %q", got)
	}
}

func TestLineHelpers(t *testing.T) {
	s := "a\nb\nc\nd"
	if got := scrollLines(s, 2); got != "c\nd" {
		t.Fatalf("scrollLines = %q", got)
	}
	if got := scrollLines(s, 10); got != "d" {
		t.Fatalf("scrollLines past end = %q", got)
	}
	if got := truncateHeight(s, 2); got != "a\nb" {
		t.Fatalf("truncateHeight = %q", got)
	}
	if got := padHeight("a", 3); got != "a\n\n" {
		t.Fatalf("padHeight = %q", got)
	}
}

func hasBadge(a App, name string) bool {
	for _, b := range a.snap.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}
