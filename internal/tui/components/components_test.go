package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	for i, line := range lines {
		if w := lipgloss.Width(line); w != 44 {
			t.Errorf("line %d width = %d, want 44", i, w)
		}
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Errorf("line %d has no ANSI codes; padding is unstyled", i)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{100, 4, []int{25, 25, 25, 25}},
		{10, 3, []int{4, 3, 3}},
		{7, 1, []int{7}},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
			}
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestTabBarWidthMatchesTabs(t *testing.T) {
	theme.SetActive("flexoki-dark")
	for active := range Tabs {
		want := len(Tabs) - 1 // separators
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		bar := RenderTabBar(active, 0)
		if got := lipgloss.Width(bar); got != want {
			t.Fatalf("active=%d: tab bar width = %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('g'); got != 1 {
		t.Fatalf("TabIdxByKey('g') = %d, want 1", got)
	}
	if got := TabIdxByKey('x'); got != len(Tabs)-1 {
		t.Fatalf("TabIdxByKey('x') = %d, want %d", got, len(Tabs)-1)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestProgressBarClamps(t *testing.T) {
	theme.SetActive("flexoki-dark")
	tests := []struct {
		pct  float64
		want string
	}{
		{-0.5, "0%"},
		{0.5, "50%"},
		{1.7, "100%"},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.pct, 10)
		if !strings.HasSuffix(stripANSI(bar), tt.want) {
			t.Fatalf("ProgressBar(%v) = %q, want suffix %q", tt.pct, stripANSI(bar), tt.want)
		}
		if w := lipgloss.Width(bar); w != 11+len(tt.want) {
			t.Fatalf("ProgressBar(%v) width = %d", tt.pct, w)
		}
	}
}

func TestHBarChartScalesToPeak(t *testing.T) {
	out := stripANSI(HBarChart([]Bar{
		{Label: "Housing", Value: 100, Note: "$100"},
		{Label: "Food", Value: 50, Note: "$50"},
		{Label: "Fun", Value: 0, Note: "$0"},
	}, 40))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	full := strings.Count(lines[0], "█")
	half := strings.Count(lines[1], "█")
	if full == 0 || half*2 > full+1 || half*2 < full-1 {
		t.Fatalf("bars not proportional: %d vs %d", full, half)
	}
	if strings.Contains(lines[2], "█") {
		t.Fatal("zero value should have no bar")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
