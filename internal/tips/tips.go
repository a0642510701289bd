// Package tips provides tip categories, the weekly money challenge and the
// static wisdom collections.
package tips

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownCategory is returned for a tip or wisdom category that does not exist.
var ErrUnknownCategory = errors.New("unknown tip category")

var categories = []string{
	"Budgeting Hacks",
	"Saving Strategies",
	"Investing Basics",
	"Debt Management",
	"Financial Planning",
	"Side Hustle Ideas",
	"Shopping Smart",
	"Credit Score Tips",
}

var challenges = []string{
	"Track every expense for 7 days straight 📝",
	"Find 3 subscriptions you can cancel or reduce 🔍",
	"Save $5 every day this week 💰",
	"Learn one new investing term each day 📚",
	"Cook all meals at home for a week instead of eating out 🍳",
	"Set up automatic transfers to a savings account 🏦",
	"Review your budget and find one category to reduce by 10% ✂️",
	"Research one potential side hustle you could start 💼",
}

// Wisdom is a titled list of short sayings.
type Wisdom struct {
	Title   string   `json:"title"`
	Sayings []string `json:"sayings"`
}

var wisdom = []Wisdom{
	{"Budget Basics", []string{
		"Pay yourself first - allocate savings before spending.",
		"Follow the 50/30/20 rule: 50% needs, 30% wants, 20% savings.",
		"Review your subscriptions monthly - they add up quickly.",
		"Cash envelopes can help limit spending in problem categories.",
		"Budget for fun too - extreme restriction leads to giving up.",
	}},
	{"Saving Strategies", []string{
		"Save for emergencies first - aim for 3-6 months of expenses.",
		"Automate savings to remove the temptation to spend.",
		"Save raises and bonuses instead of increasing your lifestyle.",
		"Challenge yourself with no-spend days or weeks.",
		"Round up purchases and save the difference.",
	}},
	{"Investing 101", []string{
		"Start investing early - time is your biggest advantage.",
		"Index funds offer simple, low-cost diversification.",
		"Compound interest is powerful - even small amounts grow.",
		"Dollar-cost averaging reduces timing risk.",
		"Your asset allocation should match your time horizon.",
	}},
}

// Categories returns the tip categories in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches a category case-insensitively. Empty selects the first.
func ParseCategory(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return categories[0], nil
	}
	for _, c := range categories {
		if strings.EqualFold(c, s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownCategory)
}

// Challenges returns every weekly challenge.
func Challenges() []string {
	out := make([]string, len(challenges))
	copy(out, challenges)
	return out
}

// ChallengeFor picks the challenge for the day: weekday with Monday as 0,
// modulo the number of challenges.
func ChallengeFor(t time.Time) string {
	monday0 := (int(t.Weekday()) + 6) % 7
	return challenges[monday0%len(challenges)]
}

// WisdomCollections returns all wisdom collections.
func WisdomCollections() []Wisdom {
	out := make([]Wisdom, len(wisdom))
	for i, w := range wisdom {
		out[i] = Wisdom{Title: w.Title, Sayings: append([]string(nil), w.Sayings...)}
	}
	return out
}

// WisdomFor returns one collection by title, case-insensitive.
func WisdomFor(title string) (Wisdom, error) {
	for _, w := range wisdom {
		if strings.EqualFold(w.Title, strings.TrimSpace(title)) {
			return Wisdom{Title: w.Title, Sayings: append([]string(nil), w.Sayings...)}, nil
		}
	}
	return Wisdom{}, fmt.Errorf("%q: %w", title, ErrUnknownCategory)
}
