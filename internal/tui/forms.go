package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/finbuddy/internal/afford"
	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// formValues backs every action form; each form binds only the fields it
// needs. It is heap-allocated so huh's pointers stay valid while the App
// value is copied between updates.
type formValues struct {
	Name     string
	Amount   string
	Category string
	Date     string
	Initial  string

	Kind      string
	Necessity int
	Urgency   string
	Goal      string

	Answers   []int
	Confirmed bool
}

var (
	errBlank     = errors.New("required")
	errNotAmount = errors.New("enter an amount like 1200 or 49.99")
	errNegative  = errors.New("amount must not be negative")
	errNotDate   = errors.New("enter a date as YYYY-MM-DD")
)

// parseAmount reads a user-typed money amount. Currency symbols, spaces and
// thousands separators are ignored. Blank input is zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	digits := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return -1
	}, s)
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, errNotAmount
	}
	if d.IsNegative() {
		return decimal.Zero, errNegative
	}
	return d, nil
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	_, err := parseAmount(s)
	return err
}

func validateOptionalAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, errNotDate
	}
	return d, nil
}

func validateDate(s string) error {
	_, err := parseDate(s)
	return err
}

func nameInput(title, placeholder string, v *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Validate(validateName).
		Value(v)
}

func amountInput(title string, v *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("0.00").
		Validate(validateAmount).
		Value(v)
}

func incomeForm(v *formValues) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		nameInput("Income source", "Salary", &v.Name),
		amountInput("Monthly amount", &v.Amount),
	))
}

func expenseForm(v *formValues) *huh.Form {
	cats := model.Categories()
	opts := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		opts = append(opts, huh.NewOption(c.String(), c.String()))
	}
	if v.Category == "" {
		v.Category = model.CategoryHousing.String()
	}
	return huh.NewForm(huh.NewGroup(
		nameInput("Expense", "Rent", &v.Name),
		huh.NewSelect[string]().
			Title("Category").
			Options(opts...).
			Value(&v.Category),
		amountInput("Monthly amount", &v.Amount),
	))
}

func goalForm(v *formValues, now time.Time) *huh.Form {
	if v.Date == "" {
		v.Date = now.AddDate(1, 0, 0).Format(time.DateOnly)
	}
	return huh.NewForm(huh.NewGroup(
		nameInput("Goal name", "Emergency fund", &v.Name),
		amountInput("Target amount", &v.Amount),
		huh.NewInput().
			Title("Target date").
			Description("YYYY-MM-DD").
			Validate(validateDate).
			Value(&v.Date),
		huh.NewInput().
			Title("Already saved").
			Placeholder("0").
			Validate(validateOptionalAmount).
			Value(&v.Initial),
	))
}

func fundsForm(v *formValues, goalName string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		amountInput("Add funds to "+goalName, &v.Amount),
	))
}

func deleteForm(v *formValues, goalName string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete goal %q?", goalName)).
			Description("Deleted goals disappear from every view.").
			Affirmative("Delete").
			Negative("Keep").
			Value(&v.Confirmed),
	))
}

func affordForm(v *formValues, goalNames []string) *huh.Form {
	if v.Kind == "" {
		v.Kind = string(afford.OneTime)
	}
	if v.Necessity == 0 {
		v.Necessity = 5
	}
	if v.Urgency == "" {
		v.Urgency = afford.UrgencyCanWait
	}

	necessity := make([]huh.Option[int], 0, 10)
	for i := 1; i <= 10; i++ {
		necessity = append(necessity, huh.NewOption(strconv.Itoa(i), i))
	}

	fields := []huh.Field{
		nameInput("What do you want to buy?", "New laptop", &v.Name),
		amountInput("Cost", &v.Amount),
		huh.NewSelect[string]().
			Title("Purchase type").
			Options(
				huh.NewOption(afford.OneTime.Label(), string(afford.OneTime)),
				huh.NewOption(afford.Monthly.Label(), string(afford.Monthly)),
			).
			Value(&v.Kind),
		huh.NewSelect[int]().
			Title("How necessary is it? (1-10)").
			Options(necessity...).
			Value(&v.Necessity),
		huh.NewSelect[string]().
			Title("Urgency").
			Options(huh.NewOptions(afford.UrgencyCanWait, afford.UrgencySoon, afford.UrgencyUrgent)...).
			Value(&v.Urgency),
	}
	if len(goalNames) > 0 {
		goals := append([]huh.Option[string]{huh.NewOption("None", "")}, huh.NewOptions(goalNames...)...)
		fields = append(fields, huh.NewSelect[string]().
			Title("Related savings goal").
			Options(goals...).
			Value(&v.Goal))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// quizForm asks one question per page. v.Answers is sized to the quiz.
func quizForm(v *formValues, q learn.Quiz) *huh.Form {
	v.Answers = make([]int, len(q.Questions))
	groups := make([]*huh.Group, 0, len(q.Questions))
	for i, question := range q.Questions {
		opts := make([]huh.Option[int], 0, len(question.Options))
		for j, o := range question.Options {
			opts = append(opts, huh.NewOption(o, j))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%d. %s", i+1, question.Question)).
				Options(opts...).
				Value(&v.Answers[i]),
		))
	}
	return huh.NewForm(groups...)
}
