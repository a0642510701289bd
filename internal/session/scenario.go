package session

import (
	"fmt"
	"time"

	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Scenario is a TOML file that pre-fills a session:
//
//	[[income]]
//	name = "Salary"
//	amount = 3000
//
//	[[expenses]]
//	name = "Rent"
//	category = "Housing"
//	amount = 1000
//
//	[[goals]]
//	name = "Laptop"
//	target = 1200
//	saved = 200
//	target_date = 2026-12-01
type Scenario struct {
	Income   []model.IncomeItem  `toml:"income"`
	Expenses []model.ExpenseItem `toml:"expenses"`
	Goals    []ScenarioGoal      `toml:"goals"`
}

// ScenarioGoal is a goal entry in a scenario file.
type ScenarioGoal struct {
	Name       string          `toml:"name"`
	Target     decimal.Decimal `toml:"target"`
	Saved      decimal.Decimal `toml:"saved"`
	TargetDate time.Time       `toml:"target_date"`
}

// LoadScenario decodes a scenario file.
func LoadScenario(path string) (Scenario, error) {
	var sc Scenario
	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return Scenario{}, fmt.Errorf("decoding scenario %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Scenario{}, fmt.Errorf("scenario %s: unknown keys %v", path, undecoded)
	}
	return sc, nil
}

// Apply replays a scenario through the normal operations, so badges and
// progress are earned exactly as if the user had entered the data.
func (s *Session) Apply(sc Scenario) error {
	for i, in := range sc.Income {
		if _, err := s.AddIncome(in.Name, in.Amount); err != nil {
			return fmt.Errorf("income %d: %w", i+1, err)
		}
	}
	for i, ex := range sc.Expenses {
		if _, err := s.AddExpense(ex.Name, ex.Category, ex.Amount); err != nil {
			return fmt.Errorf("expense %d: %w", i+1, err)
		}
	}
	for i, g := range sc.Goals {
		date := g.TargetDate
		if date.IsZero() {
			date = s.now().AddDate(0, 6, 0)
		}
		if _, err := s.CreateGoal(g.Name, g.Target, date, g.Saved); err != nil {
			return fmt.Errorf("goal %d: %w", i+1, err)
		}
	}
	return nil
}
