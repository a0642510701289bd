// Package session holds one user's finbuddy state and applies the
// achievement rules to every mutation.
//
// A Session is not safe for concurrent use; callers that share one across
// goroutines must serialize access.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/goals"
	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// InitialProgress is the progress a new session starts with.
const InitialProgress = 0.1

var (
	// ErrInvalidInput wraps every validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoBudget is returned by operations that need income and expenses.
	ErrNoBudget = errors.New("add at least one income and one expense first")
	// ErrNoActiveQuiz is returned when submitting without a started quiz.
	ErrNoActiveQuiz = errors.New("no quiz in progress")
	// ErrNoHealthScore is returned when a plan is requested before scoring.
	ErrNoHealthScore = errors.New("calculate your financial health score first")

	errEmptyMessage = errors.New("message must not be empty")
	errEmptyItem    = errors.New("item name must not be empty")
)

// Config wires a session to its collaborators.
type Config struct {
	Advisor      *advisor.Advisor
	Currency     string
	Clock        func() time.Time
	EventsBuffer int
	Logger       logrus.FieldLogger
}

// Session is the explicit state object behind every finbuddy surface.
type Session struct {
	now     func() time.Time
	log     logrus.FieldLogger
	advisor *advisor.Advisor
	prompts advisor.Prompts

	income   []model.IncomeItem
	expenses []model.ExpenseItem
	goals    goals.Tracker

	investment model.InvestmentProgress
	activeQuiz *activeQuiz
	health     *model.HealthScore
	tipsViewed int
	chat       []ChatMessage

	engine *gamify.Engine
}

// New creates an empty session.
func New(cfg Config) *Session {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Advisor == nil {
		cfg.Advisor = advisor.New(nil)
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		cfg.Logger = l
	}

	return &Session{
		now:     cfg.Clock,
		log:     cfg.Logger,
		advisor: cfg.Advisor,
		prompts: advisor.Prompts{Currency: cfg.Currency},
		chat:    []ChatMessage{{Role: RoleAssistant, Content: Greeting}},
		engine: gamify.New(gamify.Config{
			InitialProgress: InitialProgress,
			EventsBuffer:    cfg.EventsBuffer,
			Clock:           cfg.Clock,
		}),
	}
}

// Engine exposes badges, progress and the event stream.
func (s *Session) Engine() *gamify.Engine {
	return s.engine
}

// Online reports whether a model is configured.
func (s *Session) Online() bool {
	return s.advisor.Online()
}

// Currency returns the configured currency symbol.
func (s *Session) Currency() string {
	return s.prompts.Currency
}

// reward awards a badge and, only when it is new, bumps progress.
func (s *Session) reward(name string, delta float64) bool {
	if !s.engine.Award(name, gamify.EmojiFor(name)) {
		return false
	}
	s.bump(delta)
	s.log.WithField("badge", name).Info("badge awarded")
	return true
}

func (s *Session) bump(delta float64) {
	before := s.engine.Level()
	if _, err := s.engine.Bump(delta); err != nil {
		s.log.WithError(err).Error("progress bump rejected")
		return
	}
	if after := s.engine.Level(); after > before {
		s.log.WithField("level", after).Info("level up")
	}
}

func (s *Session) money(d decimal.Decimal) string {
	return cli.FormatMoney(s.prompts.Currency, d)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
