// Package gamify tracks badges and progress levels and publishes
// achievement events to subscribers.
package gamify

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNegativeDelta is returned by Bump for a delta below zero.
var ErrNegativeDelta = errors.New("gamify: progress delta must not be negative")

// ErrNonFiniteDelta is returned by Bump for a NaN or infinite delta.
var ErrNonFiniteDelta = errors.New("gamify: progress delta must be finite")

// Event types.
const (
	EventBadgeAwarded = "badge_awarded"
	EventLevelUp      = "level_up"
	EventProgress     = "progress"
)

// MaxLevel is the level reached at full progress.
const MaxLevel = 10

// Event is published whenever progress moves, a level is crossed or a
// badge is awarded.
type Event struct {
	ID        int64        `json:"id"`
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Progress  float64      `json:"progress"`
	Level     int          `json:"level"`
	Badge     *model.Badge `json:"badge,omitempty"`
}

// Config controls engine defaults.
type Config struct {
	InitialProgress float64
	EventsBuffer    int
	Clock           func() time.Time
}

// Engine holds one session's badges and progress. Safe for concurrent use.
type Engine struct {
	cfg Config

	mu       sync.RWMutex
	progress decimal.Decimal
	badges   []model.Badge
	held     map[string]struct{}

	nextEventID int64
	events      []Event
	nextSubID   int
	subs        map[int]chan Event
}

var (
	one = decimal.NewFromInt(1)
	ten = decimal.NewFromInt(MaxLevel)
)

// New returns an engine seeded with cfg.InitialProgress.
func New(cfg Config) *Engine {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	start := decimal.NewFromFloat(cfg.InitialProgress)
	start = decimal.Min(one, decimal.Max(decimal.Zero, start))

	return &Engine{
		cfg:      cfg,
		progress: start,
		held:     make(map[string]struct{}),
		subs:     make(map[int]chan Event),
	}
}

// Award inserts a badge unless one with the same name is already held.
// It returns true only on first insert.
func (e *Engine) Award(name, emoji string) bool {
	e.mu.Lock()
	if _, ok := e.held[name]; ok {
		e.mu.Unlock()
		return false
	}
	b := model.Badge{Name: name, Emoji: emoji, DateEarned: e.cfg.Clock()}
	e.held[name] = struct{}{}
	e.badges = append(e.badges, b)
	ev := e.newEventLocked(EventBadgeAwarded)
	ev.Badge = &b
	e.mu.Unlock()

	e.publishEvent(ev)
	return true
}

// Bump adds delta to progress, capped at 1.0. Crossing a level boundary
// publishes a level-up event; landing on level 5 or 10 awards the
// milestone badge.
func (e *Engine) Bump(delta float64) (float64, error) {
	switch {
	case math.IsNaN(delta) || math.IsInf(delta, 0):
		return e.Progress(), ErrNonFiniteDelta
	case delta < 0:
		return e.Progress(), ErrNegativeDelta
	}

	e.mu.Lock()
	oldLevel := levelOf(e.progress)
	e.progress = decimal.Min(one, e.progress.Add(decimal.NewFromFloat(delta)))
	newLevel := levelOf(e.progress)
	pub := []Event{e.newEventLocked(EventProgress)}
	if newLevel > oldLevel {
		pub = append(pub, e.newEventLocked(EventLevelUp))
	}
	current := e.progress.InexactFloat64()
	e.mu.Unlock()

	for _, ev := range pub {
		e.publishEvent(ev)
	}

	if newLevel > oldLevel {
		switch newLevel {
		case 5:
			e.Award(BadgeHalfwayHero, EmojiFor(BadgeHalfwayHero))
		case MaxLevel:
			e.Award(BadgeFinanceMaster, EmojiFor(BadgeFinanceMaster))
		}
	}

	return current, nil
}

// Progress returns the current progress in [0,1].
func (e *Engine) Progress() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.progress.InexactFloat64()
}

// Level returns floor(progress*10).
func (e *Engine) Level() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return levelOf(e.progress)
}

// ProgressToNext returns the fraction of the current level completed,
// or 1 at the maximum level.
func (e *Engine) ProgressToNext() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if levelOf(e.progress) >= MaxLevel {
		return 1
	}
	scaled := e.progress.Mul(ten)
	return scaled.Sub(scaled.Floor()).InexactFloat64()
}

// Has reports whether a badge with name is held.
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.held[name]
	return ok
}

// Badges returns held badges in award order.
func (e *Engine) Badges() []model.Badge {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.Badge, len(e.badges))
	copy(out, e.badges)
	return out
}

// Events returns a copy of the retained event log, oldest first.
func (e *Engine) Events() []Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

// Subscribe registers a buffered channel that receives every future event.
// Slow subscribers drop events rather than block the engine.
func (e *Engine) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	e.mu.Lock()
	e.nextSubID++
	id := e.nextSubID
	e.subs[id] = ch
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
	return ch, cancel
}

// SubscriberCount returns the number of live subscribers.
func (e *Engine) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}

func (e *Engine) newEventLocked(typ string) Event {
	e.nextEventID++
	return Event{
		ID:        e.nextEventID,
		Type:      typ,
		Timestamp: e.cfg.Clock(),
		Progress:  e.progress.InexactFloat64(),
		Level:     levelOf(e.progress),
	}
}

func (e *Engine) publishEvent(ev Event) {
	e.mu.Lock()
	e.events = append(e.events, ev)
	if len(e.events) > e.cfg.EventsBuffer {
		e.events = e.events[len(e.events)-e.cfg.EventsBuffer:]
	}

	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	e.mu.Unlock()
}

func levelOf(p decimal.Decimal) int {
	return int(p.Mul(ten).Floor().IntPart())
}
