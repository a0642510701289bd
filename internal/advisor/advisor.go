// Package advisor produces educational text from a language model, with a
// static keyword fallback whenever the model is unavailable or fails.
package advisor

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Generator produces text for a prompt under a system prompt.
type Generator interface {
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// Cache stores generated replies keyed by prompt pair.
type Cache interface {
	Get(systemPrompt, prompt string) (string, bool, error)
	Put(systemPrompt, prompt, text string) error
}

// Source tells where a reply came from.
type Source string

// Reply sources.
const (
	SourceModel    Source = "model"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// FallbackWarning is shown to the user when a model call failed.
const FallbackWarning = "API Error: Using static financial advice instead."

// Reply is the text returned by Ask.
type Reply struct {
	Text    string `json:"text"`
	Source  Source `json:"source"`
	Warning string `json:"warning,omitempty"`
}

// Advisor answers prompts. A nil Generator always uses the fallback.
type Advisor struct {
	gen   Generator
	cache Cache
	log   logrus.FieldLogger
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithCache enables the reply cache.
func WithCache(c Cache) Option {
	return func(a *Advisor) { a.cache = c }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Advisor) { a.log = l }
}

// New creates an advisor. gen may be nil for offline use.
func New(gen Generator, opts ...Option) *Advisor {
	a := &Advisor{gen: gen}
	for _, o := range opts {
		o(a)
	}
	if a.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		a.log = l
	}
	return a
}

// Online reports whether a model generator is configured.
func (a *Advisor) Online() bool {
	return a != nil && a.gen != nil
}

// Ask returns a reply for prompt. Errors never escape: any model failure
// collapses into the static fallback with a warning.
func (a *Advisor) Ask(ctx context.Context, prompt, systemPrompt string) Reply {
	return a.AskValid(ctx, prompt, systemPrompt, nil)
}

// AskValid is Ask for replies the caller must be able to use, such as
// structured quiz JSON. A cached reply that fails valid is ignored and the
// model asked again; a model reply that fails valid is returned but never
// cached, so the next attempt reaches the model.
func (a *Advisor) AskValid(ctx context.Context, prompt, systemPrompt string, valid func(string) error) Reply {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if !a.Online() {
		return Reply{Text: Fallback(prompt), Source: SourceFallback}
	}

	if a.cache != nil {
		text, ok, err := a.cache.Get(systemPrompt, prompt)
		switch {
		case err != nil:
			a.log.WithError(err).Warn("advice cache read failed")
		case ok && valid != nil && valid(text) != nil:
			a.log.Debug("ignoring unusable cached reply")
		case ok:
			return Reply{Text: text, Source: SourceCache}
		}
	}

	text, err := a.gen.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		a.log.WithError(err).WithField("keyword", FallbackKeyword(prompt)).Warn("model call failed, using static advice")
		return Reply{Text: Fallback(prompt), Source: SourceFallback, Warning: FallbackWarning}
	}

	if valid != nil {
		if err := valid(text); err != nil {
			a.log.WithError(err).Warn("model reply rejected, not caching")
			return Reply{Text: text, Source: SourceModel}
		}
	}
	if a.cache != nil {
		if err := a.cache.Put(systemPrompt, prompt, text); err != nil {
			a.log.WithError(err).Warn("advice cache write failed")
		}
	}
	return Reply{Text: text, Source: SourceModel}
}
