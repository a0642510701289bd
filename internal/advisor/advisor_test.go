package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestFallbackOrder(t *testing.T) {
	tests := []struct {
		prompt  string
		keyword string
	}{
		{"How should I start investing?", "invest"},
		{"What is the STOCK market?", "stock"},
		{"Should I budget before I invest?", "budget"},
		{"How do I save for a house?", "save"},
		{"Is my credit card debt bad?", "debt"},
		{"Tell me about taxes", "tax"},
		{"hello", ""},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			if got := FallbackKeyword(tt.prompt); got != tt.keyword {
				t.Fatalf("FallbackKeyword(%q) = %q, want %q", tt.prompt, got, tt.keyword)
			}
		})
	}

	if got := Fallback("hello"); got != DefaultAnswer {
		t.Fatalf("Fallback(no keyword) = %q, want default", got)
	}
	if got := Fallback("How should I start investing?"); !strings.HasPrefix(got, "Investing is how your money grows") {
		t.Fatalf("Fallback(investing) = %q", got)
	}
}

type stubGen struct {
	text  string
	err   error
	calls int
}

func (s *stubGen) Generate(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

type mapCache map[string]string

func (m mapCache) Get(sys, prompt string) (string, bool, error) {
	v, ok := m[sys+"|"+prompt]
	return v, ok, nil
}

func (m mapCache) Put(sys, prompt, text string) error {
	m[sys+"|"+prompt] = text
	return nil
}

func TestAskOffline(t *testing.T) {
	a := New(nil)
	r := a.Ask(context.Background(), "How do I budget?", "")
	if r.Source != SourceFallback {
		t.Fatalf("Source = %s, want fallback", r.Source)
	}
	if r.Warning != "" {
		t.Fatalf("offline reply should not warn, got %q", r.Warning)
	}
}

func TestAskModelFailureFallsBack(t *testing.T) {
	logger, hook := test.NewNullLogger()
	gen := &stubGen{err: errors.New("boom")}
	a := New(gen, WithLogger(logger))

	r := a.Ask(context.Background(), "How should I start investing?", "")
	if r.Source != SourceFallback || r.Warning != FallbackWarning {
		t.Fatalf("reply = %+v, want fallback with warning", r)
	}
	if !strings.HasPrefix(r.Text, "Investing is how") {
		t.Fatalf("Text = %q", r.Text)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatal("expected a warn log entry")
	}
}

func TestAskUsesCache(t *testing.T) {
	gen := &stubGen{text: "model says hi"}
	a := New(gen, WithCache(mapCache{}))

	first := a.Ask(context.Background(), "q", "sys")
	second := a.Ask(context.Background(), "q", "sys")

	if first.Source != SourceModel || second.Source != SourceCache {
		t.Fatalf("sources = %s, %s; want model, cache", first.Source, second.Source)
	}
	if second.Text != "model says hi" {
		t.Fatalf("cached text = %q", second.Text)
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
}

func TestAskValidSkipsRejectedReplies(t *testing.T) {
	errBad := errors.New("unusable")
	valid := func(text string) error {
		if text != "good" {
			return errBad
		}
		return nil
	}
	cache := mapCache{DefaultSystemPrompt + "|q": "stale"}
	gen := &stubGen{text: "bad"}
	a := New(gen, WithCache(cache))

	r := a.AskValid(context.Background(), "q", "", valid)
	if r.Source != SourceModel || r.Text != "bad" {
		t.Fatalf("reply = %+v, want model reply past the stale cache entry", r)
	}
	if cache[DefaultSystemPrompt+"|q"] != "stale" {
		t.Fatal("rejected reply was cached")
	}

	gen.text = "good"
	if r := a.AskValid(context.Background(), "q", "", valid); r.Text != "good" {
		t.Fatalf("reply = %+v", r)
	}
	if r := a.AskValid(context.Background(), "q", "", valid); r.Source != SourceCache {
		t.Fatalf("Source = %s, want cache after a valid reply", r.Source)
	}
	if gen.calls != 2 {
		t.Fatalf("calls = %d, want 2", gen.calls)
	}
}

func TestAnthropicClientNilOnEmptyKey(t *testing.T) {
	if c := NewAnthropicClient(ClientConfig{APIKey: "  "}); c != nil {
		t.Fatal("expected nil client for blank key")
	}
}

func TestAnthropicGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" || r.Method != http.MethodPost {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "k" || r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing auth headers")
		}
		body, _ := io.ReadAll(r.Body)
		var req messagesRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.System != "sys" || len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Hi "},{"type":"text","text":"there"}]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(ClientConfig{APIKey: "k", BaseURL: srv.URL})
	got, err := c.Generate(context.Background(), "hello", "sys")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Hi there" {
		t.Fatalf("text = %q, want %q", got, "Hi there")
	}
}

func TestAnthropicStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := NewAnthropicClient(ClientConfig{APIKey: "k", BaseURL: srv.URL})
		_, err := c.Generate(context.Background(), "p", "s")
		srv.Close()
		if !errors.Is(err, tt.want) {
			t.Fatalf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestAnthropicEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(ClientConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.Generate(context.Background(), "p", "s"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestPromptsIncludeFigures(t *testing.T) {
	p := Prompts{Currency: "₹"}
	got := p.Quiz("Stock Market Quiz")
	if !strings.Contains(got, "quiz about Stock Market.") {
		t.Fatalf("quiz prompt subject not trimmed: %q", got[:60])
	}
	if !strings.Contains(p.Tip("Budgeting Hacks"), "about Budgeting Hacks") {
		t.Fatal("tip prompt missing category")
	}
}
