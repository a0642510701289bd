package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/store"
)

type replyGen string

func (g replyGen) Generate(context.Context, string, string) (string, error) {
	return string(g), nil
}

func newTestServer(t *testing.T, gen advisor.Generator) *Server {
	t.Helper()
	sess := session.New(session.Config{
		Advisor:  advisor.New(gen),
		Currency: "$",
		Clock:    func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local) },
	})
	return New(sess, Config{LLMTimeout: time.Second})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestLineItemStatusCodes(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"income ok", "/v1/income", `{"name":"Salary","amount":3000}`, http.StatusCreated},
		{"income string amount", "/v1/income", `{"name":"Tips","amount":"12.50"}`, http.StatusCreated},
		{"negative amount", "/v1/income", `{"name":"Salary","amount":-1}`, http.StatusUnprocessableEntity},
		{"blank name", "/v1/income", `{"name":" ","amount":1}`, http.StatusUnprocessableEntity},
		{"malformed", "/v1/income", `{"name":`, http.StatusBadRequest},
		{"unknown field", "/v1/income", `{"nam":"x","amount":1}`, http.StatusBadRequest},
		{"expense ok", "/v1/expenses", `{"name":"Rent","category":"Housing","amount":1000}`, http.StatusCreated},
		{"expense default category", "/v1/expenses", `{"name":"Misc","amount":5}`, http.StatusCreated},
		{"unknown category", "/v1/expenses", `{"name":"Boat","category":"Yachts","amount":5}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, h, http.MethodPost, tt.path, tt.body); rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	rec := do(t, h, http.MethodGet, "/v1/budget", "")
	var out struct {
		Summary struct {
			Balance string `json:"balance"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode budget: %v", err)
	}
	if out.Summary.Balance != "2007.5" {
		t.Fatalf("balance = %q, want 2007.5", out.Summary.Balance)
	}
}

func TestBudgetAdviceNeedsBudget(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	if rec := do(t, h, http.MethodPost, "/v1/budget/advice", ""); rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	do(t, h, http.MethodPost, "/v1/income", `{"name":"Salary","amount":3000}`)
	do(t, h, http.MethodPost, "/v1/expenses", `{"name":"Rent","category":"Housing","amount":1000}`)

	rec := do(t, h, http.MethodPost, "/v1/budget/advice", "")
	reply := decode[advisor.Reply](t, rec)
	if rec.Code != http.StatusOK || reply.Source != advisor.SourceFallback {
		t.Fatalf("advice = %d %+v", rec.Code, reply)
	}
}

func TestGoalLifecycle(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	rec := do(t, h, http.MethodPost, "/v1/goals", `{"name":"Laptop","target":1000,"target_date":"2026-09-02","initial":900}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body.String())
	}
	g := decode[struct {
		ID string `json:"id"`
	}](t, rec)

	rec = do(t, h, http.MethodGet, "/v1/goals/"+g.ID+"/pace", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("pace = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/v1/goals/"+g.ID+"/funds", `{"amount":600}`)
	view := decode[session.GoalView](t, rec)
	if rec.Code != http.StatusOK || !view.Completed || view.ProgressPercent != 100 {
		t.Fatalf("fund = %d %+v", rec.Code, view)
	}

	if rec := do(t, h, http.MethodDelete, "/v1/goals/"+g.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/v1/goals/"+g.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/v1/goals/not-a-uuid", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("bad id = %d, want 404", rec.Code)
	}

	list := decode[[]session.GoalView](t, do(t, h, http.MethodGet, "/v1/goals", ""))
	if len(list) != 0 {
		t.Fatalf("goals after delete = %d", len(list))
	}
}

func TestGoalValidation(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	tests := []struct {
		name string
		body string
	}{
		{"missing date", `{"name":"Car","target":100}`},
		{"bad date", `{"name":"Car","target":100,"target_date":"next year"}`},
		{"zero target", `{"name":"Car","target":0,"target_date":"2027-01-01"}`},
		{"blank name", `{"name":"","target":10,"target_date":"2027-01-01"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, h, http.MethodPost, "/v1/goals", tt.body); rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422 (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestOfflineQuizOverHTTP(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	if rec := do(t, h, http.MethodPost, "/v1/quiz/answers", `{"answers":[0]}`); rec.Code != http.StatusConflict {
		t.Fatalf("submit without quiz = %d, want 409", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/v1/quiz", `{"title":"Poker Quiz"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown quiz = %d, want 422", rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/v1/quiz", `{"title":"Investing Basics Quiz"}`)
	q := decode[learn.Quiz](t, rec)
	if rec.Code != http.StatusOK || len(q.Questions) == 0 {
		t.Fatalf("start = %d %+v", rec.Code, q)
	}

	if rec := do(t, h, http.MethodPost, "/v1/quiz/answers", `{"answers":[0]}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("short answers = %d, want 422", rec.Code)
	}

	answers := make([]int, len(q.Questions))
	for i, qu := range q.Questions {
		answers[i] = qu.CorrectAnswer
	}
	body, _ := json.Marshal(map[string][]int{"answers": answers})
	rec = do(t, h, http.MethodPost, "/v1/quiz/answers", string(body))
	res := decode[session.QuizResult](t, rec)
	if rec.Code != http.StatusOK || res.Percentage != 100 {
		t.Fatalf("submit = %d %+v", rec.Code, res)
	}
}

func TestQuizParseErrorIsBadGateway(t *testing.T) {
	h := newTestServer(t, replyGen("no quiz today")).Handler()

	rec := do(t, h, http.MethodPost, "/v1/quiz", `{"title":"Stock Market Quiz"}`)
	body := decode[errorBody](t, rec)
	if rec.Code != http.StatusBadGateway || body.Raw != "no quiz today" {
		t.Fatalf("parse failure = %d %+v", rec.Code, body)
	}
}

func TestLessonRoute(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	if rec := do(t, h, http.MethodPost, "/v1/lessons/1", ""); rec.Code != http.StatusOK {
		t.Fatalf("lesson 1 = %d", rec.Code)
	}
	for _, n := range []string{"0", "x", "6"} {
		if rec := do(t, h, http.MethodPost, "/v1/lessons/"+n, ""); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("lesson %s = %d, want 422", n, rec.Code)
		}
	}
}

func TestBadgesAndEvents(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	do(t, h, http.MethodPost, "/v1/chat", `{"message":"How should I budget?"}`)

	badges := decode[badgesResponse](t, do(t, h, http.MethodGet, "/v1/badges", ""))
	if len(badges.Badges) != 1 || badges.Badges[0].Name != gamify.BadgeBudgetExplorer {
		t.Fatalf("badges = %+v", badges.Badges)
	}
	if len(badges.Achievements) != len(gamify.Catalog()) {
		t.Fatalf("achievements = %d", len(badges.Achievements))
	}

	events := decode[[]gamify.Event](t, do(t, h, http.MethodGet, "/v1/events", ""))
	if len(events) != 2 || events[0].Type != gamify.EventBadgeAwarded || events[1].Type != gamify.EventProgress {
		t.Fatalf("events = %+v", events)
	}
}

func TestStreamDeliversEvents(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/stream", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	lines := bufio.NewScanner(resp.Body)
	nextEvent := func() string {
		for lines.Scan() {
			if name, ok := strings.CutPrefix(lines.Text(), "event: "); ok {
				return name
			}
		}
		t.Fatalf("stream ended: %v", lines.Err())
		return ""
	}

	if got := nextEvent(); got != EventSnapshot {
		t.Fatalf("first event = %q, want snapshot", got)
	}

	post, err := http.Post(ts.URL+"/v1/challenge", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	_ = post.Body.Close()

	if got := nextEvent(); got != gamify.EventBadgeAwarded {
		t.Fatalf("event = %q, want badge_awarded", got)
	}
}

func TestCachedRepliesAcrossRequests(t *testing.T) {
	cache, err := store.Open(t.TempDir() + "/advice.db")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer cache.Close()

	sess := session.New(session.Config{
		Advisor: advisor.New(replyGen("Spend less than you earn."), advisor.WithCache(cache.Scoped("test", 0))),
	})
	h := New(sess, Config{}).Handler()

	first := decode[session.ChatReply](t, do(t, h, http.MethodPost, "/v1/chat", `{"message":"hello"}`))
	second := decode[session.ChatReply](t, do(t, h, http.MethodPost, "/v1/chat", `{"message":"hello"}`))
	if first.Source != advisor.SourceModel || second.Source != advisor.SourceCache {
		t.Fatalf("sources = %s then %s", first.Source, second.Source)
	}
}
