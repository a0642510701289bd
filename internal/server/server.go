// Package server exposes a finbuddy session over a JSON HTTP API with a
// Server-Sent-Events stream of gamification events.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/finbuddy/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr string
	// LLMTimeout bounds each request that calls the advisor. Zero means no
	// deadline beyond the request context.
	LLMTimeout time.Duration
	Logger     logrus.FieldLogger
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Online          bool      `json:"online"`
	Progress        float64   `json:"progress"`
	Level           int       `json:"level"`
	Badges          int       `json:"badges"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Server serves one session. Handlers run concurrently; every session call
// is serialized by mu.
type Server struct {
	cfg       Config
	log       logrus.FieldLogger
	startedAt time.Time

	mu   sync.Mutex
	sess *session.Session
}

// New returns a server for sess.
func New(sess *session.Session, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		cfg.Logger = l
	}
	return &Server{
		cfg:       cfg,
		log:       cfg.Logger.WithField("component", "server"),
		startedAt: time.Now(),
		sess:      sess,
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/session", s.handleSession)

		r.Post("/income", s.handleAddIncome)
		r.Post("/expenses", s.handleAddExpense)
		r.Get("/budget", s.handleBudget)
		r.Post("/budget/advice", s.handleBudgetAdvice)

		r.Get("/goals", s.handleListGoals)
		r.Post("/goals", s.handleCreateGoal)
		r.Get("/goals/{id}", s.handleGetGoal)
		r.Delete("/goals/{id}", s.handleDeleteGoal)
		r.Post("/goals/{id}/funds", s.handleFundGoal)
		r.Get("/goals/{id}/pace", s.handleGoalPace)
		r.Post("/goals/{id}/tips", s.handleGoalTips)

		r.Post("/health", s.handleHealthScore)
		r.Post("/health/plan", s.handleImprovementPlan)

		r.Get("/chat", s.handleChatHistory)
		r.Post("/chat", s.handleChat)

		r.Get("/lessons", s.handleLessons)
		r.Post("/lessons/{n}", s.handleLesson)
		r.Post("/quiz", s.handleStartQuiz)
		r.Post("/quiz/answers", s.handleSubmitQuiz)

		r.Post("/afford", s.handleAfford)

		r.Get("/tips", s.handleTipsInfo)
		r.Post("/tips", s.handleTip)
		r.Post("/challenge", s.handleChallenge)

		r.Get("/badges", s.handleBadges)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
	return r
}

// Run serves the API until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// locked runs fn with exclusive access to the session.
func (s *Server) locked(fn func(*session.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.sess)
}

// llmContext derives the context for a request that may call the model.
func (s *Server) llmContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.cfg.LLMTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.cfg.LLMTimeout)
}

func (s *Server) status() Status {
	eng := s.sess.Engine()
	return Status{
		StartedAt:       s.startedAt,
		Online:          s.sess.Online(),
		Progress:        eng.Progress(),
		Level:           eng.Level(),
		Badges:          len(eng.Badges()),
		EventCount:      len(eng.Events()),
		SubscriberCount: eng.SubscriberCount(),
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}
