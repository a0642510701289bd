package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/afford"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/goals"
	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/model"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tips"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errMissingDate = errors.New("target_date is required (YYYY-MM-DD)")

type lineRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

type goalRequest struct {
	Name       string          `json:"name"`
	Target     decimal.Decimal `json:"target"`
	TargetDate string          `json:"target_date"`
	Initial    decimal.Decimal `json:"initial"`
}

type fundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type quizRequest struct {
	Title string `json:"title"`
}

type answersRequest struct {
	Answers []int `json:"answers"`
}

type affordRequest struct {
	Item        string          `json:"item"`
	Cost        decimal.Decimal `json:"cost"`
	Kind        string          `json:"kind"`
	Necessity   int             `json:"necessity"`
	Urgency     string          `json:"urgency"`
	RelatedGoal string          `json:"related_goal"`
}

type tipRequest struct {
	Category string `json:"category"`
}

type badgesResponse struct {
	Progress       float64                    `json:"progress"`
	Level          int                        `json:"level"`
	ProgressToNext float64                    `json:"progress_to_next"`
	Badges         []model.Badge              `json:"badges"`
	Achievements   []gamify.AchievementStatus `json:"achievements"`
}

type tipsInfo struct {
	Categories []string      `json:"categories"`
	Challenge  string        `json:"challenge"`
	Viewed     int           `json:"viewed"`
	Wisdom     []tips.Wisdom `json:"wisdom"`
}

type lessonsInfo struct {
	Topics            []learn.Topic            `json:"topics"`
	Quizzes           []string                 `json:"quizzes"`
	Progress          model.InvestmentProgress `json:"progress"`
	KnowledgeProgress float64                  `json:"knowledge_progress"`
	NextStep          string                   `json:"next_step"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	var st Status
	s.locked(func(*session.Session) { st = s.status() })
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	var snap session.Snapshot
	s.locked(func(sess *session.Session) { snap = sess.Snapshot() })
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAddIncome(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var (
		item model.IncomeItem
		err  error
	)
	s.locked(func(sess *session.Session) { item, err = sess.AddIncome(req.Name, req.Amount) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	cat, err := model.ParseCategory(req.Category)
	if err != nil {
		s.writeError(w, invalid(err))
		return
	}

	var item model.ExpenseItem
	s.locked(func(sess *session.Session) { item, err = sess.AddExpense(req.Name, cat, req.Amount) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleBudget(w http.ResponseWriter, _ *http.Request) {
	var out struct {
		Income   []model.IncomeItem  `json:"income"`
		Expenses []model.ExpenseItem `json:"expenses"`
		Summary  model.BudgetSummary `json:"summary"`
	}
	s.locked(func(sess *session.Session) {
		out.Income = sess.Income()
		out.Expenses = sess.Expenses()
		out.Summary = sess.Budget()
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBudgetAdvice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.llmContext(r)
	defer cancel()

	var (
		reply advisor.Reply
		err   error
	)
	s.locked(func(sess *session.Session) { reply, err = sess.BudgetAdvice(ctx) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleListGoals(w http.ResponseWriter, _ *http.Request) {
	var views []session.GoalView
	s.locked(func(sess *session.Session) { views = sess.Goals() })
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.TargetDate) == "" {
		s.writeError(w, invalid(errMissingDate))
		return
	}
	date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(req.TargetDate), time.Local)
	if err != nil {
		s.writeError(w, invalid(err))
		return
	}

	var g model.SavingsGoal
	s.locked(func(sess *session.Session) { g, err = sess.CreateGoal(req.Name, req.Target, date, req.Initial) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// goalID parses the {id} URL parameter. A malformed ID is reported as an
// unknown goal.
func goalID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, goals.ErrNotFound
	}
	return id, nil
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	id, err := goalID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var v session.GoalView
	s.locked(func(sess *session.Session) { v, err = sess.Goal(id) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := goalID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.locked(func(sess *session.Session) { err = sess.DeleteGoal(id) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFundGoal(w http.ResponseWriter, r *http.Request) {
	id, err := goalID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req fundsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var v session.GoalView
	s.locked(func(sess *session.Session) {
		if _, err = sess.FundGoal(id, req.Amount); err == nil {
			v, err = sess.Goal(id)
		}
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleGoalPace(w http.ResponseWriter, r *http.Request) {
	id, err := goalID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var pace goals.Pace
	s.locked(func(sess *session.Session) { pace, err = sess.GoalPace(id) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pace)
}

func (s *Server) handleGoalTips(w http.ResponseWriter, r *http.Request) {
	id, err := goalID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	var reply advisor.Reply
	s.locked(func(sess *session.Session) { reply, err = sess.GoalTips(ctx, id) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleHealthScore(w http.ResponseWriter, _ *http.Request) {
	var rep session.HealthReport
	s.locked(func(sess *session.Session) { rep = sess.CalculateHealth() })
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleImprovementPlan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.llmContext(r)
	defer cancel()

	var (
		reply advisor.Reply
		err   error
	)
	s.locked(func(sess *session.Session) { reply, err = sess.ImprovementPlan(ctx) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, _ *http.Request) {
	var h []session.ChatMessage
	s.locked(func(sess *session.Session) { h = sess.History() })
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	var (
		reply session.ChatReply
		err   error
	)
	s.locked(func(sess *session.Session) { reply, err = sess.Ask(ctx, req.Message) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleLessons(w http.ResponseWriter, _ *http.Request) {
	info := lessonsInfo{Topics: learn.Topics(), Quizzes: learn.QuizTitles()}
	s.locked(func(sess *session.Session) {
		info.Progress = sess.Investment()
		info.KnowledgeProgress = sess.KnowledgeProgress()
		info.NextStep = sess.NextStep()
	})
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		s.writeError(w, invalid(learn.ErrUnknownLesson))
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	var lesson session.Lesson
	s.locked(func(sess *session.Session) { lesson, err = sess.CompleteLesson(ctx, n) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	var (
		q   learn.Quiz
		err error
	)
	s.locked(func(sess *session.Session) { q, err = sess.StartQuiz(ctx, req.Title) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var (
		res session.QuizResult
		err error
	)
	s.locked(func(sess *session.Session) { res, err = sess.SubmitQuiz(req.Answers) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAfford(w http.ResponseWriter, r *http.Request) {
	var req affordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	kind := afford.OneTime
	if req.Kind != "" {
		k, err := afford.ParseKind(req.Kind)
		if err != nil {
			s.writeError(w, invalid(err))
			return
		}
		kind = k
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	var (
		res session.AffordResult
		err error
	)
	s.locked(func(sess *session.Session) {
		res, err = sess.Afford(ctx, session.AffordRequest{
			Item:        req.Item,
			Cost:        req.Cost,
			Kind:        kind,
			Necessity:   req.Necessity,
			Urgency:     req.Urgency,
			RelatedGoal: req.RelatedGoal,
		})
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTipsInfo(w http.ResponseWriter, _ *http.Request) {
	info := tipsInfo{Categories: tips.Categories(), Wisdom: tips.WisdomCollections()}
	s.locked(func(sess *session.Session) {
		info.Challenge = sess.Challenge()
		info.Viewed = sess.TipsViewed()
	})
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleTip(w http.ResponseWriter, r *http.Request) {
	var req tipRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	var (
		res session.TipResult
		err error
	)
	s.locked(func(sess *session.Session) { res, err = sess.Tip(ctx, req.Category) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleChallenge(w http.ResponseWriter, _ *http.Request) {
	var msg string
	s.locked(func(sess *session.Session) { msg = sess.CompleteChallenge() })
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (s *Server) handleBadges(w http.ResponseWriter, _ *http.Request) {
	var out badgesResponse
	s.locked(func(sess *session.Session) {
		eng := sess.Engine()
		out.Progress = eng.Progress()
		out.Level = eng.Level()
		out.ProgressToNext = eng.ProgressToNext()
		out.Badges = eng.Badges()
		out.Achievements = gamify.Achievements(out.Badges)
	})
	writeJSON(w, http.StatusOK, out)
}
