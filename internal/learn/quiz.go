package learn

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownLesson is returned for a lesson number out of range.
	ErrUnknownLesson = errors.New("unknown lesson")
	// ErrUnknownQuiz is returned for a quiz title that does not exist.
	ErrUnknownQuiz = errors.New("unknown quiz")
	// ErrAnswerCount is returned when answers do not match the questions.
	ErrAnswerCount = errors.New("answer count does not match question count")
	// ErrAnswerRange is returned for an answer that is not an option index.
	ErrAnswerRange = errors.New("answer is not one of the options")
)

// Question is one multiple-choice question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is a titled list of questions.
type Quiz struct {
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
}

// QuizParseError carries the raw model text that could not be parsed so it
// can be shown to the user.
type QuizParseError struct {
	Raw string
	Err error
}

func (e *QuizParseError) Error() string {
	return fmt.Sprintf("parsing quiz: %v", e.Err)
}

func (e *QuizParseError) Unwrap() error {
	return e.Err
}

// extractJSON returns the body of the first ```json fence, else the first
// plain ``` fence, else the whole text.
func extractJSON(raw string) string {
	if _, after, ok := strings.Cut(raw, "```json"); ok {
		body, _, _ := strings.Cut(after, "```")
		return body
	}
	if _, after, ok := strings.Cut(raw, "```"); ok {
		body, _, _ := strings.Cut(after, "```")
		return body
	}
	return raw
}

// wireQuiz mirrors Quiz with a pointer answer so a missing
// correct_answer is told apart from option 0.
type wireQuiz struct {
	Questions []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer *int     `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
	} `json:"questions"`
}

// ParseQuiz decodes a model reply into a quiz.
func ParseQuiz(raw string) (Quiz, error) {
	fail := func(err error) (Quiz, error) {
		return Quiz{}, &QuizParseError{Raw: raw, Err: err}
	}

	var w wireQuiz
	if err := json.Unmarshal([]byte(strings.TrimSpace(extractJSON(raw))), &w); err != nil {
		return fail(err)
	}
	if len(w.Questions) == 0 {
		return fail(errors.New("no questions"))
	}
	q := Quiz{Questions: make([]Question, 0, len(w.Questions))}
	for i, qu := range w.Questions {
		switch {
		case strings.TrimSpace(qu.Question) == "":
			return fail(fmt.Errorf("question %d is empty", i+1))
		case len(qu.Options) < 2:
			return fail(fmt.Errorf("question %d has %d options", i+1, len(qu.Options)))
		case qu.CorrectAnswer == nil:
			return fail(fmt.Errorf("question %d has no correct_answer", i+1))
		case *qu.CorrectAnswer < 0 || *qu.CorrectAnswer >= len(qu.Options):
			return fail(fmt.Errorf("question %d correct_answer %d out of range", i+1, *qu.CorrectAnswer))
		}
		q.Questions = append(q.Questions, Question{
			Question:      qu.Question,
			Options:       qu.Options,
			CorrectAnswer: *qu.CorrectAnswer,
			Explanation:   qu.Explanation,
		})
	}
	return q, nil
}

// Result is a graded quiz.
type Result struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	// Answers echoes the submitted option indexes.
	Answers []int `json:"answers"`
}

// Grade scores answers against the quiz. answers[i] is the chosen option
// index for question i.
func Grade(q Quiz, answers []int) (Result, error) {
	if len(answers) != len(q.Questions) {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrAnswerCount, len(answers), len(q.Questions))
	}
	for i, qu := range q.Questions {
		if answers[i] < 0 || answers[i] >= len(qu.Options) {
			return Result{}, fmt.Errorf("%w: question %d answer %d", ErrAnswerRange, i+1, answers[i])
		}
	}
	r := Result{Total: len(q.Questions), Answers: append([]int(nil), answers...)}
	for i, qu := range q.Questions {
		if answers[i] == qu.CorrectAnswer {
			r.Correct++
		}
	}
	r.Percentage = float64(r.Correct) / float64(r.Total) * 100
	return r, nil
}

// Message returns the headline shown for a result.
func (r Result) Message() string {
	switch {
	case r.Percentage >= 80:
		return fmt.Sprintf("🎉 Great job! You scored %d/%d (%.1f%%)", r.Correct, r.Total, r.Percentage)
	case r.Percentage >= 60:
		return fmt.Sprintf("👍 Not bad! You scored %d/%d (%.1f%%)", r.Correct, r.Total, r.Percentage)
	default:
		return fmt.Sprintf("📚 Keep learning! You scored %d/%d (%.1f%%)", r.Correct, r.Total, r.Percentage)
	}
}
