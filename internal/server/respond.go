package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/theirongolddev/finbuddy/internal/goals"
	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/session"
)

const maxBodySize = 1 << 20

var errMalformed = errors.New("malformed JSON body")

type errorBody struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errMalformed, err)
	}
	return nil
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var parseErr *learn.QuizParseError
	switch {
	case errors.Is(err, errMalformed):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, goals.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoBudget),
		errors.Is(err, session.ErrNoActiveQuiz),
		errors.Is(err, session.ErrNoHealthScore),
		errors.Is(err, goals.ErrOverdue):
		return http.StatusConflict
	case errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}

	var parseErr *learn.QuizParseError
	if errors.As(err, &parseErr) {
		body.Raw = parseErr.Raw
	}
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, body)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", session.ErrInvalidInput, err)
}
