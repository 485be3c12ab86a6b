package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lox/pokertrainer/internal/evaluator"
	"github.com/lox/pokertrainer/internal/preflop"
	"github.com/lox/pokertrainer/internal/quiz"
)

// errBadRequest marks malformed requests caught by the handlers themselves.
var errBadRequest = errors.New("bad request")

const newQuestionMessage = "question expired or unknown, please request a new question"

// statusFor maps an error to its HTTP status and the message shown to the
// client. Internal errors are not echoed.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, quiz.ErrUnknownQuestion):
		return http.StatusGone, newQuestionMessage
	case errors.Is(err, errBadRequest),
		errors.Is(err, quiz.ErrUnknownTopic),
		errors.Is(err, quiz.ErrInvalidDifficulty),
		errors.Is(err, evaluator.ErrInvalidHand),
		errors.Is(err, preflop.ErrInvalidStartingHand):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // client went away
}
