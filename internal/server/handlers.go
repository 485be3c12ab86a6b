package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lox/pokertrainer/internal/evaluator"
	"github.com/lox/pokertrainer/internal/preflop"
	"github.com/lox/pokertrainer/internal/quiz"
)

const maxBodyBytes = 1 << 16

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rankings": evaluator.Rankings()})
}

func (s *Server) handleStartingHands(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("position")
	pos, err := preflop.ParsePosition(raw)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if raw == "" {
		pos = ""
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hands":      preflop.Chart(pos),
		"categories": preflop.Legend(),
		"position":   pos,
	})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"types": quiz.TopicInfos()})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	difficulty := 0
	if raw := query.Get("difficulty"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: difficulty must be a number", errBadRequest))
			return
		}
		difficulty = d
	}

	q, err := s.trainer.NextQuestion(r.Context(), s.userID(r), query.Get("question_type"), difficulty)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questionView(q))
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err))
		return
	}
	if req.QuestionID == "" {
		s.writeError(w, r, fmt.Errorf("%w: question_id is required", errBadRequest))
		return
	}

	res, err := s.trainer.SubmitAnswer(r.Context(), s.userID(r), req.QuestionID, req.Answer,
		time.Duration(req.ResponseTimeMS)*time.Millisecond)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.trainer.Stats(r.Context(), s.userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.trainer.Reset(r.Context(), s.userID(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ResetResponse{Success: true, Message: "Statistics reset successfully"})
}
