package server

import (
	"github.com/lox/pokertrainer/internal/deck"
	"github.com/lox/pokertrainer/internal/quiz"
)

// CardView is a card as the front end draws it.
type CardView struct {
	Rank     string `json:"rank"`
	Suit     string `json:"suit"`
	Display  string `json:"display"`
	Notation string `json:"notation"`
	Red      bool   `json:"red"`
}

func cardViews(cards []deck.Card) []CardView {
	if cards == nil {
		return nil
	}
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = CardView{
			Rank:     c.Rank.Symbol(),
			Suit:     c.Suit.String(),
			Display:  c.String(),
			Notation: c.Notation(),
			Red:      c.IsRed(),
		}
	}
	return out
}

// QuestionView is an issued question without its answer.
type QuestionView struct {
	QuestionID   string     `json:"question_id"`
	QuestionType quiz.Topic `json:"question_type"`
	Prompt       string     `json:"prompt"`
	Cards        []CardView `json:"cards"`
	Cards2       []CardView `json:"cards2,omitempty"`
	Choices      []string   `json:"choices"`
	Difficulty   int        `json:"difficulty"`
	Notation     string     `json:"notation,omitempty"`
}

func questionView(q quiz.Question) QuestionView {
	return QuestionView{
		QuestionID:   q.ID,
		QuestionType: q.Topic,
		Prompt:       q.Prompt,
		Cards:        cardViews(q.Cards),
		Cards2:       cardViews(q.Cards2),
		Choices:      q.Choices,
		Difficulty:   q.Difficulty,
		Notation:     q.Notation,
	}
}

// AnswerRequest is the body of POST /api/training/answer. Only the id and
// answer are used for grading; any scenario data the client echoes is
// ignored.
type AnswerRequest struct {
	QuestionID     string `json:"question_id"`
	QuestionType   string `json:"question_type,omitempty"`
	Answer         string `json:"answer"`
	ResponseTimeMS int64  `json:"response_time_ms,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ResetResponse confirms a statistics reset.
type ResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DrillMessageType tags drill socket frames.
type DrillMessageType string

const (
	DrillNext     DrillMessageType = "next"
	DrillAnswer   DrillMessageType = "answer"
	DrillQuestion DrillMessageType = "question"
	DrillResult   DrillMessageType = "result"
	DrillError    DrillMessageType = "error"
)

// DrillRequest is a client frame on the drill socket.
type DrillRequest struct {
	Type           DrillMessageType `json:"type"`
	QuestionType   string           `json:"question_type,omitempty"`
	Difficulty     int              `json:"difficulty,omitempty"`
	QuestionID     string           `json:"question_id,omitempty"`
	Answer         string           `json:"answer,omitempty"`
	ResponseTimeMS int64            `json:"response_time_ms,omitempty"`
}

// DrillResponse is a server frame on the drill socket. Exactly one payload
// field is set, matching Type.
type DrillResponse struct {
	Type     DrillMessageType `json:"type"`
	Question *QuestionView    `json:"question,omitempty"`
	Result   any              `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}
