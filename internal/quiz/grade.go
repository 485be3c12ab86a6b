package quiz

import (
	"strings"

	"github.com/lox/pokertrainer/internal/evaluator"
)

// Result is the outcome of grading one answer.
type Result struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Grade checks answer against the server-held question. Matching ignores
// case and surrounding whitespace; hand-ranking answers also accept category
// aliases such as "One Pair".
func Grade(q Question, answer string) Result {
	answer = strings.TrimSpace(answer)
	if q.Topic == HandRanking {
		if c, ok := evaluator.ParseCategory(answer); ok {
			answer = c.String()
		}
	}
	return Result{
		Correct:       strings.EqualFold(answer, q.Answer),
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
	}
}
