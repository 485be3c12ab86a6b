package evaluator

import "github.com/lox/pokertrainer/internal/deck"

// Outcome is the result of comparing two hands.
type Outcome int

const (
	Tie Outcome = iota
	AWins
	BWins
)

// String returns a readable outcome
func (o Outcome) String() string {
	switch o {
	case AWins:
		return "A wins"
	case BWins:
		return "B wins"
	default:
		return "Tie"
	}
}

// CompareKeys decides the winner between two evaluated hands.
func CompareKeys(a, b StrengthKey) Outcome {
	switch a.Compare(b) {
	case 1:
		return AWins
	case -1:
		return BWins
	default:
		return Tie
	}
}

// Compare evaluates both hands and reports which one wins. Ties are a
// legitimate result, e.g. two identical straights in different suits.
func Compare(a, b []deck.Card) (Outcome, error) {
	ka, err := Evaluate(a)
	if err != nil {
		return Tie, err
	}
	kb, err := Evaluate(b)
	if err != nil {
		return Tie, err
	}
	return CompareKeys(ka, kb), nil
}

// Decider returns the first pair of tiebreak ranks that differ between two
// keys of the same category. ok is false when the categories differ or the
// hands tie.
func Decider(a, b StrengthKey) (ra, rb deck.Rank, ok bool) {
	if a.Category != b.Category {
		return 0, 0, false
	}
	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if a.Tiebreak[i] != b.Tiebreak[i] {
			return a.Tiebreak[i], b.Tiebreak[i], true
		}
	}
	return 0, 0, false
}
