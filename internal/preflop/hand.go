// Package preflop classifies the 169 canonical Texas Hold'em starting hands
// into strength tiers.
package preflop

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/lox/pokertrainer/internal/deck"
)

// ErrInvalidStartingHand reports an unknown rank or malformed notation.
var ErrInvalidStartingHand = errors.New("invalid starting hand")

// StartingHand is a canonical two-card hand. Suit identity is collapsed: only
// whether the two cards share a suit matters. Pairs are never suited.
type StartingHand struct {
	High   deck.Rank
	Low    deck.Rank
	Suited bool
}

// NewStartingHand canonicalizes two ranks into (high, low, suited).
func NewStartingHand(r1, r2 deck.Rank, suited bool) (StartingHand, error) {
	if !r1.Valid() || !r2.Valid() {
		return StartingHand{}, fmt.Errorf("%w: ranks %d and %d", ErrInvalidStartingHand, r1, r2)
	}
	if r2 > r1 {
		r1, r2 = r2, r1
	}
	if r1 == r2 {
		suited = false
	}
	return StartingHand{High: r1, Low: r2, Suited: suited}, nil
}

// FromCards builds the canonical hand for two hole cards.
func FromCards(c1, c2 deck.Card) (StartingHand, error) {
	if c1 == c2 {
		return StartingHand{}, fmt.Errorf("%w: duplicate card %s", ErrInvalidStartingHand, c1)
	}
	return NewStartingHand(c1.Rank, c2.Rank, c1.Suit == c2.Suit)
}

// ParseNotation parses "AKs", "QQ" or "72o". Ten may be written "T" or "10".
func ParseNotation(s string) (StartingHand, error) {
	n := strings.ReplaceAll(strings.TrimSpace(s), "10", "T")
	if len(n) != 2 && len(n) != 3 {
		return StartingHand{}, fmt.Errorf("%w: notation %q", ErrInvalidStartingHand, s)
	}

	r1, err := deck.ParseRank(n[0])
	if err != nil {
		return StartingHand{}, fmt.Errorf("%w: %v", ErrInvalidStartingHand, err)
	}
	r2, err := deck.ParseRank(n[1])
	if err != nil {
		return StartingHand{}, fmt.Errorf("%w: %v", ErrInvalidStartingHand, err)
	}

	if len(n) == 2 {
		if r1 != r2 {
			return StartingHand{}, fmt.Errorf("%w: %q needs an s or o suffix", ErrInvalidStartingHand, s)
		}
		return NewStartingHand(r1, r2, false)
	}

	if r1 == r2 {
		return StartingHand{}, fmt.Errorf("%w: pair %q cannot carry a suffix", ErrInvalidStartingHand, s)
	}
	switch n[2] {
	case 's', 'S':
		return NewStartingHand(r1, r2, true)
	case 'o', 'O':
		return NewStartingHand(r1, r2, false)
	default:
		return StartingHand{}, fmt.Errorf("%w: unknown suffix %q", ErrInvalidStartingHand, n[2])
	}
}

// IsPair reports whether both cards share a rank.
func (h StartingHand) IsPair() bool {
	return h.High == h.Low
}

// Notation returns standard notation (e.g., "AKs", "QQ", "72o").
func (h StartingHand) Notation() string {
	if h.IsPair() {
		return h.High.String() + h.Low.String()
	}
	suffix := "o"
	if h.Suited {
		suffix = "s"
	}
	return h.High.String() + h.Low.String() + suffix
}

// String implements fmt.Stringer
func (h StartingHand) String() string {
	return h.Notation()
}

// Deal picks concrete suits for the hand: one suit when suited, two different
// suits otherwise.
func (h StartingHand) Deal(rng *rand.Rand) []deck.Card {
	perm := rng.Perm(len(deck.Suits))
	first := deck.Suits[perm[0]]
	second := deck.Suits[perm[1]]
	if h.Suited {
		second = first
	}
	return []deck.Card{deck.NewCard(first, h.High), deck.NewCard(second, h.Low)}
}

// All returns the 169 canonical hands, strongest ranks first: for each high
// rank the pair, then suited and offsuit hands by descending low rank.
func All() []StartingHand {
	hands := make([]StartingHand, 0, NumHands)
	for hi := deck.Ace; hi >= deck.Two; hi-- {
		hands = append(hands, StartingHand{High: hi, Low: hi})
		for lo := hi - 1; lo >= deck.Two; lo-- {
			hands = append(hands,
				StartingHand{High: hi, Low: lo, Suited: true},
				StartingHand{High: hi, Low: lo, Suited: false},
			)
		}
	}
	return hands
}
