// Package evaluator classifies five-card poker hands and orders them by
// strength.
package evaluator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/pokertrainer/internal/deck"
)

// HandSize is the number of cards in an evaluated hand.
const HandSize = 5

// ErrInvalidHand reports malformed input: wrong cardinality, duplicate cards
// or cards outside the 52-card deck.
var ErrInvalidHand = errors.New("invalid hand")

// StrengthKey totally orders five-card hands: category first, then the
// category-specific tiebreak ranks compared lexicographically.
type StrengthKey struct {
	Category Category
	// Tiebreak holds rank groups in descending significance, e.g. Two Pair is
	// [high pair, low pair, kicker] and a wheel straight is [Five].
	Tiebreak []deck.Rank
}

// Compare returns 1 if k is stronger, -1 if weaker and 0 if equal.
func (k StrengthKey) Compare(other StrengthKey) int {
	if k.Category != other.Category {
		if k.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(k.Tiebreak) && i < len(other.Tiebreak); i++ {
		if k.Tiebreak[i] > other.Tiebreak[i] {
			return 1
		}
		if k.Tiebreak[i] < other.Tiebreak[i] {
			return -1
		}
	}
	return 0
}

// Equal reports whether two keys describe equally strong hands.
func (k StrengthKey) Equal(other StrengthKey) bool {
	return k.Compare(other) == 0
}

// High returns the most significant tiebreak rank.
func (k StrengthKey) High() deck.Rank {
	if len(k.Tiebreak) == 0 {
		return 0
	}
	return k.Tiebreak[0]
}

// Describe renders the key in words, e.g. "Full House, Queens full of Fours".
func (k StrengthKey) Describe() string {
	tb := k.Tiebreak
	at := func(i int) deck.Rank {
		if i < len(tb) {
			return tb[i]
		}
		return 0
	}

	switch k.Category {
	case HighCard:
		return fmt.Sprintf("High Card, %s high", at(0).Name())
	case Pair:
		return fmt.Sprintf("Pair of %s", at(0).Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", at(0).Plural(), at(1).Plural())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", at(0).Plural())
	case Straight:
		return fmt.Sprintf("Straight, %s high", at(0).Name())
	case Flush:
		return fmt.Sprintf("Flush, %s high", at(0).Name())
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", at(0).Plural(), at(1).Plural())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", at(0).Plural())
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", at(0).Name())
	case RoyalFlush:
		return "Royal Flush"
	default:
		return k.Category.String()
	}
}

// String formats the key as "Category [A K 9 ...]".
func (k StrengthKey) String() string {
	parts := make([]string, len(k.Tiebreak))
	for i, r := range k.Tiebreak {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%s [%s]", k.Category, strings.Join(parts, " "))
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// shape is the rank/suit summary every rule is evaluated against.
type shape struct {
	groups       []rankGroup // by count desc, then rank desc
	flush        bool
	straightHigh deck.Rank // zero when the ranks do not form a run
}

func (s *shape) count(i int) int {
	if i < len(s.groups) {
		return s.groups[i].count
	}
	return 0
}

func (s *shape) groupRanks() []deck.Rank {
	out := make([]deck.Rank, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.rank
	}
	return out
}

func (s *shape) runHigh() []deck.Rank {
	return []deck.Rank{s.straightHigh}
}

// rule maps a predicate over the hand shape to a category. Rules are checked
// top-down and the first match wins, so order is precedence.
type rule struct {
	category Category
	matches  func(s *shape) bool
	tiebreak func(s *shape) []deck.Rank
}

var rules = []rule{
	{RoyalFlush, func(s *shape) bool { return s.flush && s.straightHigh == deck.Ace }, (*shape).runHigh},
	{StraightFlush, func(s *shape) bool { return s.flush && s.straightHigh != 0 }, (*shape).runHigh},
	{FourOfAKind, func(s *shape) bool { return s.count(0) == 4 }, (*shape).groupRanks},
	{FullHouse, func(s *shape) bool { return s.count(0) == 3 && s.count(1) == 2 }, (*shape).groupRanks},
	{Flush, func(s *shape) bool { return s.flush }, (*shape).groupRanks},
	{Straight, func(s *shape) bool { return s.straightHigh != 0 }, (*shape).runHigh},
	{ThreeOfAKind, func(s *shape) bool { return s.count(0) == 3 }, (*shape).groupRanks},
	{TwoPair, func(s *shape) bool { return s.count(0) == 2 && s.count(1) == 2 }, (*shape).groupRanks},
	{Pair, func(s *shape) bool { return s.count(0) == 2 }, (*shape).groupRanks},
	{HighCard, func(*shape) bool { return true }, (*shape).groupRanks},
}

// Evaluate classifies exactly five distinct cards. It is pure and total over
// valid input; malformed input fails with ErrInvalidHand.
func Evaluate(cards []deck.Card) (StrengthKey, error) {
	if err := validate(cards); err != nil {
		return StrengthKey{}, err
	}

	s := newShape(cards)
	for _, r := range rules {
		if r.matches(s) {
			return StrengthKey{Category: r.category, Tiebreak: r.tiebreak(s)}, nil
		}
	}
	// unreachable: the HighCard rule always matches
	return StrengthKey{}, fmt.Errorf("%w: no rule matched", ErrInvalidHand)
}

// MustEvaluate evaluates cards and panics on error (for tests)
func MustEvaluate(cards []deck.Card) StrengthKey {
	key, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return key
}

func validate(cards []deck.Card) error {
	if len(cards) != HandSize {
		return fmt.Errorf("%w: expected %d cards, got %d", ErrInvalidHand, HandSize, len(cards))
	}
	var seen [52]bool
	for _, c := range cards {
		idx := c.Index()
		if idx < 0 {
			return fmt.Errorf("%w: card %v is not in the deck", ErrInvalidHand, c)
		}
		if seen[idx] {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		seen[idx] = true
	}
	return nil
}

func newShape(cards []deck.Card) *shape {
	var counts [deck.Ace + 1]int
	suit := cards[0].Suit
	flush := true
	for _, c := range cards {
		counts[c.Rank]++
		if c.Suit != suit {
			flush = false
		}
	}

	s := &shape{flush: flush}
	for r := deck.Ace; r >= deck.Two; r-- {
		if counts[r] > 0 {
			s.groups = append(s.groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	// stable sort keeps the descending rank order within equal counts
	slices.SortStableFunc(s.groups, func(a, b rankGroup) int {
		return b.count - a.count
	})

	if len(s.groups) == HandSize {
		high, low := s.groups[0].rank, s.groups[HandSize-1].rank
		switch {
		case high-low == 4:
			s.straightHigh = high
		case high == deck.Ace && s.groups[1].rank == deck.Five:
			// wheel: the ace plays low, so the run is five-high
			s.straightHigh = deck.Five
		}
	}
	return s
}
