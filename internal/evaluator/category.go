package evaluator

import "strings"

// Category is the class of a five-card hand, ordered weakest to strongest.
// The ordinal value is the primary comparison key.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// NumCategories is the number of hand categories.
const NumCategories = 10

// Categories returns every category from weakest to strongest.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Description explains what makes a hand belong to the category.
func (c Category) Description() string {
	switch c {
	case HighCard:
		return "No matching cards. Highest card plays."
	case Pair:
		return "Two cards of the same rank."
	case TwoPair:
		return "Two different pairs."
	case ThreeOfAKind:
		return "Three cards of the same rank."
	case Straight:
		return "Five consecutive cards of mixed suits."
	case Flush:
		return "Five cards of the same suit."
	case FullHouse:
		return "Three of a kind plus a pair."
	case FourOfAKind:
		return "Four cards of the same rank."
	case StraightFlush:
		return "Five consecutive cards of the same suit."
	case RoyalFlush:
		return "A, K, Q, J, 10 all of the same suit."
	default:
		return ""
	}
}

// Example returns a sample hand of the category in card notation.
func (c Category) Example() string {
	switch c {
	case HighCard:
		return "Ah Kd 9c 7s 2h"
	case Pair:
		return "Ah Ad Kc 7s 2h"
	case TwoPair:
		return "Ah Ad Kc Ks 2h"
	case ThreeOfAKind:
		return "Ah Ad Ac Ks 2h"
	case Straight:
		return "9h 8d 7c 6s 5h"
	case Flush:
		return "Ah Kh 9h 7h 2h"
	case FullHouse:
		return "Ah Ad Ac Ks Kh"
	case FourOfAKind:
		return "Ah Ad Ac As Kh"
	case StraightFlush:
		return "9h 8h 7h 6h 5h"
	case RoyalFlush:
		return "Ah Kh Qh Jh Th"
	default:
		return ""
	}
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	return c >= HighCard && c <= RoyalFlush
}

// ParseCategory resolves a category name case-insensitively. "One Pair" is
// accepted as an alias for Pair.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "One Pair") {
		return Pair, true
	}
	for _, c := range Categories() {
		if strings.EqualFold(name, c.String()) {
			return c, true
		}
	}
	return 0, false
}

// RankingInfo describes one category for the hand-ranking reference.
type RankingInfo struct {
	Category    Category `json:"-"`
	Rank        int      `json:"rank"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Example     string   `json:"example"`
}

// Rankings lists every category from strongest to weakest.
func Rankings() []RankingInfo {
	out := make([]RankingInfo, 0, NumCategories)
	for c := RoyalFlush; c >= HighCard; c-- {
		out = append(out, RankingInfo{
			Category:    c,
			Rank:        int(c) + 1,
			Name:        c.String(),
			Description: c.Description(),
			Example:     c.Example(),
		})
	}
	return out
}
