package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in ascending order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the symbol of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Letter returns the single-letter notation used by ParseCard (c, d, h, s)
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank with its ordinal value (2-14)
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks in a deck.
const NumRanks = 13

// String returns the single-character notation of a rank ("T" for ten)
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Symbol returns the display form of a rank ("10" for ten)
func (r Rank) Symbol() string {
	if r == Ten {
		return "10"
	}
	return r.String()
}

// Name returns the English name of a rank, e.g. "King"
func (r Rank) Name() string {
	names := [...]string{"Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King", "Ace"}
	if !r.Valid() {
		return "Unknown"
	}
	return names[r-Two]
}

// Plural returns the plural English name of a rank, e.g. "Sixes"
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Valid reports whether r is between Two and Ace
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card. Cards are comparable values; two cards are
// the same card only when both rank and suit match.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "A♠", "10♥")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank.Symbol(), c.Suit)
}

// Notation returns the two-character parseable form (e.g., "As", "Th")
func (c Card) Notation() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Valid reports whether the card has a valid rank and suit
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the numeric value of the card for comparison.
// Aces are high (14); only straight detection treats them as low.
func (c Card) Value() int {
	return int(c.Rank)
}

// Compare orders cards by rank only. Suits never break ties.
func (c Card) Compare(other Card) int {
	switch {
	case c.Rank > other.Rank:
		return 1
	case c.Rank < other.Rank:
		return -1
	default:
		return 0
	}
}

// Index returns a dense 0-51 index for the card, or -1 if the card is invalid
func (c Card) Index() int {
	if !c.Valid() {
		return -1
	}
	return int(c.Suit)*NumRanks + int(c.Rank-Two)
}

// Notations formats cards in parseable notation, e.g. ["As", "Kh"]
func Notations(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Notation()
	}
	return out
}
