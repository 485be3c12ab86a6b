package evaluator

import (
	"testing"

	"github.com/lox/pokertrainer/internal/deck"
	"github.com/lox/pokertrainer/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranks(rs ...deck.Rank) []deck.Rank { return rs }

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
		tiebreak []deck.Rank
	}{
		{"royal flush", "ThJhQhKhAh", RoyalFlush, ranks(deck.Ace)},
		{"straight flush", "9sTsJsQsKs", StraightFlush, ranks(deck.King)},
		{"steel wheel", "As2s3s4s5s", StraightFlush, ranks(deck.Five)},
		{"four of a kind", "9c9d9h9s2c", FourOfAKind, ranks(deck.Nine, deck.Two)},
		{"full house", "QsQhQd4c4h", FullHouse, ranks(deck.Queen, deck.Four)},
		{"flush", "Ah9h7h4h2h", Flush, ranks(deck.Ace, deck.Nine, deck.Seven, deck.Four, deck.Two)},
		{"straight", "9h8d7c6s5h", Straight, ranks(deck.Nine)},
		{"broadway straight", "AsKhQdJcTs", Straight, ranks(deck.Ace)},
		{"wheel", "As2h3d4c5s", Straight, ranks(deck.Five)},
		{"three of a kind", "7s7h7dKs2c", ThreeOfAKind, ranks(deck.Seven, deck.King, deck.Two)},
		{"two pair", "KsKh7d7c2h", TwoPair, ranks(deck.King, deck.Seven, deck.Two)},
		{"pair", "JsJh9d4c2h", Pair, ranks(deck.Jack, deck.Nine, deck.Four, deck.Two)},
		{"high card", "AsKhQd9s7c", HighCard, ranks(deck.Ace, deck.King, deck.Queen, deck.Nine, deck.Seven)},
		{"ace-high not wrapping", "QsKhAd2s3c", HighCard, ranks(deck.Ace, deck.King, deck.Queen, deck.Three, deck.Two)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := Evaluate(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.category, key.Category)
			assert.Equal(t, tt.tiebreak, key.Tiebreak)
		})
	}
}

func TestEvaluateInvalidHands(t *testing.T) {
	tests := []struct {
		name  string
		cards []deck.Card
	}{
		{"too few", deck.MustParseCards("AsKsQsJs")},
		{"too many", deck.MustParseCards("AsKsQsJsTs9s")},
		{"empty", nil},
		{"duplicate", deck.MustParseCards("AsAsKdQc2h")},
		{"invalid card", []deck.Card{{Suit: deck.Spades, Rank: 1}, {Suit: deck.Spades, Rank: deck.Two}, {Suit: deck.Spades, Rank: deck.Three}, {Suit: deck.Spades, Rank: deck.Four}, {Suit: deck.Spades, Rank: deck.Five}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.cards)
			assert.ErrorIs(t, err, ErrInvalidHand)

			_, err = Compare(tt.cards, deck.MustParseCards("AsKhQd9s7c"))
			assert.ErrorIs(t, err, ErrInvalidHand)
		})
	}
}

func TestEvaluateIsDeterministicAndTotal(t *testing.T) {
	d := deck.New(randutil.New(99))
	for i := 0; i < 2000; i++ {
		if d.CardsRemaining() < HandSize {
			d.Reset()
		}
		hand := d.DealN(HandSize)
		first, err := Evaluate(hand)
		require.NoError(t, err)
		second, err := Evaluate(hand)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.True(t, first.Category.Valid())
	}
}

func TestRoyalBeatsKingHighStraightFlush(t *testing.T) {
	royal := MustEvaluate(deck.MustParseCards("10hJhQhKhAh"))
	kingHigh := MustEvaluate(deck.MustParseCards("9sTsJsQsKs"))

	assert.Equal(t, RoyalFlush, royal.Category)
	assert.Equal(t, StraightFlush, kingHigh.Category)
	assert.Equal(t, deck.King, kingHigh.High())
	assert.Equal(t, 1, royal.Compare(kingHigh))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		cards    string
		expected string
	}{
		{"AhKhQhJhTh", "Royal Flush"},
		{"As2h3d4c5s", "Straight, Five high"},
		{"QsQhQd4c4h", "Full House, Queens full of Fours"},
		{"KsKh7d7c2h", "Two Pair, Kings and Sevens"},
		{"6s6h9d4c2h", "Pair of Sixes"},
		{"AsKhQd9s7c", "High Card, Ace high"},
		{"9c9d9h9s2c", "Four of a Kind, Nines"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, MustEvaluate(deck.MustParseCards(tt.cards)).Describe())
		})
	}
}

func TestRuleOrderCoversEveryCategory(t *testing.T) {
	require.Len(t, rules, NumCategories)
	for i, r := range rules {
		assert.Equal(t, Category(NumCategories-1-i), r.category, "rules must run strongest first")
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("three of a kind")
	assert.True(t, ok)
	assert.Equal(t, ThreeOfAKind, c)

	c, ok = ParseCategory("One Pair")
	assert.True(t, ok)
	assert.Equal(t, Pair, c)

	_, ok = ParseCategory("Five of a Kind")
	assert.False(t, ok)
}

func TestRankings(t *testing.T) {
	r := Rankings()
	require.Len(t, r, NumCategories)
	assert.Equal(t, "Royal Flush", r[0].Name)
	assert.Equal(t, 10, r[0].Rank)
	assert.Equal(t, "High Card", r[len(r)-1].Name)

	for _, info := range r {
		cards, err := deck.ParseCards(info.Example)
		require.NoError(t, err)
		key, err := Evaluate(cards)
		require.NoError(t, err)
		assert.Equal(t, info.Category, key.Category, "example for %s", info.Name)
		assert.NotEmpty(t, info.Description)
	}
}
