package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "ten written as 10 with separators",
			input: "10h, Jh, 2c",
			expected: []Card{
				{Suit: Hearts, Rank: Ten},
				{Suit: Hearts, Rank: Jack},
				{Suit: Clubs, Rank: Two},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "AsKx", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Equal(t, []Card{{Suit: Spades, Rank: Ace}}, MustParseCards("As"))
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("10d")
	require.NoError(t, err)
	assert.Equal(t, Card{Suit: Diamonds, Rank: Ten}, c)

	_, err = ParseCard("AsKs")
	assert.Error(t, err)
}

func TestCardFormatting(t *testing.T) {
	c := NewCard(Hearts, Ten)
	assert.Equal(t, "10♥", c.String())
	assert.Equal(t, "Th", c.Notation())
	assert.True(t, c.IsRed())
	assert.Equal(t, "Sixes", Six.Plural())
	assert.Equal(t, "Kings", King.Plural())
	assert.Equal(t, []string{"As", "2c"}, Notations(MustParseCards("As2c")))
}

func TestCardCompareIgnoresSuit(t *testing.T) {
	assert.Equal(t, 0, NewCard(Spades, Ace).Compare(NewCard(Hearts, Ace)))
	assert.Equal(t, 1, NewCard(Clubs, King).Compare(NewCard(Spades, Queen)))
	assert.Equal(t, -1, NewCard(Spades, Two).Compare(NewCard(Clubs, Three)))
	assert.NotEqual(t, NewCard(Spades, Ace), NewCard(Hearts, Ace))
}

func TestCardIndexIsDense(t *testing.T) {
	seen := make(map[int]bool)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			idx := NewCard(suit, rank).Index()
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, 52)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, 52)
	assert.Equal(t, -1, Card{Suit: Spades, Rank: 1}.Index())
}
