package deck

import (
	rand "math/rand/v2"
)

// Deck is a 52-card deck that deals without replacement. Every card handed out
// by Deal, DealN or Take is removed, so no card can appear twice in one deal.
type Deck struct {
	cards []Card
	dealt [52]bool
	rng   *rand.Rand
}

// New creates a full 52-card deck shuffled with rng
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Shuffle randomizes the order of the remaining cards (Fisher-Yates)
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	d.dealt[card.Index()] = true
	return card, true
}

// DealN deals n cards from the deck, or nil if fewer than n remain
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		return nil
	}

	cards := make([]Card, n)
	for i := range cards {
		cards[i], _ = d.Deal()
	}
	return cards
}

// Take removes a specific card from the deck. It returns false when the card
// is invalid or has already been dealt.
func (d *Deck) Take(card Card) bool {
	idx := card.Index()
	if idx < 0 || d.dealt[idx] {
		return false
	}
	for i, c := range d.cards {
		if c == card {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			d.dealt[idx] = true
			return true
		}
	}
	return false
}

// Contains reports whether card is still in the deck
func (d *Deck) Contains(card Card) bool {
	idx := card.Index()
	return idx >= 0 && !d.dealt[idx]
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	d.dealt = [52]bool{}

	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	d.Shuffle()
}
