package quiz

import (
	rand "math/rand/v2"

	"github.com/lox/pokertrainer/internal/deck"
	"github.com/lox/pokertrainer/internal/evaluator"
)

// candidateTries bounds how many candidates dealHand draws for one hand
// before giving up on the current scenario.
const candidateTries = 20

// builder proposes five cards that usually form its category. Proposals are
// always checked with the evaluator, so a builder only has to be close.
type builder func(rng *rand.Rand) []deck.Card

var builders = map[evaluator.Category]builder{
	evaluator.RoyalFlush:    buildRoyalFlush,
	evaluator.StraightFlush: buildStraightFlush,
	evaluator.FourOfAKind:   buildFourOfAKind,
	evaluator.FullHouse:     buildFullHouse,
	evaluator.Flush:         buildFlush,
	evaluator.Straight:      buildStraight,
	evaluator.ThreeOfAKind:  buildThreeOfAKind,
	evaluator.TwoPair:       buildTwoPair,
	evaluator.Pair:          buildPair,
	evaluator.HighCard:      buildHighCard,
}

// dealHand takes a hand of category cat out of d. Candidates that reuse a
// dealt card or evaluate to another category are discarded. On success the
// cards are removed from d.
func dealHand(d *deck.Deck, rng *rand.Rand, cat evaluator.Category) ([]deck.Card, evaluator.StrengthKey, bool) {
	build := builders[cat]
	if build == nil {
		return nil, evaluator.StrengthKey{}, false
	}

	for i := 0; i < candidateTries; i++ {
		cards := build(rng)
		if !available(d, cards) {
			continue
		}
		key, err := evaluator.Evaluate(cards)
		if err != nil || key.Category != cat {
			continue
		}
		for _, c := range cards {
			d.Take(c)
		}
		rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		return cards, key, true
	}
	return nil, evaluator.StrengthKey{}, false
}

func available(d *deck.Deck, cards []deck.Card) bool {
	for _, c := range cards {
		if !d.Contains(c) {
			return false
		}
	}
	return true
}

func randomSuit(rng *rand.Rand) deck.Suit {
	return deck.Suits[rng.IntN(len(deck.Suits))]
}

// shuffledSuits returns the four suits in random order.
func shuffledSuits(rng *rand.Rand) []deck.Suit {
	out := make([]deck.Suit, len(deck.Suits))
	for i, p := range rng.Perm(len(deck.Suits)) {
		out[i] = deck.Suits[p]
	}
	return out
}

// distinctRanks returns n different ranks in random order.
func distinctRanks(rng *rand.Rand, n int) []deck.Rank {
	out := make([]deck.Rank, n)
	for i, p := range rng.Perm(deck.NumRanks)[:n] {
		out[i] = deck.Two + deck.Rank(p)
	}
	return out
}

// run returns the five ranks of the straight topped by high. A Five-high run
// is the wheel.
func run(high deck.Rank) []deck.Rank {
	if high == deck.Five {
		return []deck.Rank{deck.Five, deck.Four, deck.Three, deck.Two, deck.Ace}
	}
	return []deck.Rank{high, high - 1, high - 2, high - 3, high - 4}
}

// sameRank deals rank in the first n of suits.
func sameRank(rank deck.Rank, suits []deck.Suit, n int) []deck.Card {
	out := make([]deck.Card, n)
	for i := range out {
		out[i] = deck.NewCard(suits[i], rank)
	}
	return out
}

// anySuits deals each rank in an independently random suit.
func anySuits(rng *rand.Rand, ranks ...deck.Rank) []deck.Card {
	out := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		out[i] = deck.NewCard(randomSuit(rng), r)
	}
	return out
}

func oneSuit(suit deck.Suit, ranks []deck.Rank) []deck.Card {
	out := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		out[i] = deck.NewCard(suit, r)
	}
	return out
}

func buildRoyalFlush(rng *rand.Rand) []deck.Card {
	return oneSuit(randomSuit(rng), run(deck.Ace))
}

func buildStraightFlush(rng *rand.Rand) []deck.Card {
	high := deck.Five + deck.Rank(rng.IntN(int(deck.King-deck.Five)+1))
	return oneSuit(randomSuit(rng), run(high))
}

func buildFourOfAKind(rng *rand.Rand) []deck.Card {
	ranks := distinctRanks(rng, 2)
	cards := sameRank(ranks[0], deck.Suits[:], 4)
	return append(cards, deck.NewCard(randomSuit(rng), ranks[1]))
}

func buildFullHouse(rng *rand.Rand) []deck.Card {
	ranks := distinctRanks(rng, 2)
	cards := sameRank(ranks[0], shuffledSuits(rng), 3)
	return append(cards, sameRank(ranks[1], shuffledSuits(rng), 2)...)
}

func buildFlush(rng *rand.Rand) []deck.Card {
	return oneSuit(randomSuit(rng), distinctRanks(rng, 5))
}

func buildStraight(rng *rand.Rand) []deck.Card {
	high := deck.Five + deck.Rank(rng.IntN(int(deck.Ace-deck.Five)+1))
	return anySuits(rng, run(high)...)
}

func buildThreeOfAKind(rng *rand.Rand) []deck.Card {
	ranks := distinctRanks(rng, 3)
	cards := sameRank(ranks[0], shuffledSuits(rng), 3)
	return append(cards, anySuits(rng, ranks[1:]...)...)
}

func buildTwoPair(rng *rand.Rand) []deck.Card {
	ranks := distinctRanks(rng, 3)
	cards := sameRank(ranks[0], shuffledSuits(rng), 2)
	cards = append(cards, sameRank(ranks[1], shuffledSuits(rng), 2)...)
	return append(cards, anySuits(rng, ranks[2])...)
}

func buildPair(rng *rand.Rand) []deck.Card {
	ranks := distinctRanks(rng, 4)
	cards := sameRank(ranks[0], shuffledSuits(rng), 2)
	return append(cards, anySuits(rng, ranks[1:]...)...)
}

func buildHighCard(rng *rand.Rand) []deck.Card {
	return anySuits(rng, distinctRanks(rng, 5)...)
}
