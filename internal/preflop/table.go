package preflop

import (
	"github.com/lox/pokertrainer/internal/deck"
)

// NumHands is the number of canonical starting hands (13 pairs, 78 suited,
// 78 offsuit).
const NumHands = 169

// Entry is one row of the static classification table.
type Entry struct {
	Hand StartingHand
	Tier Tier
	// Rule names the construction rule that assigned the tier.
	Rule string
}

// tierRule is one step of the table construction. Rules run in priority
// order; the first match assigns the tier.
type tierRule struct {
	tier    Tier
	rule    string
	matches func(h StartingHand) bool
}

func oneOf(notations ...string) func(StartingHand) bool {
	set := make(map[string]bool, len(notations))
	for _, n := range notations {
		set[n] = true
	}
	return func(h StartingHand) bool { return set[h.Notation()] }
}

var tierRules = []tierRule{
	{Premium, "premium pair or ace-king suited", oneOf("AA", "KK", "QQ", "AKs")},
	{Strong, "big pair or big ace", oneOf("JJ", "TT", "AKo", "AQs", "AQo")},
	{Playable, "medium pair", func(h StartingHand) bool {
		return h.IsPair() && h.High >= deck.Seven && h.High <= deck.Nine
	}},
	{Playable, "suited connector", func(h StartingHand) bool {
		return h.Suited && h.High-h.Low == 1 && h.Low >= deck.Six
	}},
	{Playable, "suited broadway ace", func(h StartingHand) bool {
		return h.Suited && h.High == deck.Ace && h.Low >= deck.Ten
	}},
	{Marginal, "small pair", func(h StartingHand) bool {
		return h.IsPair() && h.High <= deck.Six
	}},
	{Marginal, "offsuit broadway", func(h StartingHand) bool {
		return !h.Suited && !h.IsPair() && h.Low >= deck.Ten
	}},
	{Marginal, "weak suited ace", func(h StartingHand) bool {
		return h.Suited && h.High == deck.Ace
	}},
	{Weak, "no qualifying feature", func(StartingHand) bool { return true }},
}

// table is indexed [high-2][low-2] for suited hands and pairs and
// [low-2][high-2] for offsuit hands, the usual 13x13 chart layout. It is
// built once from tierRules; lookups never re-run the rules.
var table = func() [deck.NumRanks][deck.NumRanks]Entry {
	var t [deck.NumRanks][deck.NumRanks]Entry
	for _, h := range All() {
		for _, r := range tierRules {
			if r.matches(h) {
				row, col := cell(h)
				t[row][col] = Entry{Hand: h, Tier: r.tier, Rule: r.rule}
				break
			}
		}
	}
	return t
}()

func cell(h StartingHand) (int, int) {
	hi, lo := int(h.High-deck.Two), int(h.Low-deck.Two)
	if h.Suited || h.IsPair() {
		return hi, lo
	}
	return lo, hi
}

// Lookup returns the table entry for a canonical hand.
func Lookup(h StartingHand) Entry {
	row, col := cell(h)
	return table[row][col]
}

// Classify returns the tier of the hand made of the two ranks. Order of the
// ranks does not matter and suited is ignored for pairs.
func Classify(r1, r2 deck.Rank, suited bool) (Tier, error) {
	h, err := NewStartingHand(r1, r2, suited)
	if err != nil {
		return Weak, err
	}
	return Lookup(h).Tier, nil
}

// Entries returns the full table in All() order.
func Entries() []Entry {
	hands := All()
	out := make([]Entry, len(hands))
	for i, h := range hands {
		out[i] = Lookup(h)
	}
	return out
}

// ByTier groups the canonical hands by tier.
func ByTier() map[Tier][]StartingHand {
	out := make(map[Tier][]StartingHand, NumTiers)
	for _, e := range Entries() {
		out[e.Tier] = append(out[e.Tier], e.Hand)
	}
	return out
}
