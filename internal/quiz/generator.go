package quiz

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/pokertrainer/internal/deck"
	"github.com/lox/pokertrainer/internal/evaluator"
	"github.com/lox/pokertrainer/internal/preflop"
	"github.com/lox/pokertrainer/internal/randutil"
)

// Config tunes question generation.
type Config struct {
	// MaxAttempts bounds resampling before ErrGenerationExhausted.
	MaxAttempts int
	// RankingChoices is how many category names a hand-ranking question offers.
	RankingChoices int
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{MaxAttempts: 100, RankingChoices: 4}
}

// Generator builds questions. It holds no mutable state and is safe for
// concurrent use.
type Generator struct {
	cfg Config
}

// NewGenerator returns a generator, filling unset fields from DefaultConfig.
func NewGenerator(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RankingChoices <= 0 {
		cfg.RankingChoices = def.RankingChoices
	}
	cfg.RankingChoices = min(max(cfg.RankingChoices, 2), evaluator.NumCategories)
	return &Generator{cfg: cfg}
}

// Generate builds a question for topic at difficulty from seed. The same
// inputs always produce the same question.
func (g *Generator) Generate(topic Topic, difficulty int, seed int64) (Question, error) {
	if !topic.Valid() {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
	if err := ValidateDifficulty(difficulty); err != nil {
		return Question{}, err
	}

	rng := randutil.New(seed)
	var (
		q   Question
		err error
	)
	switch topic {
	case HandRanking:
		q, err = g.handRanking(rng, difficulty)
	case WhichWins:
		q, err = g.whichWins(rng, difficulty)
	case StartingHand:
		q = g.startingHand(rng, difficulty)
	}
	if err != nil {
		return Question{}, fmt.Errorf("generate %s at difficulty %d: %w", topic, difficulty, err)
	}

	q.Topic = topic
	q.Difficulty = difficulty
	q.Seed = seed
	return q, nil
}

// resample calls try until it succeeds or attempts run out.
func resample[T any](attempts int, try func() (T, bool)) (T, error) {
	for i := 0; i < attempts; i++ {
		if v, ok := try(); ok {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, attempts)
}

type dealtHand struct {
	cards []deck.Card
	key   evaluator.StrengthKey
}

// rankingPools are the categories a hand-ranking question may show. Low
// levels stick to clean, common shapes; the top level mixes the categories
// that are easiest to confuse with each other.
var rankingPools = map[int][]evaluator.Category{
	1: {evaluator.Pair, evaluator.ThreeOfAKind, evaluator.Flush, evaluator.FullHouse},
	2: {evaluator.Pair, evaluator.TwoPair, evaluator.ThreeOfAKind, evaluator.Straight, evaluator.Flush, evaluator.FullHouse},
	3: {evaluator.HighCard, evaluator.Pair, evaluator.TwoPair, evaluator.ThreeOfAKind, evaluator.Straight, evaluator.Flush, evaluator.FullHouse, evaluator.FourOfAKind},
	4: evaluator.Categories(),
	5: {evaluator.HighCard, evaluator.Pair, evaluator.TwoPair, evaluator.Straight, evaluator.Flush, evaluator.StraightFlush},
}

func (g *Generator) handRanking(rng *rand.Rand, difficulty int) (Question, error) {
	pool := rankingPools[difficulty]
	hand, err := resample(g.cfg.MaxAttempts, func() (dealtHand, bool) {
		cat := pool[rng.IntN(len(pool))]
		cards, key, ok := dealHand(deck.New(rng), rng, cat)
		return dealtHand{cards, key}, ok
	})
	if err != nil {
		return Question{}, err
	}

	cat := hand.key.Category
	return Question{
		Prompt:      "What hand is this?",
		Cards:       hand.cards,
		Choices:     rankingChoices(rng, cat, g.cfg.RankingChoices),
		Answer:      cat.String(),
		Explanation: fmt.Sprintf("This is %s. %s", withArticle(hand.key.Describe(), cat), cat.Description()),
	}, nil
}

// rankingChoices offers the answer plus the n-1 categories nearest to it in
// rank, ties broken at random, in shuffled order.
func rankingChoices(rng *rand.Rand, answer evaluator.Category, n int) []string {
	others := make([]evaluator.Category, 0, evaluator.NumCategories-1)
	for _, c := range evaluator.Categories() {
		if c != answer {
			others = append(others, c)
		}
	}
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	slices.SortStableFunc(others, func(a, b evaluator.Category) int {
		return distance(a, answer) - distance(b, answer)
	})

	picked := append([]evaluator.Category{answer}, others[:n-1]...)
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

	out := make([]string, len(picked))
	for i, c := range picked {
		out[i] = c.String()
	}
	return out
}

func distance(a, b evaluator.Category) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// gapRange bounds the category distance between the two hands of a
// which-wins question.
type gapRange struct{ min, max int }

// whichWinsGaps narrows the category gap as difficulty rises, down to
// same-category hands separated only by tiebreak ranks.
var whichWinsGaps = map[int]gapRange{
	1: {3, evaluator.NumCategories},
	2: {2, 2},
	3: {1, 1},
	4: {0, 1},
	5: {0, 0},
}

const (
	HandOne = "Hand 1"
	HandTwo = "Hand 2"
)

type matchup struct {
	first, second dealtHand
	winner        evaluator.Outcome
}

func (g *Generator) whichWins(rng *rand.Rand, difficulty int) (Question, error) {
	gap := whichWinsGaps[difficulty]
	m, err := resample(g.cfg.MaxAttempts, func() (matchup, bool) {
		a, b, ok := pickCategories(rng, gap)
		if !ok {
			return matchup{}, false
		}
		d := deck.New(rng)
		ca, ka, ok := dealHand(d, rng, a)
		if !ok {
			return matchup{}, false
		}
		cb, kb, ok := dealHand(d, rng, b)
		if !ok {
			return matchup{}, false
		}
		outcome := evaluator.CompareKeys(ka, kb)
		if outcome == evaluator.Tie {
			return matchup{}, false
		}
		return matchup{dealtHand{ca, ka}, dealtHand{cb, kb}, outcome}, true
	})
	if err != nil {
		return Question{}, err
	}

	answer := HandOne
	winner, loser := m.first, m.second
	winnerName, loserName := HandOne, HandTwo
	if m.winner == evaluator.BWins {
		answer = HandTwo
		winner, loser = m.second, m.first
		winnerName, loserName = HandTwo, HandOne
	}

	return Question{
		Prompt:      "Which hand wins?",
		Cards:       m.first.cards,
		Cards2:      m.second.cards,
		Choices:     []string{HandOne, HandTwo},
		Answer:      answer,
		Explanation: whichWinsExplanation(winnerName, winner.key, loserName, loser.key),
	}, nil
}

// pickCategories draws a category for each hand whose distance lies in gap.
// Two royal flushes always tie, so that pairing is never drawn.
func pickCategories(rng *rand.Rand, gap gapRange) (evaluator.Category, evaluator.Category, bool) {
	all := evaluator.Categories()
	a := all[rng.IntN(len(all))]

	var options []evaluator.Category
	for _, b := range all {
		d := distance(a, b)
		if d < gap.min || d > gap.max {
			continue
		}
		if a == evaluator.RoyalFlush && b == evaluator.RoyalFlush {
			continue
		}
		options = append(options, b)
	}
	if len(options) == 0 {
		return 0, 0, false
	}
	return a, options[rng.IntN(len(options))], true
}

func whichWinsExplanation(winnerName string, winner evaluator.StrengthKey, loserName string, loser evaluator.StrengthKey) string {
	if winner.Category != loser.Category {
		return fmt.Sprintf("%s (%s) beats %s (%s): %s ranks above %s.",
			winnerName, winner.Describe(), loserName, loser.Describe(), winner.Category, loser.Category)
	}
	rw, rl, _ := evaluator.Decider(winner, loser)
	return fmt.Sprintf("Both hands make %s. %s (%s) beats %s (%s): %s beats %s.",
		withArticle(winner.Category.String(), winner.Category), winnerName, winner.Describe(), loserName, loser.Describe(), rw.Name(), rl.Name())
}

// withArticle prefixes s with "a" for categories read as a single thing
// ("a Flush", but "Two Pair").
func withArticle(s string, c evaluator.Category) string {
	switch c {
	case evaluator.HighCard, evaluator.TwoPair, evaluator.ThreeOfAKind, evaluator.FourOfAKind:
		return s
	default:
		return "a " + s
	}
}

// tierPools are the tiers a starting-hand question may draw from. Higher
// levels concentrate on the neighbouring middle tiers.
var tierPools = map[int][]preflop.Tier{
	1: {preflop.Premium, preflop.Weak},
	2: {preflop.Premium, preflop.Strong, preflop.Weak},
	3: preflop.Tiers(),
	4: {preflop.Strong, preflop.Playable, preflop.Marginal},
	5: {preflop.Playable, preflop.Marginal},
}

var handsByTier = preflop.ByTier()

// startingHand picks a tier from the pool, then a hand uniformly within it,
// so rare tiers are asked as often as common ones.
func (g *Generator) startingHand(rng *rand.Rand, difficulty int) Question {
	pool := tierPools[difficulty]
	tier := pool[rng.IntN(len(pool))]
	hands := handsByTier[tier]
	hand := hands[rng.IntN(len(hands))]
	entry := preflop.Lookup(hand)
	notation := hand.Notation()

	tiers := preflop.Tiers()
	choices := make([]string, len(tiers))
	for i, t := range tiers {
		choices[i] = t.String()
	}

	return Question{
		Prompt:   fmt.Sprintf("How strong is %s?", notation),
		Cards:    hand.Deal(rng),
		Choices:  choices,
		Notation: notation,
		Answer:   entry.Tier.String(),
		Explanation: fmt.Sprintf("%s is a %s starting hand (%s), stronger than %.0f%% of starting hands. %s.",
			notation, entry.Tier, entry.Rule, preflop.Percentile(hand)*100, entry.Tier.Description()),
	}
}
