package preflop

import "strings"

// Tier is a starting-hand strength class. Higher values are stronger.
type Tier int

const (
	Weak Tier = iota
	Marginal
	Playable
	Strong
	Premium
)

// NumTiers is the number of tiers.
const NumTiers = 5

// Tiers lists every tier strongest first, the order used for answer choices.
func Tiers() []Tier {
	return []Tier{Premium, Strong, Playable, Marginal, Weak}
}

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case Premium:
		return "Premium"
	case Strong:
		return "Strong"
	case Playable:
		return "Playable"
	case Marginal:
		return "Marginal"
	case Weak:
		return "Weak"
	default:
		return "Unknown"
	}
}

// Description is the play advice shown alongside the tier.
func (t Tier) Description() string {
	switch t {
	case Premium:
		return "Top tier hands - always raise"
	case Strong:
		return "Strong hands - raise or call raises"
	case Playable:
		return "Playable hands - good in position"
	case Marginal:
		return "Marginal hands - situational"
	case Weak:
		return "Weak hands - generally fold"
	default:
		return ""
	}
}

// ParseTier resolves a tier name case-insensitively.
func ParseTier(name string) (Tier, bool) {
	for _, t := range Tiers() {
		if strings.EqualFold(strings.TrimSpace(name), t.String()) {
			return t, true
		}
	}
	return 0, false
}
