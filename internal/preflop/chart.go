package preflop

import "fmt"

// Position is a seat group used for play recommendations.
type Position string

const (
	PositionAny    Position = "any"
	PositionEarly  Position = "early"
	PositionMiddle Position = "middle"
	PositionLate   Position = "late"
	PositionBlinds Position = "blinds"
)

// ParsePosition validates a position name. The empty string means any.
func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case "":
		return PositionAny, nil
	case PositionAny, PositionEarly, PositionMiddle, PositionLate, PositionBlinds:
		return p, nil
	default:
		return "", fmt.Errorf("unknown position %q", s)
	}
}

// minimumTier is the weakest tier worth playing from a position.
func (p Position) minimumTier() Tier {
	switch p {
	case PositionEarly:
		return Strong
	case PositionLate, PositionBlinds:
		return Marginal
	default:
		return Playable
	}
}

// ShouldPlay reports whether the hand is worth entering the pot with from
// the given position.
func ShouldPlay(h StartingHand, pos Position) bool {
	return Lookup(h).Tier >= pos.minimumTier()
}

// ChartRow is one hand of the starting-hand chart.
type ChartRow struct {
	Notation   string  `json:"notation"`
	High       string  `json:"card1"`
	Low        string  `json:"card2"`
	Suited     bool    `json:"suited"`
	Tier       int     `json:"category"`
	TierName   string  `json:"category_name"`
	Rule       string  `json:"rule"`
	Percentile float64 `json:"percentile"`
	Play       *bool   `json:"play,omitempty"`
}

// Chart renders every canonical hand. When pos is not empty each row also
// carries the play recommendation for that position.
func Chart(pos Position) []ChartRow {
	entries := Entries()
	rows := make([]ChartRow, 0, len(entries))
	for _, e := range entries {
		row := ChartRow{
			Notation:   e.Hand.Notation(),
			High:       e.Hand.High.String(),
			Low:        e.Hand.Low.String(),
			Suited:     e.Hand.Suited,
			Tier:       int(e.Tier),
			TierName:   e.Tier.String(),
			Rule:       e.Rule,
			Percentile: Percentile(e.Hand),
		}
		if pos != "" {
			play := ShouldPlay(e.Hand, pos)
			row.Play = &play
		}
		rows = append(rows, row)
	}
	return rows
}

// TierInfo describes a tier for the chart legend.
type TierInfo struct {
	Value       int    `json:"value"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Legend lists the tiers strongest first with their hand counts.
func Legend() []TierInfo {
	groups := ByTier()
	out := make([]TierInfo, 0, NumTiers)
	for _, t := range Tiers() {
		out = append(out, TierInfo{
			Value:       int(t),
			Name:        t.String(),
			Description: t.Description(),
			Count:       len(groups[t]),
		})
	}
	return out
}
