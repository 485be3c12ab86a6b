package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/pokertrainer/internal/deck"
	"github.com/lox/pokertrainer/internal/preflop"
)

// ClassifyCmd reports the tier of a starting hand.
type ClassifyCmd struct {
	Hand     string `arg:"" help:"Starting hand as notation (AKs, QQ, 72o) or two cards (AhKd)"`
	Position string `short:"p" help:"Also advise whether to play from this position"`
}

func (c *ClassifyCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ClassifyCmd) run(w io.Writer) error {
	hand, err := parseStartingHand(c.Hand)
	if err != nil {
		return err
	}
	entry := preflop.Lookup(hand)

	fmt.Fprintf(w, "%s  %s\n", handStyle.Render(hand.Notation()), categoryStyle.Render(entry.Tier.String()))
	fmt.Fprintf(w, "%s\n", entry.Tier.Description())
	fmt.Fprintf(w, "Rule: %s\n", entry.Rule)
	fmt.Fprintf(w, "Stronger than %.0f%% of starting hands\n", preflop.Percentile(hand)*100)

	if c.Position != "" {
		pos, err := preflop.ParsePosition(c.Position)
		if err != nil {
			return err
		}
		advice := tieStyle.Render("fold")
		if preflop.ShouldPlay(hand, pos) {
			advice = winStyle.Render("play")
		}
		fmt.Fprintf(w, "From %s position: %s\n", pos, advice)
	}
	return nil
}

// parseStartingHand accepts either canonical notation or two concrete cards.
func parseStartingHand(s string) (preflop.StartingHand, error) {
	if h, err := preflop.ParseNotation(s); err == nil {
		return h, nil
	}
	cards, err := deck.ParseCards(s)
	if err != nil || len(cards) != 2 {
		return preflop.StartingHand{}, fmt.Errorf("%w: %q", preflop.ErrInvalidStartingHand, s)
	}
	return preflop.FromCards(cards[0], cards[1])
}
