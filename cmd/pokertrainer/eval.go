package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/pokertrainer/internal/deck"
	"github.com/lox/pokertrainer/internal/evaluator"
)

// EvalCmd evaluates one hand, or decides the winner between two.
type EvalCmd struct {
	Hands []string `arg:"" help:"Five-card hands such as 'AhKhQhJhTh' (one or two, quoted if spaced)"`
}

func (c *EvalCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *EvalCmd) run(w io.Writer) error {
	if len(c.Hands) == 0 || len(c.Hands) > 2 {
		return fmt.Errorf("expected one or two hands, got %d", len(c.Hands))
	}

	hands := make([][]deck.Card, len(c.Hands))
	keys := make([]evaluator.StrengthKey, len(c.Hands))
	for i, s := range c.Hands {
		cards, err := deck.ParseCards(s)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		key, err := evaluator.Evaluate(cards)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i], keys[i] = cards, key
	}

	for i, key := range keys {
		fmt.Fprintf(w, "%s  %s  %s\n",
			headerStyle.Render(fmt.Sprintf("Hand %d:", i+1)),
			handStyle.Render(formatCards(hands[i])),
			categoryStyle.Render(key.Describe()))
	}

	if len(keys) == 1 {
		fmt.Fprintln(w, keys[0].Category.Description())
		return nil
	}

	if err := checkDisjoint(hands[0], hands[1]); err != nil {
		return err
	}
	switch evaluator.CompareKeys(keys[0], keys[1]) {
	case evaluator.AWins:
		fmt.Fprintln(w, winStyle.Render("Hand 1 wins"))
	case evaluator.BWins:
		fmt.Fprintln(w, winStyle.Render("Hand 2 wins"))
	default:
		fmt.Fprintln(w, tieStyle.Render("Tie, the pot is split"))
	}
	return nil
}

func checkDisjoint(a, b []deck.Card) error {
	seen := make(map[deck.Card]bool, len(a))
	for _, c := range a {
		seen[c] = true
	}
	for _, c := range b {
		if seen[c] {
			return fmt.Errorf("card %s appears in both hands", c.Notation())
		}
	}
	return nil
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
