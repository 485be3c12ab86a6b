package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/lox/pokertrainer/internal/fileutil"
	"github.com/lox/pokertrainer/internal/preflop"
)

// ChartCmd prints the starting-hand chart or exports it as JSON.
type ChartCmd struct {
	Out      string `short:"o" help:"Write the chart as JSON to this file instead of printing it"`
	Position string `short:"p" help:"Include play advice for this position"`
	Tier     string `short:"t" help:"Only show hands in this tier"`
}

type chartExport struct {
	Position string             `json:"position,omitempty"`
	Legend   []preflop.TierInfo `json:"legend"`
	Hands    []preflop.ChartRow `json:"hands"`
}

func (c *ChartCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ChartCmd) run(w io.Writer) error {
	pos := preflop.Position("")
	if c.Position != "" {
		p, err := preflop.ParsePosition(c.Position)
		if err != nil {
			return err
		}
		pos = p
	}

	rows := preflop.Chart(pos)
	if c.Tier != "" {
		tier, ok := preflop.ParseTier(c.Tier)
		if !ok {
			return fmt.Errorf("unknown tier %q", c.Tier)
		}
		filtered := rows[:0]
		for _, r := range rows {
			if r.Tier == int(tier) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if c.Out != "" {
		export := chartExport{Position: string(pos), Legend: preflop.Legend(), Hands: rows}
		if err := fileutil.WriteJSONAtomic(c.Out, export, 0o644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Fprintf(w, "Wrote %d hands to %s\n", len(rows), c.Out)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "HAND\tTIER\tPERCENTILE\tRULE"
	if pos != "" {
		header += "\tPLAY"
	}
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		line := fmt.Sprintf("%s\t%s\t%.3f\t%s", r.Notation, r.TierName, r.Percentile, r.Rule)
		if r.Play != nil {
			play := "fold"
			if *r.Play {
				play = "play"
			}
			line += "\t" + play
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}
