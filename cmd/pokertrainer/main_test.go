package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertrainer/internal/preflop"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestEvalSingleHand(t *testing.T) {
	var buf bytes.Buffer
	cmd := &EvalCmd{Hands: []string{"AhKhQhJhTh"}}
	require.NoError(t, cmd.run(&buf))
	assert.Contains(t, buf.String(), "Royal Flush")
}

func TestEvalCompare(t *testing.T) {
	tests := []struct {
		name  string
		hands []string
		want  string
	}{
		{"first wins", []string{"AsAdKcKd2h", "QsQdJcJd2c"}, "Hand 1 wins"},
		{"second wins", []string{"2s3d4c5d9h", "6s7d8c9dTh"}, "Hand 2 wins"},
		{"split", []string{"As2d3c4d5h", "Ac2h3s4s5c"}, "Tie"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &EvalCmd{Hands: tt.hands}
			require.NoError(t, cmd.run(&buf))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name  string
		hands []string
	}{
		{"no hands", nil},
		{"three hands", []string{"AhKhQhJhTh", "2c3c4c5c7d", "2s3s4s5s7h"}},
		{"bad card", []string{"AhKhQhJhTx"}},
		{"four cards", []string{"AhKhQhJh"}},
		{"shared card", []string{"AhKhQhJhTh", "Ah2c3c4c5c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &EvalCmd{Hands: tt.hands}
			assert.Error(t, cmd.run(&bytes.Buffer{}))
		})
	}
}

func TestClassify(t *testing.T) {
	var buf bytes.Buffer
	cmd := &ClassifyCmd{Hand: "AKs", Position: "early"}
	require.NoError(t, cmd.run(&buf))
	out := buf.String()
	assert.Contains(t, out, "Premium")
	assert.Contains(t, out, "From early position: play")

	buf.Reset()
	cmd = &ClassifyCmd{Hand: "7h2d", Position: "early"}
	require.NoError(t, cmd.run(&buf))
	out = buf.String()
	assert.Contains(t, out, "72o")
	assert.Contains(t, out, "Weak")
	assert.Contains(t, out, "fold")
}

func TestClassifyErrors(t *testing.T) {
	assert.Error(t, (&ClassifyCmd{Hand: "AX"}).run(&bytes.Buffer{}))
	assert.Error(t, (&ClassifyCmd{Hand: "AhAh"}).run(&bytes.Buffer{}))
	assert.Error(t, (&ClassifyCmd{Hand: "AKs", Position: "button"}).run(&bytes.Buffer{}))
}

func TestChartPrint(t *testing.T) {
	var buf bytes.Buffer
	cmd := &ChartCmd{Tier: "premium", Position: "late"}
	require.NoError(t, cmd.run(&buf))
	out := buf.String()
	assert.Contains(t, out, "PLAY")
	for _, n := range []string{"AA", "KK", "QQ", "AKs"} {
		assert.Contains(t, out, n)
	}
	assert.NotContains(t, out, "JJ")
}

func TestChartExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.json")
	var buf bytes.Buffer
	cmd := &ChartCmd{Out: out, Position: "early"}
	require.NoError(t, cmd.run(&buf))
	assert.Contains(t, buf.String(), "Wrote 169 hands")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var export chartExport
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, "early", export.Position)
	assert.Len(t, export.Hands, preflop.NumHands)
	assert.Len(t, export.Legend, preflop.NumTiers)
	for _, row := range export.Hands {
		require.NotNil(t, row.Play, row.Notation)
	}
}

func TestChartUnknownTier(t *testing.T) {
	assert.Error(t, (&ChartCmd{Tier: "legendary"}).run(&bytes.Buffer{}))
}
