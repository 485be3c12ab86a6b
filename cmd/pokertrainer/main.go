package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"pokertrainer.hcl" help:"Path to HCL configuration file"`
	NoColor  bool             `help:"Disable colored output"`
	Serve    ServeCmd         `cmd:"" help:"Run the training API server"`
	Quiz     QuizCmd          `cmd:"" help:"Practice interactively in the terminal"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a five-card hand or compare two"`
	Classify ClassifyCmd      `cmd:"" help:"Classify a two-card starting hand"`
	Chart    ChartCmd         `cmd:"" help:"Print or export the starting-hand chart"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokertrainer"),
		kong.Description("Adaptive Texas Hold'em training: hand rankings, showdowns and starting hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
