// Command spemath runs SpeMath source files and hosts the interactive REPL.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/spxnso/spemath"
)

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	bannerStyle = lipgloss.NewStyle().Bold(true)
)

type cli struct {
	Debug   bool             `help:"Enable debug logging to stderr." short:"d"`
	Version kong.VersionFlag `help:"Print version and exit."`

	Run  runCmd  `cmd:"" default:"withargs" help:"Evaluate a source file."`
	Repl replCmd `cmd:"" help:"Start an interactive session."`
}

// appCtx carries the injected logger to the commands. The core never sees a
// global logger; this is the only place a real handler is installed.
type appCtx struct {
	log *slog.Logger
}

func main() {
	var c cli
	ktx := kong.Parse(&c,
		kong.Name("spemath"),
		kong.Description("An arithmetic language with implicit multiplication and single-expression functions."),
		kong.UsageOnError(),
		kong.Vars{"version": spemath.Version},
	)

	var h slog.Handler
	if c.Debug {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewTextHandler(io.Discard, nil)
	}

	ktx.FatalIfErrorf(ktx.Run(&appCtx{log: slog.New(h)}))
}

type runCmd struct {
	File string `arg:"" optional:"" default:"input.spemath" help:"Source file to evaluate." type:"existingfile"`
}

func (r *runCmd) Run(app *appCtx) error {
	src, err := os.ReadFile(r.File)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", r.File, err)
	}

	out, err := spemath.Run(string(src), spemath.WithLogger(app.log))
	if err != nil {
		// Lex/parse batch: render every diagnostic with its caret snippet.
		// The CLI owns the exit-code decision; the core does not.
		fmt.Fprintln(os.Stderr, errStyle.Render(spemath.WrapErrorWithSource(err, string(src)).Error()))
		os.Exit(1)
	}

	// Runtime Error lines are part of the run's output by contract: a
	// failing statement does not fail the run.
	fmt.Print(out)
	return nil
}
