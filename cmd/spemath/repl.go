package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/spxnso/spemath"
)

const (
	historyFile = ".spemath_history"
	promptMain  = "==> "
	promptCont  = "... "
)

type replCmd struct{}

func (*replCmd) Run(app *appCtx) error {
	fmt.Println(bannerStyle.Render(fmt.Sprintf("SpeMath %s REPL", spemath.Version)))
	fmt.Println("Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sess := spemath.NewSession(spemath.WithLogger(app.log))

	for {
		code, ok := readByParseProbe(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return nil
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		out, err := sess.EvalSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(spemath.WrapErrorWithSource(err, code).Error()))
			continue
		}
		if out != "" {
			fmt.Println(valueStyle.Render(strings.TrimRight(out, "\n")))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe reads lines until the accumulated input stops looking
// incomplete: while the only parse faults are unexpected-end-of-input, the
// statement is presumed unfinished and a continuation prompt is shown.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C: discard the pending input, keep the REPL alive.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if err := spemath.Check(src); err != nil && spemath.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
