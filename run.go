// run.go — the textual entry points hosts embed.
package spemath

import (
	"fmt"
	"log/slog"
	"strings"
)

// Version is the library version surfaced by the CLI.
const Version = "0.2.0"

// Run lexes, parses and evaluates a complete source string against a fresh
// environment.
//
// Lexical or parse faults abort the run before evaluation and come back as
// the batch error (LexErrors or ParseErrors). Evaluation faults do not: each
// top-level statement is isolated, and a failing statement contributes a
// "Runtime Error:" line to the output while later statements still run.
// Successful non-unit statements contribute one line each, in source order,
// in the value's canonical textual form.
func Run(src string, opts ...Option) (string, error) {
	tokens, err := NewLexer(src, opts...).Tokenize()
	if err != nil {
		return "", err
	}

	exprs, err := NewParser(tokens, opts...).Parse()
	if err != nil {
		return "", err
	}

	ev := NewEvaluator(opts...)
	var out strings.Builder
	for _, expr := range exprs {
		v, err := ev.Eval(expr)
		if err != nil {
			fmt.Fprintf(&out, "Runtime Error: %s\n", err)
			continue
		}
		if v.Tag != ValUnit {
			out.WriteString(v.String())
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}

// Session is the persistent variant of Run: successive EvalSource calls
// share one environment, so a REPL can accumulate bindings across inputs.
// A Session must not be shared across concurrent runs; the environment is
// owned by exactly one evaluation at a time.
type Session struct {
	ev  *Evaluator
	log *slog.Logger
}

// NewSession creates a session with an empty environment.
func NewSession(opts ...Option) *Session {
	o := makeOptions(opts)
	return &Session{
		ev:  NewEvaluator(opts...),
		log: o.log,
	}
}

// Env exposes the session's environment.
func (s *Session) Env() *Env { return s.ev.Env() }

// EvalSource lexes, parses and evaluates one chunk of source against the
// session environment. Output semantics match Run.
func (s *Session) EvalSource(src string) (string, error) {
	tokens, err := NewLexer(src, WithLogger(s.log)).Tokenize()
	if err != nil {
		return "", err
	}

	exprs, err := NewParser(tokens, WithLogger(s.log)).Parse()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, expr := range exprs {
		v, err := s.ev.Eval(expr)
		if err != nil {
			fmt.Fprintf(&out, "Runtime Error: %s\n", err)
			continue
		}
		if v.Tag != ValUnit {
			out.WriteString(v.String())
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}

// Check lexes and parses source without evaluating it. A REPL uses this as
// its continuation probe: if the only faults are unexpected-end-of-input,
// the input is incomplete rather than wrong (see IsIncomplete).
func Check(src string, opts ...Option) error {
	tokens, err := NewLexer(src, opts...).Tokenize()
	if err != nil {
		return err
	}
	_, err = NewParser(tokens, opts...).Parse()
	return err
}
