// errors.go — per-stage diagnostics and caret-snippet rendering.
//
// Each pipeline stage owns its own error taxonomy:
//
//   - LexError / LexErrors:    produced by the lexer, batch-reported.
//   - ParseError / ParseErrors: produced by the parser, batch-reported in
//     encounter order after statement-boundary recovery.
//   - EvalError: produced by the evaluator, one per failing top-level
//     statement (the run continues with the next statement).
//
// The batch list types implement error themselves, so the whole report
// travels through ordinary error returns. WrapErrorWithSource upgrades any
// of these into a caret-annotated snippet for terminal display.
package spemath

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ----- lexer errors -----

type LexErrorKind int

const (
	UnexpectedCharacter LexErrorKind = iota
	InvalidNumberFormat
)

// LexError is a single lexical diagnostic. Line and Col are 1-based and
// point at the first character of the offending input.
type LexError struct {
	Kind    LexErrorKind
	Char    rune   // offending character, for UnexpectedCharacter
	Literal string // full malformed literal, for InvalidNumberFormat
	Line    int
	Col     int
}

func (e *LexError) Error() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("Unexpected character '%c' at line %d, column %d", e.Char, e.Line, e.Col)
	case InvalidNumberFormat:
		return fmt.Sprintf("Invalid number format '%s' at line %d, column %d", e.Literal, e.Line, e.Col)
	default:
		return fmt.Sprintf("Lexical error at line %d, column %d", e.Line, e.Col)
	}
}

// LexErrors is the ordered batch of diagnostics from one scan.
type LexErrors []*LexError

func (es LexErrors) Error() string {
	return strings.Join(lo.Map(es, func(e *LexError, _ int) string { return e.Error() }), "\n")
}

// ----- parser errors -----

type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	ExpectedToken
	UnexpectedEOF
	InvalidAssignment
	InvalidFunctionParameter
	InvalidFunctionDefinition
)

// ParseError is a single parse diagnostic anchored at a token span.
type ParseError struct {
	Kind      ParseErrorKind
	Expected  string // description of what was expected (ExpectedToken, UnexpectedEOF)
	Found     Token  // offending token (UnexpectedToken, ExpectedToken)
	Offending Expr   // offending subtree (InvalidAssignment, InvalidFunctionParameter)
	Span      Span
}

func (e *ParseError) Error() string {
	at := fmt.Sprintf("at line %d, column %d", e.Span.Line, e.Span.Col)
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("Unexpected token %s %s", e.Found.Description(), at)
	case ExpectedToken:
		return fmt.Sprintf("Expected %s but found %s %s", e.Expected, e.Found.Description(), at)
	case UnexpectedEOF:
		return fmt.Sprintf("Unexpected end of input, expected %s %s", e.Expected, at)
	case InvalidAssignment:
		return fmt.Sprintf("Invalid assignment, left-hand side must be a variable %s", at)
	case InvalidFunctionParameter:
		return fmt.Sprintf("Invalid function parameter '%s' %s", e.Offending, at)
	case InvalidFunctionDefinition:
		return fmt.Sprintf("Invalid function definition %s", at)
	default:
		return fmt.Sprintf("Parse error %s", at)
	}
}

// ParseErrors is the ordered batch of diagnostics from one parse.
type ParseErrors []*ParseError

func (es ParseErrors) Error() string {
	return strings.Join(lo.Map(es, func(e *ParseError, _ int) string { return e.Error() }), "\n")
}

// IsIncomplete reports whether err represents input that failed only because
// it ended too early (every recorded diagnostic is an UnexpectedEOF). A REPL
// uses this to keep reading continuation lines instead of reporting.
func IsIncomplete(err error) bool {
	es, ok := err.(ParseErrors)
	if !ok || len(es) == 0 {
		return false
	}
	return lo.EveryBy(es, func(e *ParseError) bool { return e.Kind == UnexpectedEOF })
}

// ----- evaluator errors -----

type EvalErrorKind int

const (
	UnknownVariable EvalErrorKind = iota
	InvalidUnary
	UnsupportedOperation
	NotCallable
	ArityMismatch
)

// EvalError is a runtime failure for one top-level statement.
type EvalError struct {
	Kind    EvalErrorKind
	Name    string    // variable name (UnknownVariable)
	Op      TokenType // operator (InvalidUnary, UnsupportedOperation)
	Operand string    // operand shape (InvalidUnary) or value text (NotCallable)
	LHS     string    // left operand shape (UnsupportedOperation)
	RHS     string    // right operand shape (UnsupportedOperation)
	Want    int       // declared parameter count (ArityMismatch)
	Got     int       // supplied argument count (ArityMismatch)
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case UnknownVariable:
		return fmt.Sprintf("Unknown variable: '%s'", e.Name)
	case InvalidUnary:
		return fmt.Sprintf("Invalid unary operation: '%s' on %s", Token{Type: e.Op}, e.Operand)
	case UnsupportedOperation:
		return fmt.Sprintf("Unsupported binary operation: %s %s %s", e.LHS, Token{Type: e.Op}, e.RHS)
	case NotCallable:
		return fmt.Sprintf("Attempted to call a non-function value: %s", e.Operand)
	case ArityMismatch:
		return fmt.Sprintf("Function expected %d arguments but got %d", e.Want, e.Got)
	default:
		return "Evaluation error"
	}
}

// ----- caret-snippet rendering -----

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src pointing at each diagnostic. Lex and parse batches are
// rendered entry by entry; any other error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettySnippet(src, "LEXICAL ERROR", e.Line, e.Col, e.Error()))
	case *ParseError:
		return fmt.Errorf("%s", prettySnippet(src, "PARSE ERROR", e.Span.Line, e.Span.Col, e.Error()))
	case LexErrors:
		parts := lo.Map(e, func(le *LexError, _ int) string {
			return prettySnippet(src, "LEXICAL ERROR", le.Line, le.Col, le.Error())
		})
		return fmt.Errorf("%s", strings.Join(parts, "\n"))
	case ParseErrors:
		parts := lo.Map(e, func(pe *ParseError, _ int) string {
			return prettySnippet(src, "PARSE ERROR", pe.Span.Line, pe.Span.Col, pe.Error())
		})
		return fmt.Errorf("%s", strings.Join(parts, "\n"))
	default:
		return err
	}
}

// prettySnippet builds a Python-like snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettySnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\n", header, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
