// lexer.go — whitespace-preserving scanner for SpeMath source.
//
// The lexer turns raw text into a flat token stream terminated by exactly one
// EOF token. Unlike most scanners it does not discard layout: every space/tab
// becomes a WHITESPACE token and every '\n' a NEWLINE token, because the
// parser uses adjacency to tell implicit multiplication and call syntax
// apart from ordinary juxtaposition.
//
// Scanning is batch-oriented: a lexical fault never aborts the scan. The
// offending character (or the whole malformed numeric literal) is skipped,
// the diagnostic is recorded, and scanning continues, so one pass reports
// every problem in the source.
package spemath

import (
	"log/slog"
	"strconv"
	"unicode/utf8"
)

// Lexer scans a SpeMath source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 1-based column within line
	tokens []Token
	errs   LexErrors
	log    *slog.Logger

	// precise token start position
	tokStart Span
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string, opts ...Option) *Lexer {
	o := makeOptions(opts)
	return &Lexer{
		src:  src,
		line: 1,
		col:  1,
		log:  o.log,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) markStart() {
	l.start = l.cur
	l.tokStart = Span{Line: l.line, Col: l.col, Pos: l.cur}
}

func (l *Lexer) addToken(tt TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Span:   l.tokStart,
	})
}

func (l *Lexer) addNumber(v float64) {
	l.tokens = append(l.tokens, Token{
		Type:   NUMBER,
		Lexeme: l.src[l.start:l.cur],
		Num:    v,
		Span:   l.tokStart,
	})
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	l.addToken(ID)
}

// scanNumber parses a numeric literal: optional leading digits, at most one
// decimal point, and at most one exponent marker with an optional sign.
//
// A second decimal point or a second exponent marker does not split the
// literal into two tokens. The scanner consumes greedily through the whole
// malformed tail and reports a single InvalidNumberFormat covering it, which
// keeps the diagnostic aligned with what the user actually typed.
func (l *Lexer) scanNumber() {
	sawDot := false
	sawExp := false

	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		switch {
		case isDigit(b):
			l.advance()

		case b == '.':
			if sawDot || sawExp {
				l.consumeMalformedTail()
				return
			}
			sawDot = true
			l.advance()

		case b == 'e' || b == 'E':
			if sawExp {
				l.consumeMalformedTail()
				return
			}
			sawExp = true
			l.advance()
			if s, ok := l.peek(); ok && (s == '+' || s == '-') {
				l.advance()
			}

		default:
			goto done
		}
	}
done:

	lex := l.src[l.start:l.cur]
	v, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		l.errf(InvalidNumberFormat, 0, lex)
		return
	}
	l.addNumber(v)
}

// consumeMalformedTail eats the rest of a run-on numeric literal (digits,
// dots, exponent markers and signs) so the whole thing is reported once.
func (l *Lexer) consumeMalformedTail() {
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		switch b {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.', 'e', 'E', '+', '-':
			l.advance()
		default:
			l.errf(InvalidNumberFormat, 0, l.src[l.start:l.cur])
			return
		}
	}
	l.errf(InvalidNumberFormat, 0, l.src[l.start:l.cur])
}

func (l *Lexer) errf(kind LexErrorKind, ch rune, literal string) {
	e := &LexError{
		Kind:    kind,
		Char:    ch,
		Literal: literal,
		Line:    l.tokStart.Line,
		Col:     l.tokStart.Col,
	}
	l.log.Debug("lex error", "err", e)
	l.errs = append(l.errs, e)
}

// lineComment eats "//" to end of line. The newline itself is left for the
// main loop, so statement separation is unaffected by a trailing comment.
func (l *Lexer) lineComment() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

// blockComment eats "/*" through the next "*/" (non-nested). An unterminated
// block comment simply runs to EOF; the original grammar treats that as
// benign.
func (l *Lexer) blockComment() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		if b == '*' {
			if b2, ok2 := l.peekN(1); ok2 && b2 == '/' {
				l.advance()
				l.advance()
				return
			}
		}
		l.advance()
	}
}

// twoChar emits `double` if the next byte is '=', else `single`.
func (l *Lexer) twoChar(single, double TokenType) {
	if b, ok := l.peek(); ok && b == '=' {
		l.advance()
		l.addToken(double)
		return
	}
	l.addToken(single)
}

// Tokenize scans the entire source. On success it returns the token stream
// (EOF included, layout tokens preserved). If any lexical errors occurred it
// returns them all, in source order, as a LexErrors value.
func (l *Lexer) Tokenize() ([]Token, error) {
	l.log.Debug("tokenize", "len", len(l.src))

	for !l.isAtEnd() {
		l.markStart()
		ch, _ := l.advance()

		switch ch {
		case ' ', '\t':
			l.addToken(WHITESPACE)
		case '\n':
			l.addToken(NEWLINE)
		case '\r':
			// discarded
		case '+':
			l.addToken(PLUS)
		case '-':
			l.addToken(MINUS)
		case '*':
			l.addToken(MULT)
		case '/':
			if b, ok := l.peek(); ok && b == '/' {
				l.advance()
				l.lineComment()
			} else if ok && b == '*' {
				l.advance()
				l.blockComment()
			} else {
				l.addToken(DIV)
			}
		case '%':
			l.addToken(MOD)
		case '^':
			l.addToken(POW)
		case '(':
			l.addToken(LROUND)
		case ')':
			l.addToken(RROUND)
		case '[':
			l.addToken(LSQUARE)
		case ']':
			l.addToken(RSQUARE)
		case '{':
			l.addToken(LCURLY)
		case '}':
			l.addToken(RCURLY)
		case ',':
			l.addToken(COMMA)
		case ';':
			l.addToken(SEMICOLON)
		case '=':
			l.twoChar(ASSIGN, EQ)
		case '!':
			l.twoChar(BANG, NEQ)
		case '<':
			l.twoChar(LESS, LESS_EQ)
		case '>':
			l.twoChar(GREATER, GREATER_EQ)

		default:
			switch {
			case isDigit(ch) || ch == '.':
				l.cur = l.start // rescan from the first byte
				l.col = l.tokStart.Col
				l.scanNumber()
			case isAlpha(ch):
				l.scanIdentifier()
			default:
				r := rune(ch)
				if ch >= utf8.RuneSelf {
					// Multi-byte rune: decode it whole so the diagnostic
					// names the character. The continuation bytes bump the
					// cursor only; columns count characters, not bytes.
					var size int
					r, size = utf8.DecodeRuneInString(l.src[l.start:])
					l.cur = l.start + size
				}
				l.errf(UnexpectedCharacter, r, "")
			}
		}
	}

	l.markStart()
	l.addToken(EOF)

	if len(l.errs) > 0 {
		return nil, l.errs
	}
	return l.tokens, nil
}
