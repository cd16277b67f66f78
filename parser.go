// parser.go — precedence-climbing (Pratt) parser for SpeMath.
//
// The parser consumes the token stream produced by the whitespace-preserving
// lexer (see lexer.go) and builds a list of top-level expression trees, one
// per statement. Statements are separated by newlines or semicolons.
//
// Three disambiguation rules depend on layout tokens surviving the lexer:
//
//   - Call vs grouping: '(' directly adjacent to an identifier (no
//     whitespace between) opens an argument list; any other '(' opens a
//     grouped sub-expression.
//   - Implicit multiplication: a number or identifier directly adjacent to a
//     preceding number, identifier, or ')' is an implied '*' at Product
//     precedence. Whitespace between the two always suppresses it.
//   - Call vs definition vs assignment: when '=' is reached, a call-shaped
//     left side over a bare identifier is reinterpreted as a function
//     definition, a bare identifier becomes an assignment, and anything
//     else is an invalid assignment target.
//
// Parsing is batch-oriented: an error inside one statement is recorded, the
// parser synchronizes to the next statement boundary, and parsing resumes,
// so one pass reports every diagnostic in encounter order.
package spemath

import "log/slog"

type precedence int

const (
	precLowest precedence = iota
	precAssignment
	precComparison
	precSum
	precProduct
	precPower
	precPrefix
	precCall
)

func precedenceOf(t TokenType) precedence {
	switch t {
	case ASSIGN:
		return precAssignment
	case EQ, NEQ, LESS, LESS_EQ, GREATER, GREATER_EQ:
		return precComparison
	case PLUS, MINUS:
		return precSum
	case MULT, DIV, MOD:
		return precProduct
	case POW:
		return precPower
	case LROUND:
		return precCall
	default:
		return precLowest
	}
}

// Parser builds expression trees from a token stream.
type Parser struct {
	toks []Token
	pos  int
	errs ParseErrors
	log  *slog.Logger
}

// NewParser creates a parser over tokens. The stream is expected to end with
// an EOF token; one is appended if missing so lookahead never runs off the
// end.
func NewParser(toks []Token, opts ...Option) *Parser {
	o := makeOptions(opts)
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		toks = append(toks, Token{Type: EOF})
	}
	return &Parser{toks: toks, log: o.log}
}

// Parse consumes the whole stream. On success it returns the top-level
// expressions in source order. If any statement failed to parse it returns
// every recorded diagnostic, in encounter order, as a ParseErrors value.
func (p *Parser) Parse() ([]Expr, error) {
	exprs := p.program()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return exprs, nil
}

// ----- token basics -----

func (p *Parser) current() Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() { p.pos++ }

func (p *Parser) skipWhitespace() {
	for p.current().Type == WHITESPACE {
		p.advance()
	}
}

// hasWhitespaceBefore reports whether the token at the cursor is directly
// preceded by a whitespace token. This is the adjacency signal behind the
// call and implicit-multiplication rules.
func (p *Parser) hasWhitespaceBefore() bool {
	return p.pos > 0 && p.pos-1 < len(p.toks) && p.toks[p.pos-1].Type == WHITESPACE
}

// prevSignificant walks back past whitespace to the last consumed token.
func (p *Parser) prevSignificant() (Token, bool) {
	for i := p.pos - 1; i >= 0; i-- {
		if p.toks[i].Type != WHITESPACE {
			return p.toks[i], true
		}
	}
	return Token{}, false
}

func (p *Parser) expect(tt TokenType, desc string) error {
	p.skipWhitespace()
	cur := p.current()
	if cur.Type == tt {
		p.advance()
		return nil
	}
	if cur.Type == EOF {
		return &ParseError{Kind: UnexpectedEOF, Expected: desc, Span: cur.Span}
	}
	return &ParseError{Kind: ExpectedToken, Expected: desc, Found: cur, Span: cur.Span}
}

// ----- program / recovery -----

func (p *Parser) program() []Expr {
	var exprs []Expr
	for {
		switch p.current().Type {
		case EOF:
			return exprs
		case NEWLINE, SEMICOLON, WHITESPACE:
			p.advance()
		default:
			e, err := p.expression(precLowest)
			if err != nil {
				if pe, ok := err.(*ParseError); ok {
					p.errs = append(p.errs, pe)
				}
				p.synchronize()
				continue
			}
			exprs = append(exprs, e)
		}
	}
}

// synchronize skips tokens until just past the next statement boundary, so
// one malformed statement yields exactly one diagnostic.
func (p *Parser) synchronize() {
	for {
		switch p.current().Type {
		case EOF:
			return
		case SEMICOLON, NEWLINE:
			p.advance()
			return
		default:
			p.advance()
		}
	}
}

// ----- precedence climbing -----

func (p *Parser) expression(prec precedence) (Expr, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}

	for {
		p.skipWhitespace()
		tok := p.current()

		switch {
		case tok.Type == EOF || tok.Type == NEWLINE || tok.Type == SEMICOLON:
			return left, nil

		case tok.Type == ASSIGN:
			if precAssignment <= prec {
				return left, nil
			}
			left, err = p.assignOrDefine(left)
			if err != nil {
				return nil, err
			}

		case tok.Type == LROUND:
			adjacent := !p.hasWhitespaceBefore()
			if _, isIdent := left.(*Ident); isIdent && adjacent && prec < precProduct {
				args, err := p.arguments()
				if err != nil {
					return nil, err
				}
				left = &Call{Callee: left, Args: args}
			} else if adjacent {
				// "(...)(...)" and friends: adjacency implies multiplication.
				if precProduct <= prec {
					return left, nil
				}
				right, err := p.expression(precProduct)
				if err != nil {
					return nil, err
				}
				left = &Binary{Left: left, Op: MULT, Right: right}
			} else {
				return left, nil
			}

		case p.isImplicitMultiplication(tok):
			p.log.Debug("implicit multiplication", "line", tok.Span.Line, "col", tok.Span.Col)
			if precProduct < prec {
				return left, nil
			}
			right, err := p.expression(precProduct)
			if err != nil {
				return nil, err
			}
			left = &Binary{Left: left, Op: MULT, Right: right}

		default:
			tokPrec := precedenceOf(tok.Type)
			// '^' recurses at its own level, making it right-associative.
			var done bool
			if tok.Type == POW {
				done = tokPrec < prec
			} else {
				done = tokPrec <= prec
			}
			if done {
				return left, nil
			}
			p.advance()
			right, err := p.expression(tokPrec)
			if err != nil {
				return nil, err
			}
			left = &Binary{Left: left, Op: tok.Type, Right: right}
		}
	}
}

// assignOrDefine resolves what '=' means for the accumulated left side:
// a call over a bare identifier is a function definition, a bare identifier
// is an assignment, anything else is an error.
func (p *Parser) assignOrDefine(left Expr) (Expr, error) {
	switch lhs := left.(type) {
	case *Call:
		callee, ok := lhs.Callee.(*Ident)
		if !ok {
			return nil, &ParseError{Kind: InvalidFunctionDefinition, Span: p.current().Span}
		}
		params := make([]string, 0, len(lhs.Args))
		for _, arg := range lhs.Args {
			id, ok := arg.(*Ident)
			if !ok {
				return nil, &ParseError{Kind: InvalidFunctionParameter, Offending: arg, Span: p.current().Span}
			}
			params = append(params, id.Name)
		}
		p.advance() // consume '='
		body, err := p.expression(precAssignment)
		if err != nil {
			return nil, err
		}
		p.log.Debug("function definition", "name", callee.Name, "params", params)
		return &FuncDef{Name: callee.Name, Params: params, Body: body}, nil

	case *Ident:
		p.advance()
		// The value is parsed at Assignment precedence, so a second '='
		// terminates it and x = y = 1 is rejected, not chained.
		value, err := p.expression(precAssignment)
		if err != nil {
			return nil, err
		}
		return &Assign{Target: lhs.Name, Value: value}, nil

	default:
		return nil, &ParseError{Kind: InvalidAssignment, Offending: left, Span: p.current().Span}
	}
}

// prefix parses the operand that starts an expression.
func (p *Parser) prefix() (Expr, error) {
	p.skipWhitespace()
	tok := p.current()

	switch tok.Type {
	case NUMBER:
		p.advance()
		return &NumberLit{Value: tok.Num}, nil

	case ID:
		p.advance()
		return &Ident{Name: tok.Lexeme}, nil

	case MINUS, PLUS:
		p.advance()
		operand, err := p.expression(precPrefix)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: tok.Type, Operand: operand}, nil

	case LROUND:
		p.advance()
		inner, err := p.expression(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(RROUND, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case EOF:
		return nil, &ParseError{Kind: UnexpectedEOF, Expected: "expression", Span: tok.Span}

	default:
		return nil, &ParseError{Kind: UnexpectedToken, Found: tok, Span: tok.Span}
	}
}

// arguments parses a comma-separated, possibly empty list closed by ')'.
// The opening '(' must be at the cursor.
func (p *Parser) arguments() ([]Expr, error) {
	if err := p.expect(LROUND, "'('"); err != nil {
		return nil, err
	}
	var args []Expr
	p.skipWhitespace()
	if p.current().Type != RROUND {
		for {
			a, err := p.expression(precLowest)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			p.skipWhitespace()
			if p.current().Type != COMMA {
				break
			}
			p.advance()
		}
	}
	if err := p.expect(RROUND, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

// isImplicitMultiplication reports whether tok, in infix position, should be
// read as the right operand of an implied '*': it must be a number or
// identifier, directly adjacent (no whitespace) to a preceding number,
// identifier, or ')'.
func (p *Parser) isImplicitMultiplication(tok Token) bool {
	if p.hasWhitespaceBefore() {
		return false
	}
	if tok.Type != NUMBER && tok.Type != ID {
		return false
	}
	prev, ok := p.prevSignificant()
	if !ok {
		return false
	}
	switch prev.Type {
	case NUMBER, ID, RROUND:
		return true
	default:
		return false
	}
}
