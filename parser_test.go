package spemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) []Expr {
	t.Helper()
	toks := lex(t, src)
	exprs, err := NewParser(toks).Parse()
	require.NoError(t, err)
	return exprs
}

func parseOne(t *testing.T, src string) Expr {
	t.Helper()
	exprs := parse(t, src)
	require.Len(t, exprs, 1)
	return exprs[0]
}

func parseFail(t *testing.T, src string) ParseErrors {
	t.Helper()
	toks := lex(t, src)
	_, err := NewParser(toks).Parse()
	require.Error(t, err)
	var errs ParseErrors
	require.ErrorAs(t, err, &errs)
	return errs
}

func num(v float64) *NumberLit { return &NumberLit{Value: v} }
func id(name string) *Ident    { return &Ident{Name: name} }

func bin(l Expr, op TokenType, r Expr) *Binary {
	return &Binary{Left: l, Op: op, Right: r}
}

func TestParserPrecedence(t *testing.T) {
	e := parseOne(t, "1 + 2 * 3")
	require.Equal(t, bin(num(1), PLUS, bin(num(2), MULT, num(3))), e)
}

func TestParserLeftAssociativity(t *testing.T) {
	e := parseOne(t, "1 - 2 - 3")
	require.Equal(t, bin(bin(num(1), MINUS, num(2)), MINUS, num(3)), e)
}

func TestParserPowerRightAssociative(t *testing.T) {
	e := parseOne(t, "2 ^ 3 ^ 2")
	require.Equal(t, bin(num(2), POW, bin(num(3), POW, num(2))), e)
}

func TestParserGrouping(t *testing.T) {
	e := parseOne(t, "(1 + 2) * 3")
	require.Equal(t, bin(bin(num(1), PLUS, num(2)), MULT, num(3)), e)
}

func TestParserUnary(t *testing.T) {
	e := parseOne(t, "-x")
	require.Equal(t, &Unary{Op: MINUS, Operand: id("x")}, e)

	e = parseOne(t, "+5")
	require.Equal(t, &Unary{Op: PLUS, Operand: num(5)}, e)

	// Prefix binds looser than '^', so the base of the power is the
	// already-negated operand.
	e = parseOne(t, "-x ^ 2")
	require.Equal(t, bin(&Unary{Op: MINUS, Operand: id("x")}, POW, num(2)), e)
}

func TestParserComparison(t *testing.T) {
	e := parseOne(t, "x + 1 < 10")
	require.Equal(t, bin(bin(id("x"), PLUS, num(1)), LESS, num(10)), e)
}

func TestParserImplicitMultiplication(t *testing.T) {
	e := parseOne(t, "2x")
	require.Equal(t, bin(num(2), MULT, id("x")), e)

	e = parseOne(t, "(x + 1)(y + 2)")
	require.Equal(t,
		bin(bin(id("x"), PLUS, num(1)), MULT, bin(id("y"), PLUS, num(2))),
		e)

	// Implied '*' sits at Product, below '^'.
	e = parseOne(t, "2x ^ 2")
	require.Equal(t, bin(num(2), MULT, bin(id("x"), POW, num(2))), e)
}

func TestParserWhitespaceSuppressesImplicitMultiplication(t *testing.T) {
	exprs := parse(t, "2 x")
	require.Len(t, exprs, 2)
	assert.Equal(t, num(2), exprs[0])
	assert.Equal(t, id("x"), exprs[1])
}

func TestParserCalls(t *testing.T) {
	e := parseOne(t, "foo()")
	require.Equal(t, &Call{Callee: id("foo"), Args: nil}, e)

	e = parseOne(t, "max(1, x, 3)")
	require.Equal(t, &Call{
		Callee: id("max"),
		Args:   []Expr{num(1), id("x"), num(3)},
	}, e)
}

func TestParserCallVsGrouping(t *testing.T) {
	// A space before '(' turns the would-be call into two statements.
	exprs := parse(t, "f (1)")
	require.Len(t, exprs, 2)
	assert.Equal(t, id("f"), exprs[0])
	assert.Equal(t, num(1), exprs[1])
}

func TestParserFunctionDefinition(t *testing.T) {
	e := parseOne(t, "f(x, y) = x + y")
	require.Equal(t, &FuncDef{
		Name:   "f",
		Params: []string{"x", "y"},
		Body:   bin(id("x"), PLUS, id("y")),
	}, e)
}

func TestParserAssignment(t *testing.T) {
	e := parseOne(t, "x = 5")
	require.Equal(t, &Assign{Target: "x", Value: num(5)}, e)

	e = parseOne(t, "f(x) = x + 1")
	require.Equal(t, &FuncDef{
		Name:   "f",
		Params: []string{"x"},
		Body:   bin(id("x"), PLUS, num(1)),
	}, e)
}

func TestParserInvalidAssignment(t *testing.T) {
	errs := parseFail(t, "5 = x")
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidAssignment, errs[0].Kind)
}

func TestParserAssignmentDoesNotChain(t *testing.T) {
	// The right side of '=' parses at Assignment precedence, so a second
	// '=' has nothing valid on its left and the statement is rejected.
	errs := parseFail(t, "x = y = 1")
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidAssignment, errs[0].Kind)

	errs = parseFail(t, "f(x) = y = 1")
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidAssignment, errs[0].Kind)
}

func TestParserInvalidFunctionParameter(t *testing.T) {
	errs := parseFail(t, "f(2, x) = 1")
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidFunctionParameter, errs[0].Kind)
	assert.Equal(t, num(2), errs[0].Offending)
}

func TestParserUnexpectedToken(t *testing.T) {
	errs := parseFail(t, ")")
	require.Len(t, errs, 1)
	assert.Equal(t, UnexpectedToken, errs[0].Kind)
	assert.Equal(t, RROUND, errs[0].Found.Type)
}

func TestParserUnexpectedEOF(t *testing.T) {
	errs := parseFail(t, "(1 + 2")
	require.Len(t, errs, 1)
	assert.Equal(t, UnexpectedEOF, errs[0].Kind)
	assert.True(t, IsIncomplete(errs))
}

func TestParserRecovery(t *testing.T) {
	// Both statements are malformed; both diagnostics come back in order.
	errs := parseFail(t, "1 + ; 2 +")
	require.Len(t, errs, 2)
	assert.Equal(t, UnexpectedToken, errs[0].Kind)
	assert.Equal(t, UnexpectedEOF, errs[1].Kind)
	assert.False(t, IsIncomplete(errs))
}

func TestParserStatements(t *testing.T) {
	exprs := parse(t, "x = 1; y = 2\nz")
	require.Len(t, exprs, 3)
	assert.Equal(t, &Assign{Target: "x", Value: num(1)}, exprs[0])
	assert.Equal(t, &Assign{Target: "y", Value: num(2)}, exprs[1])
	assert.Equal(t, id("z"), exprs[2])
}

func TestParserEmptyInput(t *testing.T) {
	exprs := parse(t, "")
	assert.Empty(t, exprs)

	exprs = parse(t, " \n ; \n")
	assert.Empty(t, exprs)
}
