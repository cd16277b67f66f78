package spemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalAll parses src and feeds every statement to one evaluator, returning
// each statement's outcome. Statement-level faults are collected, not fatal,
// matching the driver loop.
func evalAll(t *testing.T, src string) (*Evaluator, []Value, []error) {
	t.Helper()
	ev := NewEvaluator()
	var vals []Value
	var errs []error
	for _, expr := range parse(t, src) {
		v, err := ev.Eval(expr)
		vals = append(vals, v)
		errs = append(errs, err)
	}
	return ev, vals, errs
}

// evalLast returns the value of the final statement, requiring every
// statement to succeed.
func evalLast(t *testing.T, src string) Value {
	t.Helper()
	_, vals, errs := evalAll(t, src)
	require.NotEmpty(t, vals)
	for i, err := range errs {
		require.NoError(t, err, "statement %d", i)
	}
	return vals[len(vals)-1]
}

func evalErr(t *testing.T, src string) *EvalError {
	t.Helper()
	_, _, errs := evalAll(t, src)
	require.NotEmpty(t, errs)
	last := errs[len(errs)-1]
	require.Error(t, last)
	var ee *EvalError
	require.ErrorAs(t, last, &ee)
	return ee
}

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 - 3", 3},
		{"7 / 2", 3.5},
		{"2 ^ 3 ^ 2", 512},
		{"-(2 + 3)", -5},
	}
	for _, c := range cases {
		v := evalLast(t, c.src)
		require.Equal(t, ValNumber, v.Tag, c.src)
		assert.Equal(t, c.want, v.Num, c.src)
	}
}

func TestEvalImplicitMultiplication(t *testing.T) {
	v := evalLast(t, "x = 3\n2x ^ 2")
	require.Equal(t, ValNumber, v.Tag)
	assert.Equal(t, 18.0, v.Num)
}

func TestEvalDivisionByZero(t *testing.T) {
	v := evalLast(t, "1 / 0")
	require.Equal(t, ValNumber, v.Tag)
	assert.True(t, math.IsInf(v.Num, 1))

	v = evalLast(t, "0 / 0")
	assert.True(t, math.IsNaN(v.Num))
}

func TestEvalAssignment(t *testing.T) {
	ev, vals, errs := evalAll(t, "x = 5")
	require.NoError(t, errs[0])
	assert.Equal(t, Unit, vals[0])

	v, ok := ev.Env().Get("x")
	require.True(t, ok)
	assert.Equal(t, Number(5), v)
}

func TestEvalUnknownVariable(t *testing.T) {
	ee := evalErr(t, "nope")
	assert.Equal(t, UnknownVariable, ee.Kind)
	assert.Equal(t, "nope", ee.Name)
	assert.EqualError(t, ee, "Unknown variable: 'nope'")
}

func TestEvalFunctionDefinitionAndCall(t *testing.T) {
	v := evalLast(t, "f(x, y) = x + y\nf(2, 3)")
	assert.Equal(t, Number(5), v)
}

func TestEvalFunctionBodyNotEvaluatedAtDefinition(t *testing.T) {
	// 'a' does not exist yet; defining f must not touch it.
	_, vals, errs := evalAll(t, "f(x) = x + a")
	require.NoError(t, errs[0])
	assert.Equal(t, Unit, vals[0])
}

func TestEvalSnapshotScoping(t *testing.T) {
	// A binding made after the definition but before the call is visible:
	// the environment is captured at call time, not definition time.
	v := evalLast(t, "f(x) = x + a\na = 10\nf(1)")
	assert.Equal(t, Number(11), v)

	// Calling before the binding exists fails.
	ee := evalErr(t, "f(x) = x + a\nf(1)")
	assert.Equal(t, UnknownVariable, ee.Kind)
	assert.Equal(t, "a", ee.Name)
}

func TestEvalSelfReferenceInBody(t *testing.T) {
	// The function's own binding is in the call snapshot.
	v := evalLast(t, "f(x) = f\nf(1)")
	require.Equal(t, ValFunction, v.Tag)
	assert.Equal(t, []string{"x"}, v.Fn.Params)
}

func TestEvalParameterShadowing(t *testing.T) {
	ev, vals, errs := evalAll(t, "x = 10\nf(x) = x\nf(1)")
	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, Number(1), vals[2])

	// The parameter binding lives in the call frame only.
	x, ok := ev.Env().Get("x")
	require.True(t, ok)
	assert.Equal(t, Number(10), x)
}

func TestEvalCallDoesNotLeakBindings(t *testing.T) {
	ev, _, errs := evalAll(t, "f(p) = p\nf(1)")
	for _, err := range errs {
		require.NoError(t, err)
	}
	// The parameter binding lived only in the call snapshot.
	_, ok := ev.Env().Get("p")
	assert.False(t, ok)
}

func TestEvalNotCallable(t *testing.T) {
	ee := evalErr(t, "x = 5\nx(1)")
	assert.Equal(t, NotCallable, ee.Kind)
	assert.EqualError(t, ee, "Attempted to call a non-function value: 5")
}

func TestEvalArityMismatch(t *testing.T) {
	ee := evalErr(t, "f(x) = x\nf(1, 2)")
	assert.Equal(t, ArityMismatch, ee.Kind)
	assert.Equal(t, 1, ee.Want)
	assert.Equal(t, 2, ee.Got)
	assert.EqualError(t, ee, "Function expected 1 arguments but got 2")
}

func TestEvalUnsupportedOperations(t *testing.T) {
	ee := evalErr(t, "5 % 2")
	assert.Equal(t, UnsupportedOperation, ee.Kind)

	ee = evalErr(t, "1 < 2")
	assert.Equal(t, UnsupportedOperation, ee.Kind)

	ee = evalErr(t, "f(x) = x\nf + 1")
	assert.Equal(t, UnsupportedOperation, ee.Kind)
}

func TestEvalInvalidUnary(t *testing.T) {
	ee := evalErr(t, "f(x) = x\n-f")
	assert.Equal(t, InvalidUnary, ee.Kind)
}

func TestEvalStatementIsolation(t *testing.T) {
	// The failing middle statement must not stop the last one.
	_, vals, errs := evalAll(t, "x = 1\nnope\nx + 1")
	require.Error(t, errs[1])
	require.NoError(t, errs[2])
	assert.Equal(t, Number(2), vals[2])
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "3.5", Number(3.5).String())
	assert.Equal(t, "12300", Number(1.23e4).String())
	assert.Equal(t, "0.056", Number(5.6e-2).String())
	assert.Equal(t, "()", Unit.String())

	fn := FunctionVal(&Function{Params: []string{"x", "y"}})
	assert.Equal(t, "<fun(x, y)>", fn.String())
}
