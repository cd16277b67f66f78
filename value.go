// value.go — the runtime value model.
package spemath

import (
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold. Every consumer
// switches exhaustively on the tag; a future value kind is a new constant
// here, never a dynamically-typed catch-all.
type ValueTag int

const (
	ValUnit     ValueTag = iota // result of assignments/definitions; never printed
	ValNumber                   // double-precision number
	ValFunction                 // user-defined function
)

// Value is the runtime carrier produced by evaluation.
type Value struct {
	Tag ValueTag
	Num float64
	Fn  *Function
}

// Function is a user-defined function value. It carries no environment:
// calling it snapshots the caller's environment at call time (see eval.go),
// which is what gives the language its dynamic, snapshot-at-call scoping.
type Function struct {
	Params []string
	Body   Expr
}

// Unit is the singleton unit value.
var Unit = Value{Tag: ValUnit}

// Number wraps a float64 into a Value.
func Number(f float64) Value { return Value{Tag: ValNumber, Num: f} }

// FunctionVal wraps a *Function into a Value.
func FunctionVal(fn *Function) Value { return Value{Tag: ValFunction, Fn: fn} }

// String renders the canonical textual form used for program output.
func (v Value) String() string {
	switch v.Tag {
	case ValNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case ValFunction:
		return "<fun(" + strings.Join(v.Fn.Params, ", ") + ")>"
	case ValUnit:
		return "()"
	default:
		return "<unknown>"
	}
}

// kind names the value's shape for diagnostics.
func (v Value) kind() string {
	switch v.Tag {
	case ValNumber:
		return "number"
	case ValFunction:
		return "function"
	default:
		return "unit"
	}
}
