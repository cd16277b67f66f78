// eval.go — tree-walking evaluator with snapshot-at-call scoping.
//
// The evaluator walks one top-level expression at a time against a mutable
// environment it owns. A failure in one statement does not poison the next:
// the caller's loop (see run.go) reports the error and moves on.
//
// Calls do not capture lexical closures. Applying a function clones the
// caller's environment at call time, binds the evaluated arguments into the
// clone, and evaluates the body against the clone. The function's own
// binding is already present in that snapshot, so direct self-recursion
// works; bindings created after the definition, or by sibling calls, are
// invisible inside the body. Do not "fix" this to lexical closures: the
// snapshot is the language's scoping rule.
//
// The core has no recursion depth guard: a host exposing this to untrusted
// input must bound evaluation externally.
package spemath

import (
	"log/slog"
	"math"
)

// Evaluator evaluates expressions against its environment.
type Evaluator struct {
	env *Env
	log *slog.Logger
}

// NewEvaluator creates an evaluator with a fresh empty environment.
func NewEvaluator(opts ...Option) *Evaluator {
	o := makeOptions(opts)
	return &Evaluator{env: NewEnv(), log: o.log}
}

// Env exposes the evaluator's environment (REPL tooling inspects it).
func (ev *Evaluator) Env() *Env { return ev.env }

// Eval evaluates one top-level expression. Assignments and function
// definitions mutate the environment and yield Unit; everything else yields
// a Value or an *EvalError.
func (ev *Evaluator) Eval(expr Expr) (Value, error) {
	switch n := expr.(type) {
	case *NumberLit:
		return Number(n.Value), nil

	case *Ident:
		v, ok := ev.env.Get(n.Name)
		if !ok {
			return Unit, &EvalError{Kind: UnknownVariable, Name: n.Name}
		}
		return v, nil

	case *Unary:
		v, err := ev.Eval(n.Operand)
		if err != nil {
			return Unit, err
		}
		if v.Tag != ValNumber {
			return Unit, &EvalError{Kind: InvalidUnary, Op: n.Op, Operand: v.kind()}
		}
		if n.Op == MINUS {
			return Number(-v.Num), nil
		}
		return v, nil

	case *Binary:
		return ev.evalBinary(n)

	case *Assign:
		v, err := ev.Eval(n.Value)
		if err != nil {
			return Unit, err
		}
		ev.env.Set(n.Target, v)
		return Unit, nil

	case *FuncDef:
		// The body is not evaluated at definition time.
		ev.env.Set(n.Name, FunctionVal(&Function{Params: n.Params, Body: n.Body}))
		return Unit, nil

	case *Call:
		return ev.evalCall(n)

	default:
		return Unit, &EvalError{Kind: UnsupportedOperation}
	}
}

func (ev *Evaluator) evalBinary(n *Binary) (Value, error) {
	l, err := ev.Eval(n.Left)
	if err != nil {
		return Unit, err
	}
	r, err := ev.Eval(n.Right)
	if err != nil {
		return Unit, err
	}

	if l.Tag == ValNumber && r.Tag == ValNumber {
		switch n.Op {
		case PLUS:
			return Number(l.Num + r.Num), nil
		case MINUS:
			return Number(l.Num - r.Num), nil
		case MULT:
			return Number(l.Num * r.Num), nil
		case DIV:
			// Ordinary float division: /0 is ±Inf or NaN, not an error.
			return Number(l.Num / r.Num), nil
		case POW:
			return Number(math.Pow(l.Num, r.Num)), nil
		}
	}

	// Everything else ('%', comparisons, non-numeric operands) is reserved
	// surface: it parses, but the evaluator does not define it.
	return Unit, &EvalError{Kind: UnsupportedOperation, Op: n.Op, LHS: l.kind(), RHS: r.kind()}
}

func (ev *Evaluator) evalCall(n *Call) (Value, error) {
	callee, err := ev.Eval(n.Callee)
	if err != nil {
		return Unit, err
	}
	if callee.Tag != ValFunction {
		return Unit, &EvalError{Kind: NotCallable, Operand: callee.String()}
	}
	fn := callee.Fn
	if len(fn.Params) != len(n.Args) {
		return Unit, &EvalError{Kind: ArityMismatch, Want: len(fn.Params), Got: len(n.Args)}
	}

	// Arguments evaluate against the caller's current environment; the
	// parameters then bind into a snapshot of that same environment.
	snapshot := ev.env.Clone()
	for i, argExpr := range n.Args {
		v, err := ev.Eval(argExpr)
		if err != nil {
			return Unit, err
		}
		snapshot.Set(fn.Params[i], v)
	}

	ev.log.Debug("call", "params", fn.Params, "args", len(n.Args), "env", snapshot.Len())

	frame := &Evaluator{env: snapshot, log: ev.log}
	return frame.Eval(fn.Body)
}
