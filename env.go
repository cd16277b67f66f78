// env.go — the name/value environment for one evaluation run.
package spemath

import "github.com/benbjohnson/immutable"

// Env maps names to values. Keys are exact, case-sensitive strings; a later
// Set for the same name wins.
//
// The storage is a persistent, structurally-shared map, so Clone is O(1):
// the snapshot a function call takes shares structure with the caller's
// environment, and writes on either side never leak to the other. This is
// the cheap form of the clone-per-call scoping the evaluator relies on.
type Env struct {
	vars *immutable.Map[string, Value]
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{vars: immutable.NewMap[string, Value](nil)}
}

// Get retrieves the binding for name.
func (e *Env) Get(name string) (Value, bool) {
	return e.vars.Get(name)
}

// Set binds name to v, replacing any previous binding.
func (e *Env) Set(name string, v Value) {
	e.vars = e.vars.Set(name, v)
}

// Clone returns an independent snapshot of the environment. Both sides can
// keep writing; neither sees the other's later writes.
func (e *Env) Clone() *Env {
	return &Env{vars: e.vars}
}

// Len reports the number of bindings.
func (e *Env) Len() int { return e.vars.Len() }
