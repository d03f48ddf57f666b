// Package checker implements the typing context, hole store, tope
// entailment glue, and the bidirectional infer/check pair (spec §4.3,
// §4.6). It is grounded on the teacher's internal/symbols (SymbolTable,
// scope push/pop) and internal/analyzer (the mutually-recursive walker
// threading shared state through inference).
package checker

import (
	"fmt"
	"sort"

	"github.com/rzk-lang/rzkcore/internal/term"
)

// envEntry is one binding in the value environment (spec §3 Γ.env).
type envEntry struct {
	Var   term.Ident
	Value term.Term
}

// Context is the triple (typing assumptions, value environment, tope
// constraints) (spec §3). Spec §3 also lists a fourth component,
// tope_inclusions — the `forall x. Phi(x) => Psi(x)` facts a cube-indexed
// Pi's domain guard contributes — but that consequence is instead recomputed
// directly from the applied function's own Pi type each time it's needed
// (tope.go's unfoldConsequences), so no separate table is carried here; see
// DESIGN.md for why a persistent cache was rejected rather than attempted.
// Context is mutated in place by the Local* scoped operations; callers must
// not share one Context between goroutines (spec §5: single-threaded).
type Context struct {
	types map[term.Ident]term.Term
	env   []envEntry
	topes []term.Term

	holes *HoleStore

	freshCounter int
}

// NewContext creates an empty typing context with a fresh hole store.
func NewContext() *Context {
	return &Context{
		types: make(map[term.Ident]term.Term),
		holes: NewHoleStore(),
	}
}

// LookupType returns the declared type of x, if any.
func (c *Context) LookupType(x term.Ident) (term.Term, bool) {
	t, ok := c.types[x]
	return t, ok
}

// SetType records x's type, overwriting any previous one.
func (c *Context) SetType(x term.Ident, a term.Term) { c.types[x] = a }

// UnsetType removes any recorded type for x.
func (c *Context) UnsetType(x term.Ident) { delete(c.types, x) }

// Topes returns the ordered list of topes currently assumed true,
// newest last. Callers must treat the returned slice as read-only.
func (c *Context) Topes() []term.Term { return c.topes }

// EnvValue returns the most recently pushed value binding for x, if any.
func (c *Context) EnvValue(x term.Ident) (term.Term, bool) {
	for i := len(c.env) - 1; i >= 0; i-- {
		if c.env[i].Var == x {
			return c.env[i].Value, true
		}
	}
	return nil, false
}

// Holes exposes the hole store (unify and checker both need direct access
// to it; it is not scoped — holes are monotone, spec §3).
func (c *Context) Holes() *HoleStore { return c.holes }

// LocalTyping pushes x : a (a may be nil for "no annotation yet"), runs k,
// and restores x's prior type (or absence of one) on every exit path —
// including an error return (spec §4.3, §9 "Scoped state").
func LocalTyping[R any](c *Context, x term.Ident, a term.Term, k func() (R, error)) (R, error) {
	prev, hadPrev := c.types[x]
	if a != nil {
		c.types[x] = a
	} else {
		c.UnsetType(x)
	}
	defer func() {
		if hadPrev {
			c.types[x] = prev
		} else {
			c.UnsetType(x)
		}
	}()
	return k()
}

// LocalConstraint pushes phi onto the tope context, runs k, and pops it
// unconditionally on exit.
func LocalConstraint[R any](c *Context, phi term.Term, k func() (R, error)) (R, error) {
	c.topes = append(c.topes, phi)
	n := len(c.topes)
	defer func() { c.topes = c.topes[:n-1] }()
	return k()
}

// LocalVar pushes a value binding x := v (used by the evaluator to unfold
// a binder during evaluation), runs k, and pops it unconditionally on exit.
func LocalVar[R any](c *Context, x term.Ident, v term.Term, k func() (R, error)) (R, error) {
	c.env = append(c.env, envEntry{Var: x, Value: v})
	n := len(c.env)
	defer func() { c.env = c.env[:n-1] }()
	return k()
}

// Define permanently binds x := v in the value environment, unlike
// LocalVar's scoped push/pop — for top-level module declarations (spec
// §4.7), which stay visible to every later declaration in the run.
func (c *Context) Define(x term.Ident, v term.Term) {
	c.env = append(c.env, envEntry{Var: x, Value: v})
}

// FreshVar returns a new variable identifier disjoint from every name the
// context currently knows about plus the supplied extra set.
func (c *Context) FreshVar(base string, extra term.IdentSet) term.Ident {
	return c.freshIdent("$" + base, extra)
}

// FreshHole allocates and declares a new hole identifier.
func (c *Context) FreshHole(extra term.IdentSet) term.Ident {
	h := c.freshIdent("h", extra)
	c.holes.declare(h)
	return h
}

func (c *Context) freshIdent(base string, extra term.IdentSet) term.Ident {
	for {
		c.freshCounter++
		cand := term.Ident(fmt.Sprintf("%s%d", base, c.freshCounter))
		if extra.Has(cand) {
			continue
		}
		if _, ok := c.types[cand]; ok {
			continue
		}
		return cand
	}
}

// Dump renders the full context (known types, hole solutions, local
// topes, defined variables) for the CLI's error report (spec §6). Output
// is sorted for determinism.
func (c *Context) Dump() string {
	s := "known types:\n"
	names := make([]string, 0, len(c.types))
	for n := range c.types {
		names = append(names, string(n))
	}
	sort.Strings(names)
	for _, n := range names {
		s += fmt.Sprintf("  %s : %s\n", n, c.types[term.Ident(n)])
	}
	s += c.holes.Dump()
	s += "local topes:\n"
	for _, t := range c.topes {
		s += fmt.Sprintf("  %s\n", t)
	}
	s += "defined variables:\n"
	for _, e := range c.env {
		s += fmt.Sprintf("  %s := %s\n", e.Var, e.Value)
	}
	return s
}
