package checker

import (
	"fmt"

	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/term"
)

// EvalError is a failure internal to Eval (spec §4.2): a projection from
// something that is neither a pair nor a stuck (irreducible-for-now)
// form. A variable with no value binding is not an EvalError; Eval
// returns it unchanged. The checker wraps it as diagnostics.Eval before
// surfacing it.
type EvalError struct {
	msg string
}

func (e *EvalError) Error() string { return e.msg }

func evalError(format string, args ...any) error {
	return &EvalError{msg: fmt.Sprintf(format, args...)}
}

// Eval performs weak normalization of t under c's current value
// environment and hole store (spec §4.2): it unfolds known variables and
// solved holes, reduces beta-redexes, projects explicit pairs, and
// reduces IdJ on Refl. It never enters a binder except to rename for
// capture avoidance, so stuck sub-terms under a Lambda/Pi/Sigma/
// ExtensionType are left untouched.
func Eval(c *Context, t term.Term) (term.Term, error) {
	switch t := t.(type) {
	case term.Var:
		if v, ok := c.EnvValue(t.Name); ok {
			return Eval(c, v)
		}
		return t, nil
	case term.Hole:
		if v, ok := c.Holes().Lookup(t.Name); ok {
			return Eval(c, v)
		}
		return t, nil
	case term.TypedTerm:
		return Eval(c, t.Term)
	case term.App:
		fun, err := Eval(c, t.Fun)
		if err != nil {
			return nil, err
		}
		if lam, ok := fun.(term.Lambda); ok {
			return Eval(c, term.SubstVar(lam.Body, lam.Var, t.Arg))
		}
		return term.App{Fun: fun, Arg: t.Arg}, nil
	case term.First:
		p, err := Eval(c, t.Pair)
		if err != nil {
			return nil, err
		}
		if pair, ok := p.(term.Pair); ok {
			return Eval(c, pair.Fst)
		}
		if !isStuck(p) {
			return nil, evalError("first: %s is not a pair", p)
		}
		return term.First{Pair: p}, nil
	case term.Second:
		p, err := Eval(c, t.Pair)
		if err != nil {
			return nil, err
		}
		if pair, ok := p.(term.Pair); ok {
			return Eval(c, pair.Snd)
		}
		if !isStuck(p) {
			return nil, evalError("second: %s is not a pair", p)
		}
		return term.Second{Pair: p}, nil
	case term.IdJ:
		p, err := Eval(c, t.P)
		if err != nil {
			return nil, err
		}
		if _, ok := p.(term.Refl); ok {
			return Eval(c, t.D)
		}
		return term.IdJ{A: t.A, A0: t.A0, C: t.C, D: t.D, X: t.X, P: p}, nil
	default:
		return t, nil
	}
}

// isStuck reports whether t is a form that might still reduce once more
// information is available (a variable, hole, or an application/
// projection/eliminator blocked on one) rather than a genuine type error.
func isStuck(t term.Term) bool {
	switch t := t.(type) {
	case term.Var, term.Hole, term.App, term.First, term.Second, term.IdJ, term.RecOr, term.RecBottom:
		return true
	case term.TypedTerm:
		return isStuck(t.Term)
	}
	return false
}

// mustEval wraps Eval's EvalError into the checker's TypeError taxonomy
// (spec §7: Eval(t, evalError)).
func mustEval(c *Context, t term.Term) (term.Term, error) {
	v, err := Eval(c, t)
	if err != nil {
		return nil, diagnostics.Eval(t, err)
	}
	return v, nil
}
