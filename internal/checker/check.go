package checker

import (
	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/term"
)

// Check verifies t against the expected type a (spec §4.6). Variables and
// holes (unify with a recorded type, else record a) and canonical forms
// (Lambda, Pair) get dedicated rules; everything else falls back to
// synthesizing t's type with Infer and unifying it against a.
func Check(c *Context, t term.Term, a term.Term) error {
	aN, err := EvalType(c, a)
	if err != nil {
		return err
	}
	switch t := t.(type) {
	case term.Var:
		if prev, ok := c.LookupType(t.Name); ok {
			return Unify(c, prev, aN)
		}
		c.SetType(t.Name, aN)
		return nil
	case term.Hole:
		if prev, ok := c.LookupType(t.Name); ok {
			return Unify(c, prev, aN)
		}
		c.SetType(t.Name, aN)
		return nil
	case term.Lambda:
		return checkLambda(c, t, aN)
	case term.Pair:
		return checkPair(c, t, aN)
	}
	inferred, err := Infer(c, t)
	if err != nil {
		return err
	}
	return Unify(c, inferred, aN)
}

func checkLambda(c *Context, l term.Lambda, a term.Term) error {
	switch a := a.(type) {
	case term.Pi:
		return checkLambdaAgainstPi(c, l, a)
	case term.ExtensionType:
		return checkLambdaAgainstExtensionType(c, l, a)
	default:
		return diagnostics.ExpectedFunctionType(l, a)
	}
}

func checkLambdaAgainstPi(c *Context, l term.Lambda, pi term.Pi) error {
	dom := pi.Family.Ann
	if l.Ann != nil {
		if err := Unify(c, l.Ann, dom); err != nil {
			return err
		}
	}
	x := l.Var
	body := pi.Family.Body
	guard := pi.Family.Tope
	if pi.Family.Var != x {
		body = term.RenameVar(pi.Family.Var, x, body)
		guard = term.RenameVar(pi.Family.Var, x, guard)
	}
	return LocalTypingErr(c, x, dom, func() error {
		if guard != nil {
			if l.Tope != nil {
				if err := ensureEqTope(c, l.Tope, l.Tope, guard); err != nil {
					return err
				}
			}
			return LocalConstraintErr(c, guard, func() error {
				return Check(c, l.Body, body)
			})
		}
		return Check(c, l.Body, body)
	})
}

func checkLambdaAgainstExtensionType(c *Context, l term.Lambda, ext term.ExtensionType) error {
	if l.Ann != nil {
		if err := Unify(c, l.Ann, ext.Cube); err != nil {
			return err
		}
	}
	x := l.Var
	typ := ext.Type
	tope := ext.Tope
	boundaryTope := ext.BoundaryTope
	boundaryVal := ext.BoundaryVal
	if ext.Var != x {
		typ = term.RenameVar(ext.Var, x, typ)
		tope = term.RenameVar(ext.Var, x, tope)
		boundaryTope = term.RenameVar(ext.Var, x, boundaryTope)
		boundaryVal = term.RenameVar(ext.Var, x, boundaryVal)
	}
	return LocalTypingErr(c, x, ext.Cube, func() error {
		body := l.Body
		if l.Tope != nil {
			if err := ensureEqTope(c, l.Tope, l.Tope, tope); err != nil {
				return err
			}
		}
		return LocalConstraintErr(c, tope, func() error {
			if err := Check(c, body, typ); err != nil {
				return err
			}
			return LocalConstraintErr(c, boundaryTope, func() error {
				return Unify(c, body, boundaryVal)
			})
		})
	})
}

func checkPair(c *Context, p term.Pair, a term.Term) error {
	sig, ok := a.(term.Sigma)
	if !ok {
		// A bare pair of cube points also checks against a plain
		// CubeProd if both components check against its factors.
		if cp, ok := a.(term.CubeProd); ok {
			if err := Check(c, p.Fst, cp.I); err != nil {
				return err
			}
			return Check(c, p.Snd, cp.J)
		}
		return diagnostics.NotAPair(p, a, "pair")
	}
	if err := Check(c, p.Fst, sig.Family.Ann); err != nil {
		return err
	}
	snd := term.SubstVar(sig.Family.Body, sig.Family.Var, p.Fst)
	return Check(c, p.Snd, snd)
}
