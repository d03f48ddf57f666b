package checker

import (
	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/term"
)

// inferTypeFamily checks that a Pi/Sigma's Family is a well-formed type
// family and returns its universe (spec §4.6): `\x : A -> B` is a family
// when B is a type under x : A; `\x : A, phi -> B` is a family when B is
// a type under x : A, phi (a cube-indexed, tope-guarded family).
func inferTypeFamily(c *Context, l term.Lambda) (term.Term, error) {
	if l.Ann == nil {
		return nil, diagnostics.InvalidTypeFamily(l)
	}
	if l.Tope != nil {
		if err := Check(c, l.Ann, term.Cube{}); err != nil {
			return nil, err
		}
	} else {
		if err := Check(c, l.Ann, term.Universe{}); err != nil {
			return nil, err
		}
	}
	bodyTyp, err := LocalTyping(c, l.Var, l.Ann, func() (term.Term, error) {
		if l.Tope != nil {
			if err := Check(c, l.Tope, term.Tope{}); err != nil {
				return nil, err
			}
			return LocalConstraint(c, l.Tope, func() (term.Term, error) {
				return Infer(c, l.Body)
			})
		}
		return Infer(c, l.Body)
	})
	if err != nil {
		return nil, err
	}
	if _, ok := bodyTyp.(term.Universe); !ok {
		return nil, diagnostics.InvalidTypeFamily(l)
	}
	return term.Universe{}, nil
}
