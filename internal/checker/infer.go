package checker

import (
	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/term"
)

// Infer synthesizes t's type (spec §4.6). It is mutually recursive with
// Check, Unify and Entails — all four live in this package so the cycle
// compiles as ordinary same-package calls.
func Infer(c *Context, t term.Term) (term.Term, error) {
	switch t := t.(type) {
	case term.Var:
		a, ok := c.LookupType(t.Name)
		if !ok {
			a = term.Hole{Name: c.FreshHole(term.IdentSet{})}
			c.SetType(t.Name, a)
		}
		return a, nil
	case term.Hole:
		a, ok := c.LookupType(t.Name)
		if !ok {
			return nil, diagnostics.Other("cannot infer a type for unannotated hole ?" + string(t.Name))
		}
		return a, nil
	case term.TypedTerm:
		if _, err := Infer(c, t.Type); err != nil {
			return nil, err
		}
		if err := Check(c, t.Term, t.Type); err != nil {
			return nil, err
		}
		return t.Type, nil
	case term.Pi:
		return inferTypeFamily(c, t.Family)
	case term.Sigma:
		return inferTypeFamily(c, t.Family)
	case term.Lambda:
		return nil, diagnostics.CannotInferLambda(t)
	case term.App:
		return inferApp(c, t)
	case term.Pair:
		return inferPair(c, t)
	case term.First:
		pairTyp, err := inferCanonicalSigma(c, t.Pair, "first")
		if err != nil {
			return nil, err
		}
		return pairTyp.Family.Ann, nil
	case term.Second:
		pairTyp, err := inferCanonicalSigma(c, t.Pair, "second")
		if err != nil {
			return nil, err
		}
		return term.SubstVar(pairTyp.Family.Body, pairTyp.Family.Var, term.First{Pair: t.Pair}), nil
	case term.IdType:
		if _, err := Infer(c, t.A); err != nil {
			return nil, err
		}
		if err := Check(c, t.X, t.A); err != nil {
			return nil, err
		}
		if err := Check(c, t.Y, t.A); err != nil {
			return nil, err
		}
		return term.Universe{}, nil
	case term.Refl:
		if t.A != nil {
			if err := Check(c, t.X, t.A); err != nil {
				return nil, err
			}
			return term.IdType{A: t.A, X: t.X, Y: t.X}, nil
		}
		a, err := Infer(c, t.X)
		if err != nil {
			return nil, err
		}
		return term.IdType{A: a, X: t.X, Y: t.X}, nil
	case term.IdJ:
		return EvalType(c, term.App{Fun: term.App{Fun: t.C, Arg: t.X}, Arg: t.P})
	case term.Cube:
		return term.Universe{}, nil
	case term.CubeUnit:
		return term.Cube{}, nil
	case term.CubeUnitStar:
		return term.CubeUnit{}, nil
	case term.CubeProd:
		if err := Check(c, t.I, term.Cube{}); err != nil {
			return nil, err
		}
		if err := Check(c, t.J, term.Cube{}); err != nil {
			return nil, err
		}
		return term.Cube{}, nil
	case term.Cube2:
		return term.Cube{}, nil
	case term.Cube2_0:
		return term.Cube2{}, nil
	case term.Cube2_1:
		return term.Cube2{}, nil
	case term.Tope:
		return term.Universe{}, nil
	case term.TopeTop:
		return term.Tope{}, nil
	case term.TopeBottom:
		return term.Tope{}, nil
	case term.TopeOr:
		if err := Check(c, t.L, term.Tope{}); err != nil {
			return nil, err
		}
		if err := Check(c, t.R, term.Tope{}); err != nil {
			return nil, err
		}
		return term.Tope{}, nil
	case term.TopeAnd:
		if err := Check(c, t.L, term.Tope{}); err != nil {
			return nil, err
		}
		if err := Check(c, t.R, term.Tope{}); err != nil {
			return nil, err
		}
		return term.Tope{}, nil
	case term.TopeEQ:
		return term.Tope{}, nil
	case term.TopeLEQ:
		return term.Tope{}, nil
	case term.RecBottom:
		if err := ensureTopeContext(c, t, term.TopeBottom{}); err != nil {
			return nil, err
		}
		return term.Hole{Name: c.FreshHole(term.IdentSet{})}, nil
	case term.RecOr:
		return inferRecOr(c, t)
	case term.ExtensionType:
		return inferExtensionType(c, t)
	}
	return nil, diagnostics.Other("cannot infer a type for this term")
}

func isCubeType(t term.Term) bool {
	switch t.(type) {
	case term.Cube, term.CubeUnit, term.Cube2, term.CubeProd:
		return true
	}
	return false
}

func inferPair(c *Context, t term.Pair) (term.Term, error) {
	fstTyp, err1 := Infer(c, t.Fst)
	sndTyp, err2 := Infer(c, t.Snd)
	if err1 == nil && err2 == nil && isCubeType(fstTyp) && isCubeType(sndTyp) {
		return term.CubeProd{I: fstTyp, J: sndTyp}, nil
	}
	return nil, diagnostics.CannotInferPair(t)
}

func inferCanonicalSigma(c *Context, pair term.Term, projection string) (term.Sigma, error) {
	pairTyp, err := Infer(c, pair)
	if err != nil {
		return term.Sigma{}, err
	}
	typ, err := EvalType(c, pairTyp)
	if err != nil {
		return term.Sigma{}, err
	}
	sig, ok := typ.(term.Sigma)
	if !ok {
		return term.Sigma{}, diagnostics.NotAPair(pair, typ, projection)
	}
	return sig, nil
}

func inferApp(c *Context, t term.App) (term.Term, error) {
	funTyp, err := Infer(c, t.Fun)
	if err != nil {
		return nil, err
	}
	funTyp, err = EvalType(c, funTyp)
	if err != nil {
		return nil, err
	}
	switch funTyp := funTyp.(type) {
	case term.Pi:
		if funTyp.Family.Tope != nil {
			guard := term.SubstVar(funTyp.Family.Tope, funTyp.Family.Var, t.Arg)
			if err := ensureTopeContext(c, t, guard); err != nil {
				return nil, err
			}
		}
		if err := Check(c, t.Arg, funTyp.Family.Ann); err != nil {
			return nil, err
		}
		return term.SubstVar(funTyp.Family.Body, funTyp.Family.Var, t.Arg), nil
	case term.ExtensionType:
		if err := Check(c, t.Arg, funTyp.Cube); err != nil {
			return nil, err
		}
		guard := term.SubstVar(funTyp.Tope, funTyp.Var, t.Arg)
		if err := ensureTopeContext(c, t, guard); err != nil {
			return nil, err
		}
		return term.SubstVar(funTyp.Type, funTyp.Var, t.Arg), nil
	default:
		return nil, diagnostics.NotAFunction(t.Fun, funTyp, t.Arg)
	}
}

func inferRecOr(c *Context, t term.RecOr) (term.Term, error) {
	typA, err := LocalConstraint(c, t.Psi, func() (term.Term, error) {
		return Infer(c, t.A)
	})
	if err != nil {
		return nil, err
	}
	typB, err := LocalConstraint(c, t.Phi, func() (term.Term, error) {
		return Infer(c, t.B)
	})
	if err != nil {
		return nil, err
	}
	overlap := term.TopeAnd{L: t.Psi, R: t.Phi}
	_, err = LocalConstraint(c, overlap, func() (struct{}, error) {
		if err := Unify(c, t.A, t.B); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, Unify(c, typA, typB)
	})
	if err != nil {
		return nil, err
	}
	return typA, nil
}

func inferExtensionType(c *Context, t term.ExtensionType) (term.Term, error) {
	if err := Check(c, t.Cube, term.Cube{}); err != nil {
		return nil, err
	}
	return LocalTyping(c, t.Var, t.Cube, func() (term.Term, error) {
		if err := Check(c, t.Tope, term.Tope{}); err != nil {
			return nil, err
		}
		typTyp, err := LocalConstraint(c, t.Tope, func() (term.Term, error) {
			return Infer(c, t.Type)
		})
		if err != nil {
			return nil, err
		}
		if _, ok := typTyp.(term.Universe); !ok {
			return nil, diagnostics.InvalidTypeFamily(t)
		}
		if err := Check(c, t.BoundaryTope, term.Tope{}); err != nil {
			return nil, err
		}
		if err := ensureSubTope(c, t, t.BoundaryTope, t.Tope); err != nil {
			return nil, err
		}
		_, err = LocalConstraint(c, t.BoundaryTope, func() (struct{}, error) {
			return struct{}{}, Check(c, t.BoundaryVal, t.Type)
		})
		if err != nil {
			return nil, err
		}
		return term.Universe{}, nil
	})
}
