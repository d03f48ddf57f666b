package checker

import (
	"reflect"

	"github.com/rzk-lang/rzkcore/internal/term"
)

// EvalType is eval ∘ evalExtensionApps ∘ eval (spec §4.2): the
// extension-application pass in the middle needs an already-weak-normal
// term to recognize ExtensionType-applications, and its own output can
// expose further beta-redexes, hence the final eval.
func EvalType(c *Context, t term.Term) (term.Term, error) {
	t1, err := mustEval(c, t)
	if err != nil {
		return nil, err
	}
	t2, err := evalExtensionApps(c, t1)
	if err != nil {
		return nil, err
	}
	return mustEval(c, t2)
}

// extensionAppFixpointBound guards the fixpoint loop below. The rewrite
// only ever replaces an application by the boundary value of the
// function's own extension type, so in practice the loop converges in one
// or two passes; the bound is a backstop against an implementation defect,
// not a semantic feature.
const extensionAppFixpointBound = 64

func evalExtensionApps(c *Context, t term.Term) (term.Term, error) {
	cur := t
	for i := 0; i < extensionAppFixpointBound; i++ {
		next, err := evalExtensionAppsPass(c, cur)
		if err != nil {
			return nil, err
		}
		if reflect.DeepEqual(next, cur) {
			return next, nil
		}
		cur = next
	}
	return cur, nil
}

// evalExtensionAppsPass rewrites every App f x in t whose f infers an
// ExtensionType into its boundary value a[t := x] when the boundary tope
// phi[t := x] is entailed,
// recursing into binders with the bound variable properly scoped so
// nested Infer calls can resolve it (spec §4.2).
func evalExtensionAppsPass(c *Context, t term.Term) (term.Term, error) {
	if t == nil {
		return nil, nil
	}
	switch t := t.(type) {
	case term.App:
		fun, err := evalExtensionAppsPass(c, t.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := evalExtensionAppsPass(c, t.Arg)
		if err != nil {
			return nil, err
		}
		if funTyp, ierr := Infer(c, t.Fun); ierr == nil {
			if ext, ok := funTyp.(term.ExtensionType); ok {
				phi, everr := Eval(c, term.SubstVar(ext.BoundaryTope, ext.Var, t.Arg))
				if everr == nil && Entails(c, phi) {
					val := term.SubstVar(ext.BoundaryVal, ext.Var, t.Arg)
					return evalExtensionAppsPass(c, val)
				}
			}
		}
		return term.App{Fun: fun, Arg: arg}, nil
	case term.Pi:
		fam, err := evalExtensionAppsLambda(c, t.Family)
		if err != nil {
			return nil, err
		}
		return term.Pi{Family: fam}, nil
	case term.Sigma:
		fam, err := evalExtensionAppsLambda(c, t.Family)
		if err != nil {
			return nil, err
		}
		return term.Sigma{Family: fam}, nil
	case term.Lambda:
		return evalExtensionAppsLambda(c, t)
	case term.ExtensionType:
		cube, err := evalExtensionAppsPass(c, t.Cube)
		if err != nil {
			return nil, err
		}
		var tope, typ, boundaryTope, boundaryVal term.Term
		_, err = LocalTyping(c, t.Var, cube, func() (struct{}, error) {
			var e error
			if tope, e = evalExtensionAppsPass(c, t.Tope); e != nil {
				return struct{}{}, e
			}
			if typ, e = evalExtensionAppsPass(c, t.Type); e != nil {
				return struct{}{}, e
			}
			if boundaryTope, e = evalExtensionAppsPass(c, t.BoundaryTope); e != nil {
				return struct{}{}, e
			}
			boundaryVal, e = evalExtensionAppsPass(c, t.BoundaryVal)
			return struct{}{}, e
		})
		if err != nil {
			return nil, err
		}
		return term.ExtensionType{Var: t.Var, Cube: cube, Tope: tope, Type: typ, BoundaryTope: boundaryTope, BoundaryVal: boundaryVal}, nil
	default:
		children := term.Children(t)
		if children == nil {
			return t, nil
		}
		newChildren := make([]term.Term, len(children))
		for i, ch := range children {
			nc, err := evalExtensionAppsPass(c, ch)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
		}
		return term.WithChildren(t, newChildren), nil
	}
}

func evalExtensionAppsLambda(c *Context, l term.Lambda) (term.Lambda, error) {
	ann, err := evalExtensionAppsPass(c, l.Ann)
	if err != nil {
		return term.Lambda{}, err
	}
	var tope, body term.Term
	_, err = LocalTyping(c, l.Var, ann, func() (struct{}, error) {
		var e error
		if tope, e = evalExtensionAppsPass(c, l.Tope); e != nil {
			return struct{}{}, e
		}
		body, e = evalExtensionAppsPass(c, l.Body)
		return struct{}{}, e
	})
	if err != nil {
		return term.Lambda{}, err
	}
	return term.Lambda{Var: l.Var, Ann: ann, Tope: tope, Body: body}, nil
}
