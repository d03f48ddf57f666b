package checker

import (
	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/term"
)

// Unify decides whether t1 and t2 denote the same term, instantiating
// holes as needed (spec §4.5). Both sides are normalized first so the
// structural cases below only ever compare weak-head-normal forms.
func Unify(c *Context, t1, t2 term.Term) error {
	n1, err := EvalType(c, t1)
	if err != nil {
		return err
	}
	n2, err := EvalType(c, t2)
	if err != nil {
		return err
	}
	return unify1(c, n1, n2)
}

func checkInfiniteType(c *Context, h term.Ident, t term.Term) error {
	if term.FreeVars(t).Has(h) {
		return diagnostics.Infinite(h, t)
	}
	// Open question (spec §9): the occurs-check also walks a Sigma's
	// family as if it were shaped like a Pi's, matching the teacher's own
	// off-by-shell traversal rather than a hand-corrected one.
	if sig, ok := t.(term.Sigma); ok {
		if term.FreeVars(term.Pi{Family: sig.Family}).Has(h) {
			return diagnostics.Infinite(h, t)
		}
	}
	return nil
}

func unifyHole(c *Context, h term.Ident, t term.Term) error {
	if err := checkInfiniteType(c, h, t); err != nil {
		return err
	}
	v, err := mustEval(c, t)
	if err != nil {
		return err
	}
	c.Holes().Instantiate(h, v)
	return nil
}

// unify1 is the structural core, operating on already-normalized terms.
func unify1(c *Context, t1, t2 term.Term) error {
	// Hole cases. Per the documented asymmetry (spec §9 Open Questions):
	// a hole on the left always solves regardless of the right-hand
	// shape, but a hole only appears on the right-hand branch when the
	// left-hand side didn't already match one of the earlier cases —
	// the two are not handled by one symmetric branch.
	if h1, ok := t1.(term.Hole); ok {
		if h2, ok := t2.(term.Hole); ok && h1.Name == h2.Name {
			return nil
		}
		return unifyHole(c, h1.Name, t2)
	}

	switch t1 := t1.(type) {
	case term.TypedTerm:
		return unify1(c, t1.Term, t2)
	case term.Var:
		if t2, ok := t2.(term.Var); ok && t1.Name == t2.Name {
			return nil
		}
	case term.Hole:
		// unreachable: handled above.
	}
	if t2, ok := t2.(term.TypedTerm); ok {
		return unify1(c, t1, t2.Term)
	}
	if h2, ok := t2.(term.Hole); ok {
		// Open question (spec §9): `unify' t (Hole x)` recurses as
		// `unify' (Var x) t` rather than instantiating x — this discards
		// the fact that x is a metavariable and is preserved verbatim,
		// not corrected, per the instruction not to silently fix it.
		return unify1(c, term.Var{Name: h2.Name}, t1)
	}

	switch t1.(type) {
	case term.Universe:
		if _, ok := t2.(term.Universe); ok {
			return nil
		}
	case term.Cube:
		if _, ok := t2.(term.Cube); ok {
			return nil
		}
	case term.CubeUnit:
		if _, ok := t2.(term.CubeUnit); ok {
			return nil
		}
	case term.CubeUnitStar:
		if _, ok := t2.(term.CubeUnitStar); ok {
			return nil
		}
	case term.Cube2:
		if _, ok := t2.(term.Cube2); ok {
			return nil
		}
	case term.Cube2_0:
		if _, ok := t2.(term.Cube2_0); ok {
			return nil
		}
	case term.Cube2_1:
		if _, ok := t2.(term.Cube2_1); ok {
			return nil
		}
	case term.Tope:
		if _, ok := t2.(term.Tope); ok {
			return nil
		}
	case term.TopeTop:
		if _, ok := t2.(term.TopeTop); ok {
			return nil
		}
	case term.TopeBottom:
		if _, ok := t2.(term.TopeBottom); ok {
			return nil
		}
	case term.RecBottom:
		if _, ok := t2.(term.RecBottom); ok {
			return nil
		}
		// RecBottom unifies with anything when the ambient tope context
		// is contradictory (spec §4.5): there's no information content
		// left to compare.
		if Entails(c, term.TopeBottom{}) {
			return nil
		}
	}
	if _, ok := t2.(term.RecBottom); ok {
		if Entails(c, term.TopeBottom{}) {
			return nil
		}
	}

	switch t1 := t1.(type) {
	case term.TopeEQ:
		if t2, ok := t2.(term.TopeEQ); ok {
			return ensureEqTope(c, term.TopeEQ{L: t1.L, R: t1.R}, t2, t1)
		}
	case term.TopeLEQ:
		if t2, ok := t2.(term.TopeLEQ); ok {
			if err := ensureEqTope(c, t1, t1, t2); err != nil {
				return err
			}
			return nil
		}
	}

	switch t1 := t1.(type) {
	case term.Pi:
		t2, ok := t2.(term.Pi)
		if !ok {
			break
		}
		return unifyLambda(c, t1.Family, t2.Family)
	case term.Sigma:
		t2, ok := t2.(term.Sigma)
		if !ok {
			break
		}
		return unifyLambda(c, t1.Family, t2.Family)
	case term.Lambda:
		if t2, ok := t2.(term.Lambda); ok {
			return unifyLambda(c, t1, t2)
		}
		return unifyEtaFunction(c, t1, t2)
	case term.ExtensionType:
		t2, ok := t2.(term.ExtensionType)
		if !ok {
			break
		}
		return unifyExtensionType(c, t1, t2)
	}
	if l2, ok := t2.(term.Lambda); ok {
		return unifyEtaFunction(c, l2, t1)
	}

	if err := unifyAppOrPair(c, t1, t2); err == nil {
		return nil
	} else if err != errNoEtaCandidate {
		return err
	}

	if did, err := unifyEtaExtension(c, t1, t2); did {
		return err
	}

	return unifyStructural(c, t1, t2)
}

// unifyEtaExtension implements the extension-type eta rule (spec §4.5): if
// either side's inferred type is an ExtensionType, that side is compared to
// the other by applying both to a fresh point of the domain cube, the same
// way unifyEtaFunction compares a Lambda to a non-Lambda by applying both
// to a fresh variable. The bool result reports whether the rule applied at
// all, so the caller can fall back to unifyStructural when neither side has
// an extension type.
func unifyEtaExtension(c *Context, t1, t2 term.Term) (bool, error) {
	ext, ok := extensionType(c, t1)
	if !ok {
		ext, ok = extensionType(c, t2)
	}
	if !ok {
		return false, nil
	}
	extra := term.IdentSet{}
	for id := range term.FreeVars(t1) {
		extra[id] = struct{}{}
	}
	for id := range term.FreeVars(t2) {
		extra[id] = struct{}{}
	}
	s := c.FreshVar("s", extra)
	return true, LocalTypingErr(c, s, ext.Cube, func() error {
		return Unify(c, term.App{Fun: t1, Arg: term.Var{Name: s}}, term.App{Fun: t2, Arg: term.Var{Name: s}})
	})
}

func extensionType(c *Context, t term.Term) (term.ExtensionType, bool) {
	typ, err := Infer(c, t)
	if err != nil {
		return term.ExtensionType{}, false
	}
	ext, ok := typ.(term.ExtensionType)
	return ext, ok
}

// unifyAppOrPair handles pair η-expansion: if either side's type is a
// Sigma, both sides are compared componentwise via First/Second rather
// than structurally, matching the function η rule's shape (spec §4.5).
func unifyAppOrPair(c *Context, t1, t2 term.Term) error {
	_, pair1 := t1.(term.Pair)
	_, pair2 := t2.(term.Pair)
	if pair1 && pair2 {
		return unifyStructural(c, t1, t2)
	}
	typ1, err1 := Infer(c, t1)
	_, sig1 := typ1.(term.Sigma)
	typ2, err2 := Infer(c, t2)
	_, sig2 := typ2.(term.Sigma)
	if !(err1 == nil && sig1) && !(err2 == nil && sig2) {
		return errNoEtaCandidate
	}
	if err := Unify(c, term.First{Pair: t1}, term.First{Pair: t2}); err != nil {
		return err
	}
	return Unify(c, term.Second{Pair: t1}, term.Second{Pair: t2})
}

// errNoEtaCandidate is a sentinel distinguishing "t1 doesn't have a Sigma
// type, try structural unification instead" from a genuine mismatch
// discovered while comparing projections.
var errNoEtaCandidate = diagEtaSentinel{}

type diagEtaSentinel struct{}

func (diagEtaSentinel) Error() string { return "no eta candidate" }

// unifyEtaFunction compares a Lambda against a non-Lambda term other by
// eta-expanding other: other ~ \x -> other x, then unifying the bodies
// under x (spec §4.5 function eta rule).
func unifyEtaFunction(c *Context, l term.Lambda, other term.Term) error {
	x := l.Var
	if term.FreeVars(other).Has(x) {
		x = c.FreshVar(string(l.Var), term.FreeVars(other))
	}
	body := term.SubstVar(l.Body, l.Var, term.Var{Name: x})
	otherApplied := term.App{Fun: other, Arg: term.Var{Name: x}}
	return LocalTypingErr(c, x, l.Ann, func() error {
		return Unify(c, body, otherApplied)
	})
}

// LocalTypingErr adapts LocalTyping to the common case of a thunk
// returning only an error.
func LocalTypingErr(c *Context, x term.Ident, a term.Term, k func() error) error {
	_, err := LocalTyping(c, x, a, func() (struct{}, error) {
		return struct{}{}, k()
	})
	return err
}

func unifyLambda(c *Context, l1, l2 term.Lambda) error {
	if l1.Ann != nil && l2.Ann != nil {
		if err := Unify(c, l1.Ann, l2.Ann); err != nil {
			return err
		}
	}
	x := l1.Var
	body2 := l2.Body
	tope2 := l2.Tope
	if l1.Var != l2.Var {
		body2 = term.RenameVar(l2.Var, x, l2.Body)
		tope2 = term.RenameVar(l2.Var, x, l2.Tope)
	}
	return LocalTypingErr(c, x, l1.Ann, func() error {
		if l1.Tope != nil && tope2 != nil {
			if err := ensureEqTope(c, l1.Tope, l1.Tope, tope2); err != nil {
				return err
			}
		}
		if l1.Tope != nil {
			return LocalConstraintErr(c, l1.Tope, func() error {
				return Unify(c, l1.Body, body2)
			})
		}
		return Unify(c, l1.Body, body2)
	})
}

// LocalConstraintErr adapts LocalConstraint to the common error-only case.
func LocalConstraintErr(c *Context, phi term.Term, k func() error) error {
	_, err := LocalConstraint(c, phi, func() (struct{}, error) {
		return struct{}{}, k()
	})
	return err
}

func unifyExtensionType(c *Context, e1, e2 term.ExtensionType) error {
	if err := Unify(c, e1.Cube, e2.Cube); err != nil {
		return err
	}
	x := e1.Var
	tope2, typ2, bt2, bv2 := e2.Tope, e2.Type, e2.BoundaryTope, e2.BoundaryVal
	if e1.Var != e2.Var {
		tope2 = term.RenameVar(e2.Var, x, tope2)
		typ2 = term.RenameVar(e2.Var, x, typ2)
		bt2 = term.RenameVar(e2.Var, x, bt2)
		bv2 = term.RenameVar(e2.Var, x, bv2)
	}
	return LocalTypingErr(c, x, e1.Cube, func() error {
		if err := ensureEqTope(c, e1.Tope, e1.Tope, tope2); err != nil {
			return err
		}
		return LocalConstraintErr(c, e1.Tope, func() error {
			if err := Unify(c, e1.Type, typ2); err != nil {
				return err
			}
			if err := ensureEqTope(c, e1.BoundaryTope, e1.BoundaryTope, bt2); err != nil {
				return err
			}
			return LocalConstraintErr(c, e1.BoundaryTope, func() error {
				return Unify(c, e1.BoundaryVal, bv2)
			})
		})
	})
}

// unifyStructural is the fallback congruence case: same constructor,
// same-length non-binder children, unify pointwise. Binder-carrying
// variants (Pi, Sigma, Lambda, ExtensionType) are handled above, before
// this is reached, and so never hit term.Children's binder-blind path.
func unifyStructural(c *Context, t1, t2 term.Term) error {
	cs1 := term.Children(t1)
	cs2 := term.Children(t2)
	if cs1 == nil || cs2 == nil || len(cs1) != len(cs2) || sameShape(t1, t2) == false {
		return diagnostics.Unexpected(t1, t1, t2, t1, t2)
	}
	for i := range cs1 {
		if cs1[i] == nil && cs2[i] == nil {
			continue
		}
		if err := Unify(c, cs1[i], cs2[i]); err != nil {
			return err
		}
	}
	return nil
}

func sameShape(t1, t2 term.Term) bool {
	switch t1.(type) {
	case term.TypedTerm:
		_, ok := t2.(term.TypedTerm)
		return ok
	case term.App:
		_, ok := t2.(term.App)
		return ok
	case term.Pair:
		_, ok := t2.(term.Pair)
		return ok
	case term.First:
		_, ok := t2.(term.First)
		return ok
	case term.Second:
		_, ok := t2.(term.Second)
		return ok
	case term.IdType:
		_, ok := t2.(term.IdType)
		return ok
	case term.Refl:
		_, ok := t2.(term.Refl)
		return ok
	case term.IdJ:
		_, ok := t2.(term.IdJ)
		return ok
	case term.CubeProd:
		_, ok := t2.(term.CubeProd)
		return ok
	case term.TopeOr:
		_, ok := t2.(term.TopeOr)
		return ok
	case term.TopeAnd:
		_, ok := t2.(term.TopeAnd)
		return ok
	case term.TopeEQ:
		_, ok := t2.(term.TopeEQ)
		return ok
	case term.TopeLEQ:
		_, ok := t2.(term.TopeLEQ)
		return ok
	case term.RecOr:
		_, ok := t2.(term.RecOr)
		return ok
	case term.ExtensionType:
		_, ok := t2.(term.ExtensionType)
		return ok
	}
	return false
}
