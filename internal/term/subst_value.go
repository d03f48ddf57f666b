package term

// substKind distinguishes which identifier namespace a substGeneric call
// targets: SubstVar replaces a bound/free Var node, SubstHole replaces a
// Hole (metavariable) node. Both need the same capture-avoiding binder
// handling, since either substitution can introduce free variables that a
// binder further down must not accidentally capture.
type substKind int

const (
	substVarKind substKind = iota
	substHoleKind
)

// SubstVar replaces free occurrences of Var{x} by value in t, renaming
// binders that would capture a free variable of value. Used by the
// evaluator to unfold env bindings and perform beta-reduction (spec §4.2).
func SubstVar(t Term, x Ident, value Term) Term {
	return substGeneric(t, substVarKind, x, value)
}

// SubstHole replaces occurrences of Hole{h} by value in t, with the same
// capture avoidance. Used by instantiateHole to propagate a new solution
// into already-solved holes (spec §4.3).
func SubstHole(t Term, h Ident, value Term) Term {
	return substGeneric(t, substHoleKind, h, value)
}

func substGeneric(t Term, kind substKind, name Ident, value Term) Term {
	if t == nil {
		return nil
	}
	switch t := t.(type) {
	case Var:
		if kind == substVarKind && t.Name == name {
			return value
		}
		return t
	case Hole:
		if kind == substHoleKind && t.Name == name {
			return value
		}
		return t
	case Universe, Cube, CubeUnit, CubeUnitStar, Cube2, Cube2_0, Cube2_1,
		Tope, TopeTop, TopeBottom, RecBottom:
		return t
	case TypedTerm:
		return TypedTerm{Term: substGeneric(t.Term, kind, name, value), Type: substGeneric(t.Type, kind, name, value)}
	case Pi:
		return Pi{Family: substLambda(t.Family, kind, name, value)}
	case Sigma:
		return Sigma{Family: substLambda(t.Family, kind, name, value)}
	case Lambda:
		return substLambda(t, kind, name, value)
	case App:
		return App{Fun: substGeneric(t.Fun, kind, name, value), Arg: substGeneric(t.Arg, kind, name, value)}
	case Pair:
		return Pair{Fst: substGeneric(t.Fst, kind, name, value), Snd: substGeneric(t.Snd, kind, name, value)}
	case First:
		return First{Pair: substGeneric(t.Pair, kind, name, value)}
	case Second:
		return Second{Pair: substGeneric(t.Pair, kind, name, value)}
	case IdType:
		return IdType{A: substGeneric(t.A, kind, name, value), X: substGeneric(t.X, kind, name, value), Y: substGeneric(t.Y, kind, name, value)}
	case Refl:
		return Refl{A: substGeneric(t.A, kind, name, value), X: substGeneric(t.X, kind, name, value)}
	case IdJ:
		return IdJ{
			A:  substGeneric(t.A, kind, name, value),
			A0: substGeneric(t.A0, kind, name, value),
			C:  substGeneric(t.C, kind, name, value),
			D:  substGeneric(t.D, kind, name, value),
			X:  substGeneric(t.X, kind, name, value),
			P:  substGeneric(t.P, kind, name, value),
		}
	case CubeProd:
		return CubeProd{I: substGeneric(t.I, kind, name, value), J: substGeneric(t.J, kind, name, value)}
	case TopeOr:
		return TopeOr{L: substGeneric(t.L, kind, name, value), R: substGeneric(t.R, kind, name, value)}
	case TopeAnd:
		return TopeAnd{L: substGeneric(t.L, kind, name, value), R: substGeneric(t.R, kind, name, value)}
	case TopeEQ:
		return TopeEQ{L: substGeneric(t.L, kind, name, value), R: substGeneric(t.R, kind, name, value)}
	case TopeLEQ:
		return TopeLEQ{L: substGeneric(t.L, kind, name, value), R: substGeneric(t.R, kind, name, value)}
	case RecOr:
		return RecOr{
			Psi: substGeneric(t.Psi, kind, name, value), Phi: substGeneric(t.Phi, kind, name, value),
			A: substGeneric(t.A, kind, name, value), B: substGeneric(t.B, kind, name, value),
		}
	case ExtensionType:
		v2, parts := substBinder(t.Var, kind, name, value, t.Tope, t.Type, t.BoundaryTope, t.BoundaryVal)
		return ExtensionType{
			Var: v2, Cube: substGeneric(t.Cube, kind, name, value),
			Tope: parts[0], Type: parts[1], BoundaryTope: parts[2], BoundaryVal: parts[3],
		}
	}
	return t
}

func substLambda(l Lambda, kind substKind, name Ident, value Term) Lambda {
	ann := substGeneric(l.Ann, kind, name, value)
	v2, parts := substBinder(l.Var, kind, name, value, l.Tope, l.Body)
	return Lambda{Var: v2, Ann: ann, Tope: parts[0], Body: parts[1]}
}

// substBinder substitutes value for name through a single binder of
// variable v. If v == name (only possible for the Var case: a binder
// cannot shadow a hole), the binder shadows the target and parts are
// returned untouched. Otherwise, if v would be captured by a free
// variable of value, v is refreshed first.
func substBinder(v Ident, kind substKind, name Ident, value Term, parts ...Term) (Ident, []Term) {
	if kind == substVarKind && v == name {
		return v, parts
	}
	if FreeVars(value).Has(v) {
		used := FreeVars(value)
		used.add(name)
		for _, p := range parts {
			used = used.union(FreeVars(p))
		}
		v2 := Refresh(v, used)
		renamed := make([]Term, len(parts))
		for i, p := range parts {
			renamed[i] = RenameVar(v, v2, p)
		}
		parts = renamed
		v = v2
	}
	out := make([]Term, len(parts))
	for i, p := range parts {
		out[i] = substGeneric(p, kind, name, value)
	}
	return v, out
}
