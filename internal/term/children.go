package term

// Children and WithChildren expose the immediate sub-terms of a node
// positionally, for callers (evalExtensionApps, the unifier's structural
// congruence case) that want to recurse generically without a 25-case
// switch of their own. Binder variables are not part of the child list —
// WithChildren reconstructs a node of the same shape as t, keeping t's
// bound-variable name(s), with cs substituted in for the children Children
// returned. A child slot that was nil (an absent optional sub-term) stays
// nil if the caller passes nil back for it.
func Children(t Term) []Term {
	switch t := t.(type) {
	case TypedTerm:
		return []Term{t.Term, t.Type}
	case Pi:
		return []Term{t.Family.Ann, t.Family.Tope, t.Family.Body}
	case Sigma:
		return []Term{t.Family.Ann, t.Family.Tope, t.Family.Body}
	case Lambda:
		return []Term{t.Ann, t.Tope, t.Body}
	case App:
		return []Term{t.Fun, t.Arg}
	case Pair:
		return []Term{t.Fst, t.Snd}
	case First:
		return []Term{t.Pair}
	case Second:
		return []Term{t.Pair}
	case IdType:
		return []Term{t.A, t.X, t.Y}
	case Refl:
		return []Term{t.A, t.X}
	case IdJ:
		return []Term{t.A, t.A0, t.C, t.D, t.X, t.P}
	case CubeProd:
		return []Term{t.I, t.J}
	case TopeOr:
		return []Term{t.L, t.R}
	case TopeAnd:
		return []Term{t.L, t.R}
	case TopeEQ:
		return []Term{t.L, t.R}
	case TopeLEQ:
		return []Term{t.L, t.R}
	case RecOr:
		return []Term{t.Psi, t.Phi, t.A, t.B}
	case ExtensionType:
		return []Term{t.Cube, t.Tope, t.Type, t.BoundaryTope, t.BoundaryVal}
	default:
		return nil
	}
}

// WithChildren rebuilds a node of the same variant and binder name(s) as
// t, with children replaced by cs (in the order Children(t) returned).
func WithChildren(t Term, cs []Term) Term {
	switch t := t.(type) {
	case TypedTerm:
		return TypedTerm{Term: cs[0], Type: cs[1]}
	case Pi:
		return Pi{Family: Lambda{Var: t.Family.Var, Ann: cs[0], Tope: cs[1], Body: cs[2]}}
	case Sigma:
		return Sigma{Family: Lambda{Var: t.Family.Var, Ann: cs[0], Tope: cs[1], Body: cs[2]}}
	case Lambda:
		return Lambda{Var: t.Var, Ann: cs[0], Tope: cs[1], Body: cs[2]}
	case App:
		return App{Fun: cs[0], Arg: cs[1]}
	case Pair:
		return Pair{Fst: cs[0], Snd: cs[1]}
	case First:
		return First{Pair: cs[0]}
	case Second:
		return Second{Pair: cs[0]}
	case IdType:
		return IdType{A: cs[0], X: cs[1], Y: cs[2]}
	case Refl:
		return Refl{A: cs[0], X: cs[1]}
	case IdJ:
		return IdJ{A: cs[0], A0: cs[1], C: cs[2], D: cs[3], X: cs[4], P: cs[5]}
	case CubeProd:
		return CubeProd{I: cs[0], J: cs[1]}
	case TopeOr:
		return TopeOr{L: cs[0], R: cs[1]}
	case TopeAnd:
		return TopeAnd{L: cs[0], R: cs[1]}
	case TopeEQ:
		return TopeEQ{L: cs[0], R: cs[1]}
	case TopeLEQ:
		return TopeLEQ{L: cs[0], R: cs[1]}
	case RecOr:
		return RecOr{Psi: cs[0], Phi: cs[1], A: cs[2], B: cs[3]}
	case ExtensionType:
		return ExtensionType{Var: t.Var, Cube: cs[0], Tope: cs[1], Type: cs[2], BoundaryTope: cs[3], BoundaryVal: cs[4]}
	default:
		return t
	}
}
