package term

// IdentSet is a set of identifiers, used for free-variable tracking and for
// the "in-use" sets passed to Refresh.
type IdentSet map[Ident]struct{}

func (s IdentSet) add(i Ident)        { s[i] = struct{}{} }
func (s IdentSet) Has(i Ident) bool   { _, ok := s[i]; return ok }
func (s IdentSet) union(o IdentSet) IdentSet {
	out := make(IdentSet, len(s)+len(o))
	for k := range s {
		out.add(k)
	}
	for k := range o {
		out.add(k)
	}
	return out
}

func singleton(i Ident) IdentSet {
	return IdentSet{i: struct{}{}}
}

// FreeVars returns the set of identifiers (variables and holes — they
// share one namespace, spec §3) that occur free in t.
func FreeVars(t Term) IdentSet {
	if t == nil {
		return IdentSet{}
	}
	switch t := t.(type) {
	case Var:
		return singleton(t.Name)
	case Hole:
		return singleton(t.Name)
	case Universe, Cube, CubeUnit, CubeUnitStar, Cube2, Cube2_0, Cube2_1,
		Tope, TopeTop, TopeBottom, RecBottom:
		return IdentSet{}
	case TypedTerm:
		return FreeVars(t.Term).union(FreeVars(t.Type))
	case Pi:
		return freeVarsLambda(t.Family)
	case Sigma:
		return freeVarsLambda(t.Family)
	case Lambda:
		return freeVarsLambda(t)
	case App:
		return FreeVars(t.Fun).union(FreeVars(t.Arg))
	case Pair:
		return FreeVars(t.Fst).union(FreeVars(t.Snd))
	case First:
		return FreeVars(t.Pair)
	case Second:
		return FreeVars(t.Pair)
	case IdType:
		return FreeVars(t.A).union(FreeVars(t.X)).union(FreeVars(t.Y))
	case Refl:
		return FreeVars(t.A).union(FreeVars(t.X))
	case IdJ:
		fv := FreeVars(t.A)
		for _, c := range []Term{t.A0, t.C, t.D, t.X, t.P} {
			fv = fv.union(FreeVars(c))
		}
		return fv
	case CubeProd:
		return FreeVars(t.I).union(FreeVars(t.J))
	case TopeOr:
		return FreeVars(t.L).union(FreeVars(t.R))
	case TopeAnd:
		return FreeVars(t.L).union(FreeVars(t.R))
	case TopeEQ:
		return FreeVars(t.L).union(FreeVars(t.R))
	case TopeLEQ:
		return FreeVars(t.L).union(FreeVars(t.R))
	case RecOr:
		fv := FreeVars(t.Psi).union(FreeVars(t.Phi))
		return fv.union(FreeVars(t.A)).union(FreeVars(t.B))
	case ExtensionType:
		fv := FreeVars(t.Cube)
		inner := FreeVars(t.Tope).union(FreeVars(t.Type)).union(FreeVars(t.BoundaryTope)).union(FreeVars(t.BoundaryVal))
		delete(inner, t.Var)
		return fv.union(inner)
	}
	return IdentSet{}
}

func freeVarsLambda(l Lambda) IdentSet {
	fv := FreeVars(l.Ann)
	inner := FreeVars(l.Tope).union(FreeVars(l.Body))
	delete(inner, l.Var)
	return fv.union(inner)
}

// RenameVar replaces free occurrences of old by new in t, refreshing any
// binder in t that would otherwise capture new (spec §4.1). It does not
// touch Hole nodes: holes are metavariables, resolved through the hole
// store rather than lexical substitution.
func RenameVar(old, new Ident, t Term) Term {
	if t == nil {
		return nil
	}
	switch t := t.(type) {
	case Var:
		if t.Name == old {
			return Var{Name: new}
		}
		return t
	case Hole:
		return t
	case Universe, Cube, CubeUnit, CubeUnitStar, Cube2, Cube2_0, Cube2_1,
		Tope, TopeTop, TopeBottom, RecBottom:
		return t
	case TypedTerm:
		return TypedTerm{Term: RenameVar(old, new, t.Term), Type: RenameVar(old, new, t.Type)}
	case Pi:
		return Pi{Family: renameLambda(old, new, t.Family)}
	case Sigma:
		return Sigma{Family: renameLambda(old, new, t.Family)}
	case Lambda:
		return renameLambda(old, new, t)
	case App:
		return App{Fun: RenameVar(old, new, t.Fun), Arg: RenameVar(old, new, t.Arg)}
	case Pair:
		return Pair{Fst: RenameVar(old, new, t.Fst), Snd: RenameVar(old, new, t.Snd)}
	case First:
		return First{Pair: RenameVar(old, new, t.Pair)}
	case Second:
		return Second{Pair: RenameVar(old, new, t.Pair)}
	case IdType:
		return IdType{A: RenameVar(old, new, t.A), X: RenameVar(old, new, t.X), Y: RenameVar(old, new, t.Y)}
	case Refl:
		return Refl{A: RenameVar(old, new, t.A), X: RenameVar(old, new, t.X)}
	case IdJ:
		return IdJ{
			A:  RenameVar(old, new, t.A),
			A0: RenameVar(old, new, t.A0),
			C:  RenameVar(old, new, t.C),
			D:  RenameVar(old, new, t.D),
			X:  RenameVar(old, new, t.X),
			P:  RenameVar(old, new, t.P),
		}
	case CubeProd:
		return CubeProd{I: RenameVar(old, new, t.I), J: RenameVar(old, new, t.J)}
	case TopeOr:
		return TopeOr{L: RenameVar(old, new, t.L), R: RenameVar(old, new, t.R)}
	case TopeAnd:
		return TopeAnd{L: RenameVar(old, new, t.L), R: RenameVar(old, new, t.R)}
	case TopeEQ:
		return TopeEQ{L: RenameVar(old, new, t.L), R: RenameVar(old, new, t.R)}
	case TopeLEQ:
		return TopeLEQ{L: RenameVar(old, new, t.L), R: RenameVar(old, new, t.R)}
	case RecOr:
		return RecOr{
			Psi: RenameVar(old, new, t.Psi), Phi: RenameVar(old, new, t.Phi),
			A: RenameVar(old, new, t.A), B: RenameVar(old, new, t.B),
		}
	case ExtensionType:
		v2, parts := renameBinder(t.Var, old, new, t.Tope, t.Type, t.BoundaryTope, t.BoundaryVal)
		return ExtensionType{
			Var: v2, Cube: RenameVar(old, new, t.Cube),
			Tope: parts[0], Type: parts[1], BoundaryTope: parts[2], BoundaryVal: parts[3],
		}
	}
	return t
}

func renameLambda(old, new Ident, l Lambda) Lambda {
	ann := RenameVar(old, new, l.Ann)
	v2, parts := renameBinder(l.Var, old, new, l.Tope, l.Body)
	return Lambda{Var: v2, Ann: ann, Tope: parts[0], Body: parts[1]}
}

// renameBinder implements capture-avoiding substitution through a single
// binder of variable v: if v shadows old, the parts are returned
// untouched (old isn't free under this binder); if renaming would capture
// (v == new), v is refreshed to a name disjoint from old, new, and the
// free variables of parts before old->new is applied; otherwise old->new
// is applied straight through.
func renameBinder(v, old, new Ident, parts ...Term) (Ident, []Term) {
	if v == old {
		return v, parts
	}
	if v == new {
		used := IdentSet{}
		for _, p := range parts {
			used = used.union(FreeVars(p))
		}
		used.add(old)
		used.add(new)
		v2 := Refresh(v, used)
		out := make([]Term, len(parts))
		for i, p := range parts {
			out[i] = RenameVar(old, new, RenameVar(v, v2, p))
		}
		return v2, out
	}
	out := make([]Term, len(parts))
	for i, p := range parts {
		out[i] = RenameVar(old, new, p)
	}
	return v, out
}
