// Package term defines the abstract syntax of the core calculus: a single
// algebraic Term type with one variant per former in spec §3, plus the
// scope-aware operations (free variables, capture-avoiding renaming, fresh
// names) that the evaluator, unifier and checker all build on.
//
// Terms are well-scoped under their binders. Holes share the identifier
// namespace with variables (Ident) but are a distinct Term variant (Hole)
// so the unifier can tell "may be solved by unification" apart from
// "bound in the typing context".
package term

import "fmt"

// Ident is a name drawn from the countable variable/hole supply.
type Ident string

// Term is the single AST type for the core calculus. Each variant below
// implements it via the unexported isTerm marker, the same closed-sum-type
// idiom as the teacher's ast.Node / typesystem.Type interfaces.
type Term interface {
	isTerm()
	String() string
}

func (Var) isTerm()           {}
func (Hole) isTerm()          {}
func (Universe) isTerm()      {}
func (TypedTerm) isTerm()     {}
func (Pi) isTerm()            {}
func (Sigma) isTerm()         {}
func (Lambda) isTerm()        {}
func (App) isTerm()           {}
func (Pair) isTerm()          {}
func (First) isTerm()         {}
func (Second) isTerm()        {}
func (IdType) isTerm()        {}
func (Refl) isTerm()          {}
func (IdJ) isTerm()           {}
func (Cube) isTerm()          {}
func (CubeUnit) isTerm()      {}
func (CubeUnitStar) isTerm()  {}
func (CubeProd) isTerm()      {}
func (Cube2) isTerm()         {}
func (Cube2_0) isTerm()       {}
func (Cube2_1) isTerm()       {}
func (Tope) isTerm()          {}
func (TopeTop) isTerm()       {}
func (TopeBottom) isTerm()    {}
func (TopeOr) isTerm()        {}
func (TopeAnd) isTerm()       {}
func (TopeEQ) isTerm()        {}
func (TopeLEQ) isTerm()       {}
func (RecBottom) isTerm()     {}
func (RecOr) isTerm()         {}
func (ExtensionType) isTerm() {}

// Var is a variable reference.
type Var struct{ Name Ident }

// Hole is a metavariable reference.
type Hole struct{ Name Ident }

// Universe is the type of (small) types.
type Universe struct{}

// TypedTerm is an explicit ascription `(t : A)`.
type TypedTerm struct {
	Term Term
	Type Term
}

// Lambda is an abstraction `\x [: A] [, phi] -> Body`, or — when used as
// the family argument of Pi/Sigma — the binder of a dependent function or
// pair former (spec §4.6 inferTypeFamily). Ann is the optional domain
// annotation; Tope is the optional cube-indexed guard. Invariant: if Tope
// is non-nil, Ann must be non-nil too (a guarded binder is cube-indexed
// and its cube annotation is mandatory).
type Lambda struct {
	Var  Ident
	Ann  Term // optional
	Tope Term // optional
	Body Term
}

// Pi is the dependent function former; Family is a Lambda whose Body is
// the (type of the) codomain.
type Pi struct{ Family Lambda }

// Sigma is the dependent pair former; Family is a Lambda whose Body is the
// (type of the) second projection.
type Sigma struct{ Family Lambda }

// App is application.
type App struct{ Fun, Arg Term }

// Pair is a pair introduction.
type Pair struct{ Fst, Snd Term }

// First/Second are the two pair projections.
type First struct{ Pair Term }
type Second struct{ Pair Term }

// IdType is the identity type `Id A x y`.
type IdType struct{ A, X, Y Term }

// Refl is reflexivity; A is the optional type witness (the elaborator
// fills it in when omitted, per spec §3 invariants).
type Refl struct {
	A Term // optional
	X Term
}

// IdJ is the J eliminator for identity types.
type IdJ struct {
	A Term // the family's type
	A0 Term // the basepoint `a`
	C Term // the motive
	D Term // the case for refl
	X Term // the endpoint
	P Term // the identity proof
}

// Cube is the universe of cubes; CubeUnit its terminal object;
// CubeUnitStar its unique point; CubeProd the binary product.
type Cube struct{}
type CubeUnit struct{}
type CubeUnitStar struct{}
type CubeProd struct{ I, J Term }

// Cube2 is the directed interval with endpoints Cube2_0 and Cube2_1.
type Cube2 struct{}
type Cube2_0 struct{}
type Cube2_1 struct{}

// Tope is the universe of tope propositions, with the usual connectives.
type Tope struct{}
type TopeTop struct{}
type TopeBottom struct{}
type TopeOr struct{ L, R Term }
type TopeAnd struct{ L, R Term }
type TopeEQ struct{ L, R Term }
type TopeLEQ struct{ L, R Term }

// RecBottom eliminates TopeBottom; RecOr eliminates a tope disjunction,
// with branches A for Psi and B for Phi.
type RecBottom struct{}
type RecOr struct {
	Psi, Phi Term
	A, B     Term
}

// ExtensionType is `<{t : I | psi} -> A [phi |-> a]>`.
type ExtensionType struct {
	Var          Ident
	Cube         Term // I
	Tope         Term // psi
	Type         Term // A
	BoundaryTope Term // phi
	BoundaryVal  Term // a
}

// String renders a term for diagnostics; it is not a surface syntax and
// need not round-trip through any parser.
func (t Var) String() string  { return string(t.Name) }
func (t Hole) String() string { return "?" + string(t.Name) }
func (Universe) String() string { return "U" }
func (t TypedTerm) String() string {
	return fmt.Sprintf("(%s : %s)", t.Term, t.Type)
}
func (t Pi) String() string {
	if t.Family.Tope != nil {
		return fmt.Sprintf("(%s : %s | %s) -> %s", t.Family.Var, t.Family.Ann, t.Family.Tope, t.Family.Body)
	}
	return fmt.Sprintf("(%s : %s) -> %s", t.Family.Var, t.Family.Ann, t.Family.Body)
}
func (t Sigma) String() string {
	return fmt.Sprintf("Sigma (%s : %s), %s", t.Family.Var, t.Family.Ann, t.Family.Body)
}
func (t Lambda) String() string {
	switch {
	case t.Ann != nil && t.Tope != nil:
		return fmt.Sprintf("\\%s : %s, %s -> %s", t.Var, t.Ann, t.Tope, t.Body)
	case t.Ann != nil:
		return fmt.Sprintf("\\%s : %s -> %s", t.Var, t.Ann, t.Body)
	default:
		return fmt.Sprintf("\\%s -> %s", t.Var, t.Body)
	}
}
func (t App) String() string   { return fmt.Sprintf("(%s %s)", t.Fun, t.Arg) }
func (t Pair) String() string  { return fmt.Sprintf("(%s, %s)", t.Fst, t.Snd) }
func (t First) String() string { return fmt.Sprintf("first(%s)", t.Pair) }
func (t Second) String() string { return fmt.Sprintf("second(%s)", t.Pair) }
func (t IdType) String() string { return fmt.Sprintf("Id(%s, %s, %s)", t.A, t.X, t.Y) }
func (t Refl) String() string {
	if t.A != nil {
		return fmt.Sprintf("refl_{%s}(%s)", t.A, t.X)
	}
	return fmt.Sprintf("refl(%s)", t.X)
}
func (t IdJ) String() string {
	return fmt.Sprintf("idJ(%s, %s, %s, %s, %s, %s)", t.A, t.A0, t.C, t.D, t.X, t.P)
}
func (Cube) String() string         { return "CUBE" }
func (CubeUnit) String() string     { return "1" }
func (CubeUnitStar) String() string { return "*_1" }
func (t CubeProd) String() string   { return fmt.Sprintf("(%s * %s)", t.I, t.J) }
func (Cube2) String() string        { return "2" }
func (Cube2_0) String() string      { return "0_2" }
func (Cube2_1) String() string      { return "1_2" }
func (Tope) String() string         { return "TOPE" }
func (TopeTop) String() string      { return "TOP" }
func (TopeBottom) String() string   { return "BOT" }
func (t TopeOr) String() string     { return fmt.Sprintf("(%s \\/ %s)", t.L, t.R) }
func (t TopeAnd) String() string    { return fmt.Sprintf("(%s /\\ %s)", t.L, t.R) }
func (t TopeEQ) String() string     { return fmt.Sprintf("(%s === %s)", t.L, t.R) }
func (t TopeLEQ) String() string    { return fmt.Sprintf("(%s <= %s)", t.L, t.R) }
func (RecBottom) String() string    { return "recOfBottom" }
func (t RecOr) String() string {
	return fmt.Sprintf("recOr(%s, %s, %s, %s)", t.Psi, t.Phi, t.A, t.B)
}
func (t ExtensionType) String() string {
	return fmt.Sprintf("<{%s : %s | %s} -> %s [%s |-> %s]>", t.Var, t.Cube, t.Tope, t.Type, t.BoundaryTope, t.BoundaryVal)
}
