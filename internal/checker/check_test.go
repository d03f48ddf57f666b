package checker

import (
	"testing"

	"github.com/rzk-lang/rzkcore/internal/term"
)

func TestCheckIdentityFunction(t *testing.T) {
	c := NewContext()
	id := term.Lambda{Var: "x", Body: term.Var{Name: "x"}}
	typ := term.Pi{Family: term.Lambda{Var: "x", Ann: term.Cube{}, Body: term.Cube{}}}
	if err := Check(c, id, typ); err != nil {
		t.Fatalf("identity function should check against (x : CUBE) -> CUBE: %v", err)
	}
}

func TestInferReflAtRefl(t *testing.T) {
	c := NewContext()
	c.SetType("a", term.Cube{})
	idTyp, err := Infer(c, term.Refl{X: term.Var{Name: "a"}})
	if err != nil {
		t.Fatalf("Infer(refl(a)): %v", err)
	}
	want := term.IdType{A: term.Cube{}, X: term.Var{Name: "a"}, Y: term.Var{Name: "a"}}
	if idTyp.String() != want.String() {
		t.Fatalf("got %s, want %s", idTyp, want)
	}
}

func TestEvalIdJReducesOnRefl(t *testing.T) {
	// J eliminates along a literal refl proof by reducing straight to the
	// refl case D, independent of what A0/C/X carry (spec §4.2).
	c := NewContext()
	idj := term.IdJ{
		A:  term.Cube{},
		A0: term.CubeUnitStar{},
		C:  term.Lambda{Var: "y", Ann: term.Cube{}, Body: term.Lambda{Var: "q", Ann: term.Tope{}, Body: term.Universe{}}},
		D:  term.CubeUnit{},
		X:  term.CubeUnitStar{},
		P:  term.Refl{X: term.CubeUnitStar{}},
	}
	got, err := Eval(c, idj)
	if err != nil {
		t.Fatalf("Eval(idJ ... refl): %v", err)
	}
	if got.String() != (term.CubeUnit{}).String() {
		t.Fatalf("expected idJ on refl to reduce to D, got %s", got)
	}
}

func TestCheckPairAgainstSigma(t *testing.T) {
	c := NewContext()
	sig := term.Sigma{Family: term.Lambda{Var: "x", Ann: term.Cube{}, Body: term.Cube{}}}
	pair := term.Pair{Fst: term.CubeUnit{}, Snd: term.CubeUnit{}}
	if err := Check(c, pair, sig); err != nil {
		t.Fatalf("Check(pair, Sigma): %v", err)
	}
}

func TestInferRecOrDischargesUnderOverlap(t *testing.T) {
	c := NewContext()
	recOr := term.RecOr{
		Psi: term.TopeTop{},
		Phi: term.TopeTop{},
		A:   term.CubeUnitStar{},
		B:   term.CubeUnitStar{},
	}
	typ, err := Infer(c, recOr)
	if err != nil {
		t.Fatalf("Infer(recOr with equal top branches): %v", err)
	}
	if typ.String() != (term.CubeUnit{}).String() {
		t.Fatalf("expected recOr's type to be CubeUnit, got %s", typ)
	}
}

func TestInferExtensionTypeApp(t *testing.T) {
	c := NewContext()
	ext := term.ExtensionType{
		Var:          "t",
		Cube:         term.CubeUnit{},
		Tope:         term.TopeTop{},
		Type:         term.Cube{},
		BoundaryTope: term.TopeTop{},
		BoundaryVal:  term.CubeUnit{},
	}
	if _, err := Infer(c, ext); err != nil {
		t.Fatalf("Infer(extension type): %v", err)
	}
	lam := term.Lambda{Var: "t", Ann: term.CubeUnit{}, Body: term.CubeUnit{}}
	app := term.App{Fun: term.TypedTerm{Term: lam, Type: ext}, Arg: term.CubeUnitStar{}}
	got, err := Infer(c, app)
	if err != nil {
		t.Fatalf("Infer(app against extension type): %v", err)
	}
	if got.String() != (term.Cube{}).String() {
		t.Fatalf("expected application against extension type to return CUBE, got %s", got)
	}
}

func TestNotAFunctionError(t *testing.T) {
	c := NewContext()
	app := term.App{Fun: term.CubeUnitStar{}, Arg: term.CubeUnitStar{}}
	if _, err := Infer(c, app); err == nil {
		t.Fatalf("expected applying a non-function to fail")
	}
}
