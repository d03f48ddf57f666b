package checker

import (
	"testing"

	"github.com/rzk-lang/rzkcore/internal/term"
)

func TestUnifyAtoms(t *testing.T) {
	c := NewContext()
	if err := Unify(c, term.Universe{}, term.Universe{}); err != nil {
		t.Fatalf("Universe vs Universe: %v", err)
	}
	if err := Unify(c, term.Cube2_0{}, term.Cube2_1{}); err == nil {
		t.Fatalf("expected 0_2 and 1_2 not to unify")
	}
}

func TestUnifyHoleInstantiatesLeft(t *testing.T) {
	c := NewContext()
	h := c.FreshHole(term.IdentSet{})
	if err := Unify(c, term.Hole{Name: h}, term.Cube2_0{}); err != nil {
		t.Fatalf("unify hole vs atom: %v", err)
	}
	v, ok := c.Holes().Lookup(h)
	if !ok {
		t.Fatalf("expected hole %s to be solved", h)
	}
	if v.String() != (term.Cube2_0{}).String() {
		t.Fatalf("expected hole solution 0_2, got %s", v)
	}
}

func TestUnifyHoleOnRightPreservesOpenQuestionAsymmetry(t *testing.T) {
	// Spec open question: unify' t (Hole x) recurses as unify' (Var x) t
	// instead of instantiating x. Here t1 = 0_2 is not itself a Var, so the
	// recursive call compares Var{x} against 0_2 structurally (instead of
	// solving x) and fails, rather than leaving x solved to 0_2.
	c := NewContext()
	h := c.FreshHole(term.IdentSet{})
	err := Unify(c, term.Cube2_0{}, term.Hole{Name: h})
	if err == nil {
		t.Fatalf("expected the quirky right-hand-hole path to fail rather than solve the hole")
	}
	if _, ok := c.Holes().Lookup(h); ok {
		t.Fatalf("hole %s must stay unsolved under the preserved asymmetry", h)
	}
}

func TestUnifyHoleOnRightMatchingVarSucceeds(t *testing.T) {
	// When t1 already is Var{x} (same name as the hole), the quirky
	// recursion unify'(Var x, Var x) trivially succeeds.
	c := NewContext()
	h := c.FreshHole(term.IdentSet{})
	c.SetType(h, term.Universe{})
	if err := Unify(c, term.Var{Name: h}, term.Hole{Name: h}); err != nil {
		t.Fatalf("expected Var{x} vs Hole{x} to succeed via the Var/Var case: %v", err)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	c := NewContext()
	h := c.FreshHole(term.IdentSet{})
	selfApp := term.CubeProd{I: term.Hole{Name: h}, J: term.CubeUnit{}}
	if err := Unify(c, term.Hole{Name: h}, selfApp); err == nil {
		t.Fatalf("expected occurs-check failure for ?%s =?= (?%s * 1)", h, h)
	}
}

func TestUnifyPiBinders(t *testing.T) {
	c := NewContext()
	p1 := term.Pi{Family: term.Lambda{Var: "x", Ann: term.Cube{}, Body: term.CubeUnit{}}}
	p2 := term.Pi{Family: term.Lambda{Var: "y", Ann: term.Cube{}, Body: term.CubeUnit{}}}
	if err := Unify(c, p1, p2); err != nil {
		t.Fatalf("alpha-equivalent Pi types should unify: %v", err)
	}
}

func TestUnifyLambdaEta(t *testing.T) {
	c := NewContext()
	c.SetType("f", term.Pi{Family: term.Lambda{Var: "x", Ann: term.Cube{}, Body: term.Cube{}}})
	lam := term.Lambda{Var: "z", Ann: term.Cube{}, Body: term.App{Fun: term.Var{Name: "f"}, Arg: term.Var{Name: "z"}}}
	if err := Unify(c, term.Var{Name: "f"}, lam); err != nil {
		t.Fatalf("expected f to unify with its own eta-expansion: %v", err)
	}
}

func TestUnifyStructuralMismatchedShape(t *testing.T) {
	c := NewContext()
	if err := Unify(c, term.TopeTop{}, term.TopeBottom{}); err == nil {
		t.Fatalf("expected TOP and BOT not to unify")
	}
}

func TestCheckInfiniteTypeSigmaAsPiShellQuirk(t *testing.T) {
	// Spec open question: the occurs-check on a Sigma also probes as if it
	// were a Pi (wrapping its Family in a Pi shell before re-checking),
	// rather than checking the Sigma's own free variables a second time in
	// its own shape. Since FreeVars ignores the outer former entirely, this
	// quirk is observationally a no-op here, but the code path is
	// deliberately preserved rather than special-cased away.
	c := NewContext()
	h := c.FreshHole(term.IdentSet{})
	sigma := term.Sigma{Family: term.Lambda{Var: "x", Ann: term.Hole{Name: h}, Body: term.CubeUnit{}}}
	if err := checkInfiniteType(c, h, sigma); err == nil {
		t.Fatalf("expected ?%s to occur in its own Sigma annotation", h)
	}
}
