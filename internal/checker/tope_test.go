package checker

import (
	"testing"

	"github.com/rzk-lang/rzkcore/internal/term"
)

func TestEntailsReflexive(t *testing.T) {
	c := NewContext()
	phi := term.TopeEQ{L: term.Var{Name: "x"}, R: term.Var{Name: "x"}}
	if !Entails(c, phi) {
		t.Fatalf("expected x === x to be entailed unconditionally")
	}
}

func TestEntailsConjunctionProjection(t *testing.T) {
	c := NewContext()
	a := term.TopeEQ{L: term.Var{Name: "x"}, R: term.Cube2_0{}}
	b := term.TopeEQ{L: term.Var{Name: "y"}, R: term.Cube2_1{}}
	c.topes = append(c.topes, term.TopeAnd{L: a, R: b})
	if !Entails(c, a) {
		t.Fatalf("expected conjunct a to be entailed by its conjunction")
	}
	if !Entails(c, b) {
		t.Fatalf("expected conjunct b to be entailed by its conjunction")
	}
}

func TestEntailsTransitivity(t *testing.T) {
	c := NewContext()
	c.topes = append(c.topes,
		term.TopeLEQ{L: term.Var{Name: "x"}, R: term.Var{Name: "y"}},
		term.TopeLEQ{L: term.Var{Name: "y"}, R: term.Var{Name: "z"}},
	)
	if !Entails(c, term.TopeLEQ{L: term.Var{Name: "x"}, R: term.Var{Name: "z"}}) {
		t.Fatalf("expected x <= y, y <= z to entail x <= z")
	}
}

func TestEntailsAntisymmetry(t *testing.T) {
	c := NewContext()
	c.topes = append(c.topes,
		term.TopeLEQ{L: term.Var{Name: "x"}, R: term.Var{Name: "y"}},
		term.TopeLEQ{L: term.Var{Name: "y"}, R: term.Var{Name: "x"}},
	)
	if !Entails(c, term.TopeEQ{L: term.Var{Name: "x"}, R: term.Var{Name: "y"}}) {
		t.Fatalf("expected mutual <= to entail ===")
	}
}

func TestEntailsDistinctEndpointsIsBottom(t *testing.T) {
	c := NewContext()
	c.topes = append(c.topes, term.TopeLEQ{L: term.Cube2_1{}, R: term.Cube2_0{}})
	if !Entails(c, term.TopeBottom{}) {
		t.Fatalf("expected 1 <= 0 to saturate to BOT")
	}
	if !Entails(c, term.TopeEQ{L: term.Var{Name: "anything"}, R: term.Cube2_0{}}) {
		t.Fatalf("expected an inconsistent context to entail everything")
	}
}

func TestEnsureEqTopeOrderIndependent(t *testing.T) {
	c := NewContext()
	psi := term.TopeEQ{L: term.Var{Name: "x"}, R: term.Cube2_0{}}
	phi := term.TopeEQ{L: term.Cube2_0{}, R: term.Var{Name: "x"}}
	if err := ensureEqTope(c, term.TopeTop{}, psi, phi); err != nil {
		t.Fatalf("ensureEqTope(psi, phi) failed: %v", err)
	}
	if err := ensureEqTope(c, term.TopeTop{}, phi, psi); err != nil {
		t.Fatalf("ensureEqTope(phi, psi) failed: %v", err)
	}
}
