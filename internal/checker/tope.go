package checker

import (
	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/term"
)

// saturationBound guards the fixpoint loop in Saturate. Termination is
// guaranteed because every rule only produces topes built from sub-terms
// already present (spec §9 "Tope saturation"), so the universe of atomic
// topes reachable from a finite context is finite; the bound is a
// backstop, not a semantic limit.
const saturationBound = 256

// unfold computes the structural consequences of a single tope (spec
// §4.4 step 1, And/Or cases): TopeAnd a b yields {a, b}; TopeOr a b
// yields {TopeOr ai bj} for every ai in unfold(a), bj in unfold(b);
// TopeEQ a b yields itself plus a <= b and b <= a; any other shape
// unfolds to itself.
func unfold(p term.Term) []term.Term {
	switch p := p.(type) {
	case term.TopeAnd:
		return []term.Term{p.L, p.R}
	case term.TopeOr:
		var out []term.Term
		for _, a := range unfold(p.L) {
			for _, b := range unfold(p.R) {
				out = append(out, term.TopeOr{L: a, R: b})
			}
		}
		return out
	case term.TopeEQ:
		// a === b is (a <= b) /\ (b <= a); feeding both into the set lets
		// the antisymmetry step below reconstruct the opposite ordering
		// b === a, giving entailment its symmetry through saturation
		// rather than through how a caller happened to order L and R
		// (spec §9 Open Questions).
		return []term.Term{p, term.TopeLEQ{L: p.L, R: p.R}, term.TopeLEQ{L: p.R, R: p.L}}
	default:
		return []term.Term{p}
	}
}

// unfoldConsequences adds the App-under-a-guarded-Pi rule (spec §4.4 step
// 1, last bullet) to the structural unfold of p: applying a function
// under a cube-indexed guard asserts the guard at the argument.
func unfoldConsequences(c *Context, p term.Term) []term.Term {
	out := unfold(p)
	if app, ok := p.(term.App); ok {
		if funTyp, err := Infer(c, app.Fun); err == nil {
			if pi, ok := funTyp.(term.Pi); ok && pi.Family.Tope != nil {
				out = append(out, term.SubstVar(pi.Family.Tope, pi.Family.Var, app.Arg))
			}
		}
	}
	return out
}

// termEqual decides whether a and b normalize to the same term.
func termEqual(c *Context, a, b term.Term) bool {
	an, err := Eval(c, a)
	if err != nil {
		an = a
	}
	bn, err := Eval(c, b)
	if err != nil {
		bn = b
	}
	return an.String() == bn.String()
}

// saturatedSet is the fixpoint tope set, deduplicated by rendered form
// (topes are small, closed-ish propositions; rendering is injective
// enough for this fragment's syntax).
type saturatedSet struct {
	byKey map[string]term.Term
}

func newSaturatedSet() *saturatedSet { return &saturatedSet{byKey: map[string]term.Term{}} }

func (s *saturatedSet) add(t term.Term) bool {
	k := t.String()
	if _, ok := s.byKey[k]; ok {
		return false
	}
	s.byKey[k] = t
	return true
}

func (s *saturatedSet) all() []term.Term {
	out := make([]term.Term, 0, len(s.byKey))
	for _, t := range s.byKey {
		out = append(out, t)
	}
	return out
}

func (s *saturatedSet) has(t term.Term) bool {
	_, ok := s.byKey[t.String()]
	return ok
}

// Saturate computes the saturated tope set for c's current topes (spec
// §4.4 steps 1-2): it repeatedly unfolds every tope and applies the Cube2
// axioms (conjunction elimination is already covered by unfold; the loop
// here adds transitivity, antisymmetry, and distinct-endpoints) until no
// new tope is produced.
func Saturate(c *Context) []term.Term {
	set := newSaturatedSet()
	for _, p := range c.Topes() {
		set.add(p)
	}
	for iter := 0; iter < saturationBound; iter++ {
		changed := false
		for _, p := range set.all() {
			for _, q := range unfoldConsequences(c, p) {
				if set.add(q) {
					changed = true
				}
			}
		}

		leqs := make([]term.TopeLEQ, 0)
		for _, p := range set.all() {
			if leq, ok := p.(term.TopeLEQ); ok {
				leqs = append(leqs, leq)
			}
		}
		for _, xy := range leqs {
			for _, yz := range leqs {
				if !termEqual(c, xy.R, yz.L) {
					continue
				}
				if termEqual(c, xy.L, yz.R) {
					continue // skip x == z
				}
				if set.add(term.TopeLEQ{L: xy.L, R: yz.R}) {
					changed = true
				}
			}
			for _, yx := range leqs {
				if termEqual(c, xy.R, yx.L) && termEqual(c, xy.L, yx.R) {
					if set.add(term.TopeEQ{L: xy.L, R: xy.R}) {
						changed = true
					}
				}
			}
		}
		if set.has(term.TopeLEQ{L: term.Cube2_1{}, R: term.Cube2_0{}}) {
			if set.add(term.TopeBottom{}) {
				changed = true
			}
		}

		if !changed {
			break
		}
	}
	return set.all()
}

// Entails decides Γ ⊢ φ over the tope fragment (spec §4.4 step 3).
func Entails(c *Context, phi term.Term) bool {
	sat := Saturate(c)
	return entailsFrom(c, sat, phi)
}

func entailsFrom(c *Context, sat []term.Term, phi term.Term) bool {
	phiN, err := Eval(c, phi)
	if err != nil {
		phiN = phi
	}
	if _, ok := phiN.(term.TopeTop); ok {
		return true
	}
	for _, s := range sat {
		if _, ok := s.(term.TopeBottom); ok {
			return true
		}
		if termEqual(c, s, phiN) {
			return true
		}
	}
	switch phiN := phiN.(type) {
	case term.TopeAnd:
		return entailsFrom(c, sat, phiN.L) && entailsFrom(c, sat, phiN.R)
	case term.TopeOr:
		return entailsFrom(c, sat, phiN.L) || entailsFrom(c, sat, phiN.R)
	case term.TopeEQ:
		return termEqual(c, phiN.L, phiN.R)
	}
	return false
}

// ensureTopeContext requires Γ ⊢ φ, raising TopeContextNotSatisfied
// (spec §4.4) with t as the offending term if not.
func ensureTopeContext(c *Context, t, phi term.Term) error {
	if Entails(c, phi) {
		return nil
	}
	return diagnostics.TopeContextNotSatisfied(t, phi, c.Topes())
}

// ensureSubTope requires {φ} ⊢ ψ, i.e. ψ under the ambient context
// extended with φ assumed.
func ensureSubTope(c *Context, t, psi, phi term.Term) error {
	_, err := LocalConstraint(c, phi, func() (struct{}, error) {
		return struct{}{}, ensureTopeContext(c, t, psi)
	})
	return err
}

// ensureEqTope requires Γ,φ ⊢ ψ and Γ,ψ ⊢ φ. Symmetry is guaranteed by
// saturation, not by argument order (spec §9 Open Questions).
func ensureEqTope(c *Context, t, psi, phi term.Term) error {
	if err := ensureSubTope(c, t, psi, phi); err != nil {
		return err
	}
	return ensureSubTope(c, t, phi, psi)
}
