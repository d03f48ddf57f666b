package checker

import (
	"fmt"
	"sort"

	"github.com/rzk-lang/rzkcore/internal/term"
)

// HoleStore is the metavariable table (spec §3): known holds solutions,
// declared holds every hole ever introduced (solved or not). A solution
// is never retracted; instantiateHole rewrites every existing solution so
// a later lookup never needs to chase more than one step (spec §4.3,
// invariant 2 in spec §8).
type HoleStore struct {
	known    map[term.Ident]term.Term
	declared map[term.Ident]struct{}
}

// NewHoleStore creates an empty hole store.
func NewHoleStore() *HoleStore {
	return &HoleStore{
		known:    make(map[term.Ident]term.Term),
		declared: make(map[term.Ident]struct{}),
	}
}

func (h *HoleStore) declare(id term.Ident) { h.declared[id] = struct{}{} }

// Declared reports whether h was ever introduced (solved or not).
func (h *HoleStore) Declared(id term.Ident) bool {
	_, ok := h.declared[id]
	return ok
}

// Lookup returns h's solution, if any.
func (h *HoleStore) Lookup(id term.Ident) (term.Term, bool) {
	t, ok := h.known[id]
	return t, ok
}

// Instantiate records known[h] := t and rewrites every existing solution
// by substituting t for h, keeping the "fully propagated" invariant (spec
// §4.3). Solutions are not re-evaluated here; callers that want a
// normal-form solution should normalize t before calling Instantiate (the
// unifier does, per spec §4.5).
func (h *HoleStore) Instantiate(id term.Ident, t term.Term) {
	h.known[id] = t
	for k, v := range h.known {
		if k == id {
			continue
		}
		h.known[k] = term.SubstHole(v, id, t)
	}
}

// Dump renders known hole solutions and the set of declared-but-unsolved
// holes, for the CLI's context dump (spec §6).
func (h *HoleStore) Dump() string {
	s := "known hole solutions:\n"
	names := make([]string, 0, len(h.known))
	for n := range h.known {
		names = append(names, string(n))
	}
	sort.Strings(names)
	for _, n := range names {
		s += fmt.Sprintf("  ?%s := %s\n", n, h.known[term.Ident(n)])
	}
	unsolved := make([]string, 0)
	for n := range h.declared {
		if _, ok := h.known[n]; !ok {
			unsolved = append(unsolved, string(n))
		}
	}
	sort.Strings(unsolved)
	for _, n := range unsolved {
		s += fmt.Sprintf("  ?%s (unsolved)\n", n)
	}
	return s
}
