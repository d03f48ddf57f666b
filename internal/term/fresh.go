package term

// Refresh returns an identifier disjoint from used, derived deterministically
// from base. The scheme (spec §9 Freshness) appends a prime to base until
// the result is disjoint from used — deterministic given (base, used) so
// error messages and hole names stay reproducible across runs.
func Refresh(base Ident, used IdentSet) Ident {
	cand := base
	for used.Has(cand) {
		cand = cand + "'"
	}
	return cand
}
