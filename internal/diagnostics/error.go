// Package diagnostics implements the type error taxonomy (spec §7) and its
// location policy: a location is attached only when the caller has one to
// give; unknown locations are reported as line 0, never invented (spec
// §7 "Location policy").
//
// This package's shape is reconstructed from every place the teacher
// (funvibe-funxy) imports its own internal/diagnostics package — filtered
// out of the retrieval pack — most directly internal/analyzer/analyzer.go's
// addError/getErrors, which key a *diagnostics.DiagnosticError by
// "line:col:code" for deduplication before sorting for deterministic
// output. We reuse that Location+Code shape for TypeError here.
package diagnostics

import (
	"fmt"

	"github.com/rzk-lang/rzkcore/internal/term"
)

// Location is where, in the original source, an error applies. Line 0
// means "no location available" — the core never invents one.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.Line == 0 {
		return l.File
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Kind identifies which case of the error taxonomy a TypeError carries.
type Kind string

const (
	KindInfinite                Kind = "Infinite"
	KindUnexpected               Kind = "Unexpected"
	KindEval                     Kind = "Eval"
	KindOther                    Kind = "Other"
	KindCannotInferLambda        Kind = "CannotInferLambda"
	KindCannotInferPair          Kind = "CannotInferPair"
	KindNotAFunction             Kind = "NotAFunction"
	KindNotAPair                 Kind = "NotAPair"
	KindExpectedFunctionType     Kind = "ExpectedFunctionType"
	KindInvalidTypeFamily        Kind = "InvalidTypeFamily"
	KindTopeContextNotSatisfied  Kind = "TopeContextNotSatisfied"
)

// TypeError is the single error type the checker raises, carrying the
// term under inspection and whatever relevant sub-terms the Kind needs to
// render a useful message (spec §7).
type TypeError struct {
	Kind Kind
	Loc  Location

	// Term is the offending term, present for every kind except Other.
	Term term.Term

	// Kind-specific payload.
	Hole            term.Ident // Infinite
	InferredFull    term.Term  // Unexpected
	ExpectedFull    term.Term  // Unexpected
	Inferred        term.Term  // Unexpected: the subterm that actually disagreed
	Expected        term.Term  // Unexpected, ExpectedFunctionType
	EvalErr         error      // Eval
	Message         string     // Other
	Arg             term.Term  // NotAFunction
	Projection      string     // NotAPair: "first", "second", or "pair" (a pair checked against a non-Sigma type)
	Phi             term.Term  // TopeContextNotSatisfied
	Topes           []term.Term
}

func (e *TypeError) Error() string { return e.Pretty() }

// WithLocation returns a copy of e with Loc set, unless e already carries
// one — the module driver attaches a declaration's location only to
// errors that didn't already have a more specific one (spec §4.7).
func (e *TypeError) WithLocation(loc Location) *TypeError {
	if e.Loc.Line != 0 || e.Loc.File != "" {
		return e
	}
	cp := *e
	cp.Loc = loc
	return &cp
}

// Pretty renders a human message from the TypeError case, per spec §6
// ("pretty-printed human message built from a TypeError case").
func (e *TypeError) Pretty() string {
	loc := e.Loc.String()
	prefix := ""
	if loc != "" {
		prefix = loc + ": "
	}
	switch e.Kind {
	case KindInfinite:
		return fmt.Sprintf("%sinfinite type: ?%s occurs in %s", prefix, e.Hole, e.Term)
	case KindUnexpected:
		return fmt.Sprintf("%stype mismatch in %s: expected %s, got %s (within expected %s, got %s)",
			prefix, e.Term, e.Expected, e.Inferred, e.ExpectedFull, e.InferredFull)
	case KindEval:
		return fmt.Sprintf("%scould not evaluate %s: %v", prefix, e.Term, e.EvalErr)
	case KindOther:
		return prefix + e.Message
	case KindCannotInferLambda:
		return fmt.Sprintf("%scannot infer a type for lambda %s; it must be checked against an expected type", prefix, e.Term)
	case KindCannotInferPair:
		return fmt.Sprintf("%scannot infer a type for pair %s; it must be checked against an expected type", prefix, e.Term)
	case KindNotAFunction:
		return fmt.Sprintf("%s%s is not a function (has type %s), cannot apply to %s", prefix, e.Term, e.Expected, e.Arg)
	case KindNotAPair:
		return fmt.Sprintf("%s%s is not a pair (has type %s), cannot take %s", prefix, e.Term, e.Expected, e.Projection)
	case KindExpectedFunctionType:
		return fmt.Sprintf("%slambda %s checked against non-function type %s", prefix, e.Term, e.Expected)
	case KindInvalidTypeFamily:
		return fmt.Sprintf("%s%s is not a valid type family (Pi/Sigma body must be a supported lambda shape)", prefix, e.Term)
	case KindTopeContextNotSatisfied:
		return fmt.Sprintf("%stope %s is not entailed by context {%s} while checking %s", prefix, e.Phi, joinTerms(e.Topes), e.Term)
	}
	return prefix + "unknown type error"
}

func joinTerms(ts []term.Term) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s
}

// Constructors — one per Kind, mirroring spec §7's taxonomy.

func Infinite(h term.Ident, t term.Term) *TypeError {
	return &TypeError{Kind: KindInfinite, Hole: h, Term: t}
}

func Unexpected(term_, inferredFull, expectedFull, inferred, expected term.Term) *TypeError {
	return &TypeError{Kind: KindUnexpected, Term: term_, InferredFull: inferredFull, ExpectedFull: expectedFull, Inferred: inferred, Expected: expected}
}

func Eval(t term.Term, err error) *TypeError {
	return &TypeError{Kind: KindEval, Term: t, EvalErr: err}
}

func Other(msg string) *TypeError {
	return &TypeError{Kind: KindOther, Message: msg}
}

func CannotInferLambda(t term.Term) *TypeError {
	return &TypeError{Kind: KindCannotInferLambda, Term: t}
}

func CannotInferPair(t term.Term) *TypeError {
	return &TypeError{Kind: KindCannotInferPair, Term: t}
}

func NotAFunction(f, typ, arg term.Term) *TypeError {
	return &TypeError{Kind: KindNotAFunction, Term: f, Expected: typ, Arg: arg}
}

func NotAPair(t, typ term.Term, projection string) *TypeError {
	return &TypeError{Kind: KindNotAPair, Term: t, Expected: typ, Projection: projection}
}

func ExpectedFunctionType(t, expected term.Term) *TypeError {
	return &TypeError{Kind: KindExpectedFunctionType, Term: t, Expected: expected}
}

func InvalidTypeFamily(t term.Term) *TypeError {
	return &TypeError{Kind: KindInvalidTypeFamily, Term: t}
}

func TopeContextNotSatisfied(t, phi term.Term, topes []term.Term) *TypeError {
	return &TypeError{Kind: KindTopeContextNotSatisfied, Term: t, Phi: phi, Topes: topes}
}
