// Package module drives the sequential processing of a module's
// declarations through the checker (spec §4.7): the source of Decl
// values is an external collaborator (a surface parser, out of scope
// here — spec "Non-goals"), reached only through the Decl struct below.
//
// Grounded on the teacher's internal/pipeline.Pipeline (a sequence of
// stages threading a context through in order) and internal/ext.Cache
// (content-hash keyed cache entries under a project-local directory) for
// the incremental module cache.
package module

import (
	"crypto/sha256"

	"github.com/rzk-lang/rzkcore/internal/checker"
	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/term"
)

// Decl is one top-level declaration of a module: `name : Type := Value`,
// or `name := Value` when Type is nil (inferred).
type Decl struct {
	Name  term.Ident
	Loc   diagnostics.Location
	Type  term.Term // optional
	Value term.Term
}

// CheckedDecl is a Decl after it has passed the checker, with Type
// filled in even when the source declaration omitted it.
type CheckedDecl struct {
	Name  term.Ident
	Type  term.Term
	Value term.Term
}

// Driver processes a module's declarations in order against a shared
// Context, halting at the first error (spec §4.7 "halt on first error").
//
// With a Cache attached, a module is replayed from the cache whenever its
// path and source bytes match a prior run; the contents of sibling
// modules are not part of the key. A cached module is therefore only
// correct if its checked declarations do not depend on anything another
// file put into the Context's value environment beyond declared types;
// callers whose modules rely on such cross-file effects must not attach a
// Cache for them. This is not checked at runtime.
type Driver struct {
	Cache *Cache
}

// NewDriver creates a driver with no cache attached (every CheckModule
// call re-checks from scratch).
func NewDriver() *Driver {
	return &Driver{}
}

// CheckModule type-checks decls in order, threading c, and defines each
// one permanently in c once it passes (so later decls in the same
// module, and declarations of later modules sharing c, can refer to it).
// If a cache is attached and path's content fingerprint matches a prior
// run, the cached results are replayed into c without re-checking.
func (d *Driver) CheckModule(c *checker.Context, path string, content []byte, decls []Decl) ([]CheckedDecl, error) {
	if d.Cache != nil {
		if cached, ok := d.Cache.get(path, content); ok {
			for _, cd := range cached {
				c.SetType(cd.Name, cd.Type)
				c.Define(cd.Name, cd.Value)
			}
			return cached, nil
		}
	}

	checked := make([]CheckedDecl, 0, len(decls))
	for _, decl := range decls {
		cd, err := checkDecl(c, decl)
		if err != nil {
			if te, ok := err.(*diagnostics.TypeError); ok {
				return checked, te.WithLocation(decl.Loc)
			}
			return checked, err
		}
		c.SetType(cd.Name, cd.Type)
		c.Define(cd.Name, cd.Value)
		checked = append(checked, cd)
	}

	if d.Cache != nil {
		d.Cache.put(path, content, checked)
	}
	return checked, nil
}

func checkDecl(c *checker.Context, decl Decl) (CheckedDecl, error) {
	if decl.Type != nil {
		if _, err := checker.Infer(c, decl.Type); err != nil {
			return CheckedDecl{}, err
		}
		if err := checker.Check(c, decl.Value, decl.Type); err != nil {
			return CheckedDecl{}, err
		}
		return CheckedDecl{Name: decl.Name, Type: decl.Type, Value: decl.Value}, nil
	}
	typ, err := checker.Infer(c, decl.Value)
	if err != nil {
		return CheckedDecl{}, err
	}
	return CheckedDecl{Name: decl.Name, Type: typ, Value: decl.Value}, nil
}

// fingerprint is a content hash used by Cache to detect an unchanged
// module (spec "incremental module cache" supplement).
func fingerprint(content []byte) [32]byte {
	return sha256.Sum256(content)
}
