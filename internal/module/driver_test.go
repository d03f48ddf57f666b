package module

import (
	"testing"

	"github.com/rzk-lang/rzkcore/internal/checker"
	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/term"
)

func TestCheckModuleDefinesDeclsInOrder(t *testing.T) {
	c := checker.NewContext()
	drv := NewDriver()
	decls := []Decl{
		{Name: "unit", Value: term.CubeUnit{}},
		{Name: "star", Type: term.CubeUnit{}, Value: term.CubeUnitStar{}},
		{Name: "useStar", Value: term.Var{Name: "star"}},
	}
	checked, err := drv.CheckModule(c, "m.rzk", []byte("m"), decls)
	if err != nil {
		t.Fatalf("CheckModule: %v", err)
	}
	if len(checked) != 3 {
		t.Fatalf("expected 3 checked decls, got %d", len(checked))
	}
	if checked[2].Type.String() != (term.CubeUnit{}).String() {
		t.Fatalf("expected useStar's inferred type to be CubeUnit, got %s", checked[2].Type)
	}
}

func TestCheckModuleHaltsOnFirstError(t *testing.T) {
	c := checker.NewContext()
	drv := NewDriver()
	decls := []Decl{
		{Name: "bad", Loc: diagnostics.Location{File: "m.rzk", Line: 3}, Value: term.App{Fun: term.CubeUnitStar{}, Arg: term.CubeUnitStar{}}},
		{Name: "neverReached", Value: term.CubeUnit{}},
	}
	checked, err := drv.CheckModule(c, "m.rzk", []byte("m"), decls)
	if err == nil {
		t.Fatalf("expected applying a non-function to be a type error")
	}
	if len(checked) != 0 {
		t.Fatalf("expected no decls to survive the halt, got %d", len(checked))
	}
	if _, ok := c.LookupType("neverReached"); ok {
		t.Fatalf("expected the declaration after the error never to be checked")
	}
}

func TestCheckModuleCacheHitSkipsRecheck(t *testing.T) {
	c := checker.NewContext()
	drv := &Driver{Cache: NewCache()}
	content := []byte("same bytes")
	decls := []Decl{{Name: "unit", Value: term.CubeUnit{}}}

	if _, err := drv.CheckModule(c, "m.rzk", content, decls); err != nil {
		t.Fatalf("first CheckModule: %v", err)
	}

	c2 := checker.NewContext()
	checked, err := drv.CheckModule(c2, "m.rzk", content, nil)
	if err != nil {
		t.Fatalf("cached CheckModule: %v", err)
	}
	if len(checked) != 1 || checked[0].Name != "unit" {
		t.Fatalf("expected cached decls to be replayed, got %v", checked)
	}
	if _, ok := c2.LookupType("unit"); !ok {
		t.Fatalf("expected the cached decl's type to be defined on the fresh context")
	}
}
