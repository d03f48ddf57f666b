// Command rzk type-checks a project's modules against rzk.yaml (spec
// §4.7, §6). It owns project discovery, the module driver, and
// diagnostic rendering; turning .rzk source text into module.Decl
// values is the surface parser's job, which is explicitly out of scope
// here (spec Non-goals) — rzk reaches it only through the Frontend
// interface below, the way the teacher's pkg/cli/entry.go reaches a
// pluggable BackendType rather than hard-coding one executor.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/rzk-lang/rzkcore/internal/checker"
	"github.com/rzk-lang/rzkcore/internal/config"
	"github.com/rzk-lang/rzkcore/internal/diagnostics"
	"github.com/rzk-lang/rzkcore/internal/module"
	"github.com/rzk-lang/rzkcore/internal/project"
)

// Frontend turns a module's raw source into declarations ready for the
// checker. No implementation ships in this module; a surface parser is
// wired in by whatever embeds rzk as a library (spec §6 "external
// collaborators reached only through interfaces").
type Frontend interface {
	ParseModule(path string, content []byte) ([]module.Decl, error)
}

// ActiveFrontend is the parser hook. It is nil until a caller sets it
// (e.g. from an init() in a sibling package that imports a parser),
// mirroring the teacher's BackendType build-time selection.
var ActiveFrontend Frontend

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	dir := "."
	if len(args) > 0 {
		if args[0] == "-version" || args[0] == "--version" {
			fmt.Println("rzk " + config.Version)
			return 0
		}
		dir = args[0]
	}

	runID := uuid.New().String()
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	cfgPath, err := project.FindConfig(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rzk: %v\n", err)
		return 1
	}
	if cfgPath == "" {
		fmt.Fprintf(os.Stderr, "rzk: no rzk.yaml found above %s\n", dir)
		return 1
	}

	cfg, err := project.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rzk: %v\n", err)
		return 1
	}

	baseDir := filepath.Dir(cfgPath)
	paths, err := cfg.ResolveModules(context.Background(), baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rzk: %v\n", err)
		return 1
	}

	if ActiveFrontend == nil {
		fmt.Fprintf(os.Stderr, "rzk [%s]: no frontend registered; rzk is the checker and module driver only, not a parser\n", runID)
		return 1
	}

	c := checker.NewContext()
	drv := &module.Driver{Cache: module.NewCache()}

	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rzk [%s]: %v\n", runID, err)
			return 1
		}
		decls, err := ActiveFrontend.ParseModule(p, content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rzk [%s]: %s: %v\n", runID, p, err)
			return 1
		}
		if _, err := drv.CheckModule(c, p, content, decls); err != nil {
			reportError(os.Stderr, runID, c, err, color)
			return 1
		}
	}

	if color {
		fmt.Println("\x1b[32mEverything is ok!\x1b[0m")
	} else {
		fmt.Println("Everything is ok!")
	}
	return 0
}

func reportError(w *os.File, runID string, c *checker.Context, err error, color bool) {
	te, ok := err.(*diagnostics.TypeError)
	if !ok {
		fmt.Fprintf(w, "rzk [%s]: %v\n", runID, err)
		return
	}
	if color {
		fmt.Fprintf(w, "rzk [%s]: \x1b[31m%s\x1b[0m\n", runID, te.Pretty())
	} else {
		fmt.Fprintf(w, "rzk [%s]: %s\n", runID, te.Pretty())
	}
	fmt.Fprintln(w, c.Dump())
}
