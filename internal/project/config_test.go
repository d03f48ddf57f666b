package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaultsInclude(t *testing.T) {
	cfg, err := ParseConfig([]byte("include: []\n"), "rzk.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "*.rzk" {
		t.Fatalf("expected default include [*.rzk], got %v", cfg.Include)
	}
}

func TestParseConfigRejectsEmptyPattern(t *testing.T) {
	_, err := ParseConfig([]byte("include: [\"\"]\n"), "rzk.yaml")
	if err == nil {
		t.Fatalf("expected an empty include pattern to be rejected")
	}
}

func TestFindConfigWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "rzk.yaml"), []byte("include: [\"*.rzk\"]\n"), 0o644); err != nil {
		t.Fatalf("seeding rzk.yaml: %v", err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfig(sub)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(root, "rzk.yaml"))
	if found != want {
		t.Fatalf("got %s, want %s", found, want)
	}
}

func TestFindConfigReturnsEmptyWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	found, err := FindConfig(dir)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if found != "" {
		t.Fatalf("expected no config found, got %s", found)
	}
}

func TestResolveModulesDedupsAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.rzk", "a.rzk", "ignored.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	cfg := &Config{Include: []string{"*.rzk", "*.rzk"}}
	got, err := cfg.ResolveModules(context.Background(), dir)
	if err != nil {
		t.Fatalf("ResolveModules: %v", err)
	}
	want := []string{filepath.Join(dir, "a.rzk"), filepath.Join(dir, "b.rzk")}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
