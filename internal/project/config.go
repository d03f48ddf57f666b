// Package project loads rzk.yaml, the per-project file describing which
// .rzk modules a run should load and in what order (spec §4.7's module
// driver consumes the result). Grounded on the teacher's
// internal/ext/config.go funxy.yaml loader: same read-parse-validate-
// defaults shape, same yaml.v3 dependency.
package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rzk-lang/rzkcore/internal/config"
)

// Config is the top-level rzk.yaml shape.
type Config struct {
	// Include lists glob patterns (relative to the config file's
	// directory) of .rzk modules to load, in the order the driver
	// should process them once expanded and sorted.
	Include []string `yaml:"include"`
}

// LoadConfig reads and parses an rzk.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses rzk.yaml content from bytes. path is used only for
// error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	for _, pat := range c.Include {
		if pat == "" {
			return fmt.Errorf("%s: include entry must not be empty", path)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if len(c.Include) == 0 {
		c.Include = []string{"*" + config.SourceFileExt}
	}
}

// FindConfig searches for rzk.yaml starting from dir and walking up to
// parent directories, the same discovery strategy the teacher uses for
// funxy.yaml. Returns "" with a nil error if no config is found anywhere
// above dir.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "rzk.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ResolveModules expands every Include pattern against baseDir
// concurrently (each glob is independent I/O, hence errgroup rather than
// a sequential loop) and returns the matched paths sorted for
// deterministic load order.
func (c *Config) ResolveModules(ctx context.Context, baseDir string) ([]string, error) {
	matches := make([][]string, len(c.Include))
	g, _ := errgroup.WithContext(ctx)
	for i, pat := range c.Include {
		i, pat := i, pat
		g.Go(func() error {
			ms, err := filepath.Glob(filepath.Join(baseDir, pat))
			if err != nil {
				return fmt.Errorf("include pattern %q: %w", pat, err)
			}
			matches[i] = ms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, ms := range matches {
		for _, m := range ms {
			if !config.HasSourceExt(m) {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}
