package nabla

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectConfig represents a nabla.toml project configuration file.
type ProjectConfig struct {
	// Stdlib controls whether the standard mathematical structures are
	// loaded before the project's own declarations. Defaults to true.
	Stdlib *bool `toml:"stdlib,omitempty"`

	// Files lists expression files (JSON expression trees) to check,
	// relative to nabla.toml.
	Files []string `toml:"files,omitempty"`

	// Bindings gives object names known types, e.g. x = "ℝ" or
	// A = "Matrix(2, 2, ℝ)" written as a registered type name.
	Bindings map[string]string `toml:"bindings,omitempty"`
}

// UseStdlib reports whether the standard library should be loaded.
func (c *ProjectConfig) UseStdlib() bool {
	return c == nil || c.Stdlib == nil || *c.Stdlib
}

// LoadProjectConfig loads a nabla.toml file from the given path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var config ProjectConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &config, nil
}

// FindProjectConfig searches for a nabla.toml file starting from dir
// and walking up to parent directories. Returns the path and the parsed
// config, or ("", nil, nil) if not found.
func FindProjectConfig(dir string) (string, *ProjectConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "nabla.toml")
		if _, err := os.Stat(path); err == nil {
			config, err := LoadProjectConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		// Stop at .git boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// ApplyBindings installs the config's object bindings on a checker.
func (c *ProjectConfig) ApplyBindings(checker *Checker) {
	if c == nil {
		return
	}
	for name, typeName := range c.Bindings {
		checker.Bind(name, NamedType(typeName))
	}
}
