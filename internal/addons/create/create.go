// Package create implements the `coppo new` addon: it scaffolds a fresh C++
// project with a manifest, a hello-world source file, and an ignore file.
package create

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"coppo/internal/addon"
	"coppo/internal/logging"
	"coppo/internal/manifest"
)

const initialVersion = "0.1.0"

const mainSource = `#include <iostream>

int main() {
    std::cout << "Hello, world!" << std::endl;
    return 0;
}
`

const gitignore = `/target
`

// Addon scaffolds new projects. Dir is the base for relative paths and
// defaults to the working directory.
type Addon struct {
	Dir string
}

// New constructs the addon.
func New() *Addon {
	return &Addon{Dir: "."}
}

func (a *Addon) Name() string { return "new" }

func (a *Addon) Version() string { return "" }

func (a *Addon) Description() string { return "Create a new Coppo project" }

func (a *Addon) Args() []addon.Arg {
	return []addon.Arg{
		{Name: "path", Usage: "Directory to create the project in", Positional: true, Required: true},
		{Name: "name", Shorthand: "n", Usage: "Project name (defaults to the final path segment)"},
	}
}

// Run creates the project directory, writes the manifest, the starter
// source, and the ignore file, and populates the shared config with the
// scaffolded values.
func (a *Addon) Run(cfg *manifest.Config, inv *addon.Invocation) error {
	path := strings.TrimSpace(inv.String("path"))
	if path == "" {
		return errors.New("project path required")
	}

	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(a.Dir, target)
	}

	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("destination %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check destination: %w", err)
	}

	name := strings.TrimSpace(inv.String("name"))
	if name == "" {
		name = filepath.Base(filepath.Clean(target))
	}
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("cannot derive a project name from %q; pass --name", path)
	}

	if err := os.MkdirAll(filepath.Join(target, "src"), 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	cfg.Project.Name = name
	cfg.Project.Version = initialVersion
	if cfg.Project.Authors == nil {
		cfg.Project.Authors = []string{}
	}
	if cfg.Dependencies == nil {
		cfg.Dependencies = map[string]manifest.Dependency{}
	}

	if err := cfg.Write(target); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(target, "src", "main.cpp"), []byte(mainSource), 0o644); err != nil {
		return fmt.Errorf("write main.cpp: %w", err)
	}
	if err := os.WriteFile(filepath.Join(target, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("write .gitignore: %w", err)
	}

	logging.Default().Success("Created project `%s` at %s", name, path)
	return nil
}
