// Package dep implements the `coppo add` addon: it records a dependency in
// the manifest's [dependencies] table. Nothing is resolved or downloaded;
// the manifest is the only thing that changes.
package dep

import (
	"errors"
	"fmt"
	"strings"

	"coppo/internal/addon"
	"coppo/internal/logging"
	"coppo/internal/manifest"
)

// Addon edits the manifest of the project in Dir.
type Addon struct {
	Dir string
}

// New constructs the addon.
func New() *Addon {
	return &Addon{Dir: "."}
}

func (a *Addon) Name() string { return "add" }

func (a *Addon) Version() string { return "" }

func (a *Addon) Description() string { return "Add a dependency to the manifest" }

func (a *Addon) Args() []addon.Arg {
	return []addon.Arg{
		{Name: "dependency", Usage: "Dependency as name or name@version", Positional: true, Required: true},
	}
}

// Run inserts or updates the dependency entry and rewrites Coppo.toml.
func (a *Addon) Run(cfg *manifest.Config, inv *addon.Invocation) error {
	if !manifest.Exists(a.Dir) {
		return fmt.Errorf("could not find %s in the current directory", manifest.Filename)
	}

	name, version, err := splitSpec(inv.String("dependency"))
	if err != nil {
		return err
	}

	if cfg.Dependencies == nil {
		cfg.Dependencies = map[string]manifest.Dependency{}
	}
	cfg.Dependencies[name] = manifest.Dependency{Name: name, Version: version}

	if err := cfg.Write(a.Dir); err != nil {
		return err
	}

	logging.Default().Success("Added dependency %s (%s)", name, version)
	return nil
}

// splitSpec parses name[@version]; the version defaults to "*".
func splitSpec(spec string) (string, string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", "", errors.New("dependency required")
	}

	name, version, found := strings.Cut(spec, "@")
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if name == "" {
		return "", "", fmt.Errorf("invalid dependency %q", spec)
	}
	if !found || version == "" {
		version = "*"
	}
	return name, version, nil
}
