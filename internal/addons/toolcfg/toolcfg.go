// Package toolcfg implements the `coppo config` addon for the global
// toolchain configuration at ~/.coppo/config.toml.
package toolcfg

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"coppo/internal/addon"
	"coppo/internal/config"
	"coppo/internal/logging"
	"coppo/internal/manifest"
)

// Addon inspects and scaffolds the global config. Out defaults to stdout.
type Addon struct {
	Out io.Writer
}

// New constructs the addon.
func New() *Addon {
	return &Addon{Out: os.Stdout}
}

func (a *Addon) Name() string { return "config" }

func (a *Addon) Version() string { return "" }

func (a *Addon) Description() string { return "Inspect or create the global coppo configuration" }

func (a *Addon) Args() []addon.Arg {
	return []addon.Arg{
		{Name: "action", Usage: "One of show, init, path", Positional: true, Default: "show"},
		{Name: "path", Shorthand: "p", Usage: "Config file location (defaults to ~/.coppo/config.toml)"},
		{Name: "overwrite", Usage: "Replace an existing config on init", Bool: true},
	}
}

// Run performs the requested action against the global config. The project
// manifest is not consulted.
func (a *Addon) Run(_ *manifest.Config, inv *addon.Invocation) error {
	path := inv.String("path")

	switch action := inv.String("action"); action {
	case "show":
		return a.show(path)
	case "path":
		return a.printPath(path)
	case "init":
		return a.initSample(path, inv.Bool("overwrite"))
	default:
		return fmt.Errorf("unknown action %q (expected show, init, or path)", action)
	}
}

func (a *Addon) show(path string) error {
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		return err
	}
	if !exists {
		logging.Default().Warn("no config file at %s; showing defaults", resolved)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = a.Out.Write(data)
	return err
}

func (a *Addon) printPath(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.Out, resolved)
	return err
}

func (a *Addon) initSample(path string, overwrite bool) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	if !overwrite {
		if _, err := os.Stat(resolved); err == nil {
			return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", resolved)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check config path: %w", err)
		}
	}

	if err := config.CreateSample(resolved); err != nil {
		return err
	}
	logging.Default().Success("Wrote sample configuration to %s", resolved)
	return nil
}

func resolvePath(path string) (string, error) {
	if path == "" {
		return config.DefaultConfigPath()
	}
	return config.ExpandPath(path)
}
