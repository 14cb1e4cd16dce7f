// Package build implements the `coppo build` addon: it compiles the current
// project with the globally configured compiler.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"coppo/internal/addon"
	"coppo/internal/config"
	"coppo/internal/logging"
	"coppo/internal/manifest"
	"coppo/internal/toolchain"
)

const lockName = ".coppo.lock"

// Addon compiles the project in Dir (the working directory by default).
// ConfigPath optionally pins the global config location; tests use it.
type Addon struct {
	Dir        string
	ConfigPath string
}

// New constructs the addon.
func New() *Addon {
	return &Addon{Dir: "."}
}

func (a *Addon) Name() string { return "build" }

func (a *Addon) Version() string { return "" }

func (a *Addon) Description() string { return "Compile the current project" }

func (a *Addon) Args() []addon.Arg {
	return []addon.Arg{
		{Name: "release", Shorthand: "r", Usage: "Build with optimizations", Bool: true},
	}
}

// Run compiles the project and records a build receipt.
func (a *Addon) Run(cfg *manifest.Config, inv *addon.Invocation) error {
	logger := logging.Default()

	result, err := Compile(a.Dir, cfg, a.ConfigPath, inv.Bool("release"))
	if err != nil {
		return err
	}
	if result.Diagnostics != "" {
		logger.Warn("%s", result.Diagnostics)
	}

	logger.Success("Finished %s v%s -> %s", cfg.Project.Name, cfg.Project.Version, result.Binary)
	return nil
}

// Compile runs the shared build path used by both the build and run addons:
// verify the manifest, load the global config, take the build lock, invoke
// the compiler, and stamp a receipt.
func Compile(dir string, cfg *manifest.Config, configPath string, release bool) (*toolchain.BuildResult, error) {
	if !manifest.Exists(dir) {
		return nil, fmt.Errorf("could not find %s in the current directory; run `coppo new` first", manifest.Filename)
	}

	global, _, _, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	targetDir := filepath.Join(dir, "target")
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}

	lock := flock.New(filepath.Join(targetDir, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire build lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another coppo build is already running for %s", cfg.Project.Name)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	logging.Default().Info("Compiling %s v%s", cfg.Project.Name, cfg.Project.Version)

	spec := toolchain.BuildSpec{Name: cfg.Project.Name, Release: release}
	compiler := toolchain.NewCompiler(global)
	result, err := compiler.Build(context.Background(), dir, spec)
	if err != nil {
		return nil, err
	}

	receipt := toolchain.NewReceipt(cfg.Project.Name, cfg.Project.Version, compiler.Binary(), spec.Profile())
	if err := receipt.Write(dir); err != nil {
		logging.Default().Warn("could not record build receipt: %v", err)
	}

	return result, nil
}
