// Package run implements the `coppo run` addon: it compiles the current
// project and executes the produced binary in the foreground.
package run

import (
	"context"
	"os"

	"coppo/internal/addon"
	"coppo/internal/addons/build"
	"coppo/internal/logging"
	"coppo/internal/manifest"
	"coppo/internal/toolchain"
)

// Addon builds and runs the project in Dir. ConfigPath optionally pins the
// global config location; tests use it.
type Addon struct {
	Dir        string
	ConfigPath string
}

// New constructs the addon.
func New() *Addon {
	return &Addon{Dir: "."}
}

func (a *Addon) Name() string { return "run" }

func (a *Addon) Version() string { return "" }

func (a *Addon) Description() string { return "Compile and run the current project" }

func (a *Addon) Args() []addon.Arg {
	return []addon.Arg{
		{Name: "release", Shorthand: "r", Usage: "Build with optimizations", Bool: true},
		{Name: "args", Usage: "Arguments passed through to the program", Positional: true, Variadic: true},
	}
}

// Run compiles the project and hands the terminal to the produced binary.
// The child's exit status is the addon's result.
func (a *Addon) Run(cfg *manifest.Config, inv *addon.Invocation) error {
	result, err := build.Compile(a.Dir, cfg, a.ConfigPath, inv.Bool("release"))
	if err != nil {
		return err
	}

	logging.Default().Info("Running %s", result.Binary)
	return toolchain.RunBinary(context.Background(), result.Binary, inv.Rest(), os.Stdin, os.Stdout, os.Stderr)
}
