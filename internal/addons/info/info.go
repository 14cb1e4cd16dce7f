// Package info implements the `coppo info` addon: it renders the project
// metadata, the dependency table, and the last build receipt.
package info

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"coppo/internal/addon"
	"coppo/internal/manifest"
	"coppo/internal/toolchain"
)

// Addon renders manifest information for the project in Dir. Out defaults to
// stdout; tests capture it.
type Addon struct {
	Dir string
	Out io.Writer
}

// New constructs the addon.
func New() *Addon {
	return &Addon{Dir: ".", Out: os.Stdout}
}

func (a *Addon) Name() string { return "info" }

func (a *Addon) Version() string { return "" }

func (a *Addon) Description() string { return "Show project metadata and dependencies" }

func (a *Addon) Args() []addon.Arg { return nil }

// Run prints the manifest contents. Requires a loaded manifest; the empty
// default means there is nothing to show.
func (a *Addon) Run(cfg *manifest.Config, _ *addon.Invocation) error {
	if cfg.IsEmpty() {
		return fmt.Errorf("could not find %s in the current directory", manifest.Filename)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendRow(table.Row{"Name", cfg.Project.Name})
	tw.AppendRow(table.Row{"Version", cfg.Project.Version})
	if len(cfg.Project.Authors) > 0 {
		tw.AppendRow(table.Row{"Authors", strings.Join(cfg.Project.Authors, ", ")})
	}
	if cfg.Project.Description != "" {
		tw.AppendRow(table.Row{"Description", cfg.Project.Description})
	}
	if cfg.Project.License != "" {
		tw.AppendRow(table.Row{"License", cfg.Project.License})
	}
	if cfg.Project.Repository != "" {
		tw.AppendRow(table.Row{"Repository", cfg.Project.Repository})
	}
	if receipt, err := toolchain.LoadReceipt(a.Dir); err == nil && receipt != nil {
		tw.AppendRow(table.Row{"Last build", fmt.Sprintf("%s (%s, %s)", receipt.BuiltAt.Format("2006-01-02 15:04:05 MST"), receipt.Profile, receipt.Compiler)})
	}
	fmt.Fprintln(a.Out, tw.Render())

	if len(cfg.Dependencies) == 0 {
		fmt.Fprintln(a.Out, "No dependencies.")
		return nil
	}

	names := make([]string, 0, len(cfg.Dependencies))
	for name := range cfg.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := table.NewWriter()
	deps.SetStyle(table.StyleRounded)
	deps.AppendHeader(table.Row{"Dependency", "Version"})
	for _, name := range names {
		deps.AppendRow(table.Row{name, cfg.Dependencies[name].Version})
	}
	fmt.Fprintln(a.Out, deps.Render())
	return nil
}
