package cli

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"coppo/internal/addon"
	"coppo/internal/logging"
	"coppo/internal/manifest"
	"coppo/internal/version"
)

// Runner owns the registered addon set and the dispatch state for one
// process invocation.
type Runner struct {
	addons   []addon.Addon
	warnings []string
	dir      string
	quiet    bool

	manifestOnce sync.Once
	manifestCfg  *manifest.Config
	manifestErr  error
}

// New constructs a Runner rooted at the current working directory.
func New() *Runner {
	return &Runner{dir: "."}
}

// WithDir overrides the directory searched for Coppo.toml. Used by tests.
func (r *Runner) WithDir(dir string) *Runner {
	if strings.TrimSpace(dir) != "" {
		r.dir = dir
	}
	return r
}

// Register appends an addon to the ordered registry. Registration order
// determines help listing order and breaks name collisions: the first
// registration wins and later duplicates never receive a subcommand.
func (r *Runner) Register(a addon.Addon) *Runner {
	r.addons = append(r.addons, a)
	return r
}

// Warnings returns the registration diagnostics collected by Build that have
// not been emitted yet.
func (r *Runner) Warnings() []string {
	return r.warnings
}

// Build assembles the top-level command surface: the root command with the
// global quiet flag plus one subcommand per uniquely named addon. Duplicate
// names are detected here, not at dispatch time; the resulting warnings are
// flushed through the logger once quiet mode is known.
func (r *Runner) Build() *cobra.Command {
	root := &cobra.Command{
		Use:           "coppo",
		Short:         "A Cargo-style package manager for C++ projects",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := logging.Init(r.quiet)
			for _, warning := range r.warnings {
				logger.Warn("%s", warning)
			}
			r.warnings = nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVarP(&r.quiet, "quiet", "q", false, "Suppress info, warning, and success output")

	seen := make(map[string]struct{}, len(r.addons))
	for _, a := range r.addons {
		name := a.Name()
		if _, dup := seen[name]; dup {
			r.warnings = append(r.warnings, fmt.Sprintf("addon %q registered twice; keeping the first registration", name))
			continue
		}
		seen[name] = struct{}{}
		root.AddCommand(r.buildSubcommand(a))
	}

	return root
}

// Execute builds the surface and runs it against the process arguments.
func (r *Runner) Execute() error {
	return r.Build().Execute()
}

func (r *Runner) buildSubcommand(a addon.Addon) *cobra.Command {
	specs := a.Args()
	token := a.Name()

	use := token
	fixed := 0
	required := 0
	variadic := false
	for _, spec := range specs {
		if !spec.Positional {
			continue
		}
		switch {
		case spec.Variadic:
			variadic = true
			use += fmt.Sprintf(" [%s...]", spec.Name)
		case spec.Required:
			fixed++
			required++
			use += fmt.Sprintf(" <%s>", spec.Name)
		default:
			fixed++
			use += fmt.Sprintf(" [%s]", spec.Name)
		}
	}

	subVersion := a.Version()
	if subVersion == "" {
		subVersion = version.Version
	}

	validator := cobra.RangeArgs(required, fixed)
	if variadic {
		validator = cobra.MinimumNArgs(required)
	}

	cmd := &cobra.Command{
		Use:     use,
		Short:   a.Description(),
		Version: subVersion,
		Args:    validator,
		RunE: func(cmd *cobra.Command, cliArgs []string) error {
			return r.dispatch(token, cmd, cliArgs)
		},
	}

	for _, spec := range specs {
		if spec.Positional {
			continue
		}
		if spec.Bool {
			cmd.Flags().BoolP(spec.Name, spec.Shorthand, spec.Default == "true", spec.Usage)
		} else {
			cmd.Flags().StringP(spec.Name, spec.Shorthand, spec.Default, spec.Usage)
		}
	}

	return cmd
}

// dispatch routes one parsed invocation to the matching addon. Resolution is
// a linear scan in registration order so a shadowed duplicate can never be
// reached, mirroring the surface built from the same registry.
func (r *Runner) dispatch(token string, cmd *cobra.Command, cliArgs []string) error {
	target := r.lookup(token)
	if target == nil {
		return fmt.Errorf("internal: command %q has no registered addon", token)
	}

	cfg, err := r.ensureManifest()
	if err != nil {
		return err
	}

	return target.Run(cfg, bindInvocation(target.Args(), cmd.Flags(), cliArgs))
}

func (r *Runner) lookup(token string) addon.Addon {
	for _, a := range r.addons {
		if a.Name() == token {
			return a
		}
	}
	return nil
}

// ensureManifest loads Coppo.toml at most once per process. A missing
// manifest is not an error here; addons that require one check Exists
// themselves. A malformed manifest is terminal.
func (r *Runner) ensureManifest() (*manifest.Config, error) {
	r.manifestOnce.Do(func() {
		cfg, err := manifest.Load(r.dir)
		if err != nil {
			if errors.Is(err, manifest.ErrNotFound) {
				def := manifest.Default()
				r.manifestCfg = &def
				return
			}
			r.manifestErr = err
			return
		}
		r.manifestCfg = cfg
	})
	return r.manifestCfg, r.manifestErr
}

func bindInvocation(specs []addon.Arg, flags *pflag.FlagSet, cliArgs []string) *addon.Invocation {
	positionals := map[string]string{}
	var rest []string

	next := 0
	for _, spec := range specs {
		if !spec.Positional {
			continue
		}
		if spec.Variadic {
			rest = append(rest, cliArgs[next:]...)
			next = len(cliArgs)
			continue
		}
		if next < len(cliArgs) {
			positionals[spec.Name] = cliArgs[next]
			next++
		} else if spec.Default != "" {
			positionals[spec.Name] = spec.Default
		}
	}

	return addon.NewInvocation(flags, positionals, rest)
}
