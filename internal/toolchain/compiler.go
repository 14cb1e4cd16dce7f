package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"coppo/internal/config"
)

var commandContext = exec.CommandContext

// SourceDir is the project subdirectory scanned for C++ sources.
const SourceDir = "src"

var sourceExtensions = map[string]struct{}{
	".cpp": {},
	".cc":  {},
	".cxx": {},
}

// BuildSpec describes one compilation request.
type BuildSpec struct {
	// Name is the output binary name, normally the project name.
	Name string
	// Release enables optimizations and selects the release profile.
	Release bool
}

// BuildResult reports a finished compilation.
type BuildResult struct {
	// Binary is the path of the produced executable.
	Binary string
	// Diagnostics is the compiler's combined output, possibly empty.
	Diagnostics string
}

// Option configures the compiler client.
type Option func(*Compiler)

// WithBinary overrides the configured compiler binary.
func WithBinary(binary string) Option {
	return func(c *Compiler) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// Compiler invokes the external C++ compiler.
type Compiler struct {
	binary string
	flags  []string
}

// NewCompiler constructs a client from the global configuration.
func NewCompiler(cfg *config.Config, opts ...Option) *Compiler {
	c := &Compiler{binary: "clang++"}
	if cfg != nil {
		if cfg.Linker.Compiler != "" {
			c.binary = cfg.Linker.Compiler
		}
		c.flags = append([]string(nil), cfg.Linker.Flags...)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the compiler binary the client will invoke.
func (c *Compiler) Binary() string {
	return c.binary
}

// Build compiles every source under dir/src into
// dir/target/{debug|release}/<name> and returns the produced binary path
// with any compiler diagnostics.
func (c *Compiler) Build(ctx context.Context, dir string, spec BuildSpec) (*BuildResult, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, errors.New("output name required")
	}

	sources, err := Sources(dir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no C++ sources found under %s", filepath.Join(dir, SourceDir))
	}

	outDir := filepath.Join(dir, "target", spec.Profile())
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	outPath := filepath.Join(outDir, spec.Name)

	args := append([]string(nil), sources...)
	if spec.Release {
		args = append(args, "-O2")
	}
	args = append(args, c.flags...)
	args = append(args, "-o", outPath)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	diagnostics := strings.TrimSpace(string(output))
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if diagnostics != "" {
				return nil, fmt.Errorf("%s exited with status %d:\n%s", c.binary, exitErr.ExitCode(), diagnostics)
			}
			return nil, fmt.Errorf("%s exited with status %d", c.binary, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("run %s: %w", c.binary, err)
	}

	return &BuildResult{Binary: outPath, Diagnostics: diagnostics}, nil
}

// Profile returns the target subdirectory for the spec.
func (s BuildSpec) Profile() string {
	if s.Release {
		return "release"
	}
	return "debug"
}

// Sources lists the project's C++ translation units in deterministic order.
func Sources(dir string) ([]string, error) {
	root := filepath.Join(dir, SourceDir)
	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := sourceExtensions[strings.ToLower(filepath.Ext(path))]; ok {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source directory %s not found", root)
		}
		return nil, fmt.Errorf("scan sources: %w", err)
	}
	sort.Strings(sources)
	return sources, nil
}

// RunBinary executes a built project binary in the foreground, wiring the
// given streams through to the child. A non-zero exit is returned as an
// *exec.ExitError so callers can surface the status code.
func RunBinary(ctx context.Context, binary string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with status %d", filepath.Base(binary), exitErr.ExitCode())
		}
		return fmt.Errorf("run %s: %w", binary, err)
	}
	return nil
}
