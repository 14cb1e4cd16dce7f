package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// Filename is the manifest file name expected in the project root.
const Filename = "Coppo.toml"

// ErrNotFound reports that a project directory has no manifest.
var ErrNotFound = errors.New("Coppo.toml not found")

// ParseError reports a manifest that exists but could not be decoded or
// fails the minimal shape requirements.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Config is the in-memory form of a project manifest.
type Config struct {
	Project      Project               `toml:"project"`
	Dependencies map[string]Dependency `toml:"dependencies"`
}

// Project holds the [project] section.
type Project struct {
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	Authors     []string `toml:"authors"`
	Description string   `toml:"description,omitempty"`
	License     string   `toml:"license,omitempty"`
	Repository  string   `toml:"repository,omitempty"`
}

// Dependency is one entry of the [dependencies] table.
type Dependency struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Default returns the empty manifest used when no Coppo.toml exists.
func Default() Config {
	return Config{Dependencies: map[string]Dependency{}}
}

// IsEmpty reports whether the config is the no-manifest default.
func (c *Config) IsEmpty() bool {
	return c.Project.Name == "" && c.Project.Version == ""
}

// Path returns the manifest location for a project directory.
func Path(dir string) string {
	return filepath.Join(dir, Filename)
}

// Exists reports whether a manifest file is present in dir without parsing it.
func Exists(dir string) bool {
	info, err := os.Stat(Path(dir))
	return err == nil && !info.IsDir()
}

// Load reads and validates the manifest in dir. A missing file yields an
// error matching ErrNotFound; a present but malformed file yields a
// *ParseError.
func Load(dir string) (*Config, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// Parse decodes manifest text and enforces the minimal shape: a loaded
// manifest always carries a non-empty project name and version.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Dependencies == nil {
		cfg.Dependencies = map[string]Dependency{}
	}
	if strings.TrimSpace(cfg.Project.Name) == "" {
		return nil, errors.New("project.name must be set")
	}
	if strings.TrimSpace(cfg.Project.Version) == "" {
		return nil, errors.New("project.version must be set")
	}
	return &cfg, nil
}

// Encode serializes the manifest back to TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}

// Write persists the manifest into dir. The file is flock-guarded so two
// coppo processes cannot interleave writes.
func (c *Config) Write(dir string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}

	path := Path(dir)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock manifest: %w", err)
	}
	if !ok {
		return fmt.Errorf("manifest %s is locked by another coppo process", path)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
