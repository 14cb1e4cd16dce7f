package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const defaultCompiler = "clang++"

// Linker contains toolchain invocation settings. The section name follows
// the original ~/.coppo/config.toml layout.
type Linker struct {
	Compiler string   `toml:"compiler"`
	Flags    []string `toml:"flags"`
}

// Config encapsulates the global coppo settings.
type Config struct {
	Linker Linker `toml:"linker"`
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Linker: Linker{
			Compiler: defaultCompiler,
		},
	}
}

// DefaultConfigPath returns the absolute path of the global config file.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.coppo/config.toml")
}

// Load locates and parses the global configuration. An empty path means the
// default location. A missing file is not an error; defaults apply. The
// returned path is the resolved location and exists reports whether a file
// was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	} else {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		path = expanded
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return path, !info.IsDir(), nil
}

func (c *Config) normalize() {
	c.Linker.Compiler = strings.TrimSpace(c.Linker.Compiler)
	if value, ok := os.LookupEnv("COPPO_COMPILER"); ok && strings.TrimSpace(value) != "" {
		c.Linker.Compiler = strings.TrimSpace(value)
	}
	if c.Linker.Compiler == "" {
		c.Linker.Compiler = defaultCompiler
	}

	flags := c.Linker.Flags[:0]
	for _, flag := range c.Linker.Flags {
		if trimmed := strings.TrimSpace(flag); trimmed != "" {
			flags = append(flags, trimmed)
		}
	}
	c.Linker.Flags = flags
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Linker.Compiler == "" {
		return errors.New("linker.compiler must be set")
	}
	return nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves ~ shortcuts and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
