package toolchain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

const receiptName = ".receipt.toml"

// Receipt records one successful build.
type Receipt struct {
	ID       string    `toml:"id"`
	Project  string    `toml:"project"`
	Version  string    `toml:"version"`
	Compiler string    `toml:"compiler"`
	Profile  string    `toml:"profile"`
	BuiltAt  time.Time `toml:"built_at"`
}

// NewReceipt stamps a fresh receipt for a finished build.
func NewReceipt(project, projectVersion, compiler, profile string) Receipt {
	return Receipt{
		ID:       uuid.NewString(),
		Project:  project,
		Version:  projectVersion,
		Compiler: compiler,
		Profile:  profile,
		BuiltAt:  time.Now().UTC(),
	}
}

// Write persists the receipt under dir/target/<profile>/.
func (r Receipt) Write(dir string) error {
	data, err := toml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}
	outDir := filepath.Join(dir, "target", r.Profile)
	if err := ensureDir(outDir); err != nil {
		return err
	}
	path := filepath.Join(outDir, receiptName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	return nil
}

// LoadReceipt returns the most recent build receipt across the debug and
// release profiles, or nil when the project has never been built.
func LoadReceipt(dir string) (*Receipt, error) {
	var latest *Receipt
	for _, profile := range []string{"debug", "release"} {
		path := filepath.Join(dir, "target", profile, receiptName)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read receipt: %w", err)
		}
		var r Receipt
		if err := toml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parse receipt %s: %w", path, err)
		}
		if latest == nil || r.BuiltAt.After(latest.BuiltAt) {
			receipt := r
			latest = &receipt
		}
	}
	return latest, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
