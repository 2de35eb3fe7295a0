package config

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// FileName is the optional per-project config file, looked up in the project root.
const FileName = "forgeexec.toml"

type Config struct {
	ModulesDir string `toml:"modules_dir"`
	Dependency string `toml:"dependency"`
	Binary     string `toml:"binary,omitempty"`
	BinDir     string `toml:"bin_dir"`
	Mode       string `toml:"mode"`
	Strict     bool   `toml:"strict"`

	// Root is the absolute project root. It is never written to the file.
	Root string `toml:"-"`
}

// DefaultRoot is the working directory, which is the package root when
// the package manager runs install hooks.
func DefaultRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func Load(fs afero.Fs, root string) (*Config, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	cfg := &Config{
		ModulesDir: "node_modules",
		Dependency: "forge-exec-ipc-client",
		BinDir:     ".bin",
		Mode:       "0755",
		Root:       abs,
	}

	path := filepath.Join(abs, FileName)
	data, err := afero.ReadFile(fs, path)
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that would make the install paths ambiguous.
func (c *Config) Validate() error {
	if c.ModulesDir == "" {
		return fmt.Errorf("modules_dir cannot be empty")
	}
	if c.Dependency == "" {
		return fmt.Errorf("dependency cannot be empty")
	}
	if c.BinDir == "" {
		return fmt.Errorf("bin_dir cannot be empty")
	}
	if _, err := c.FileMode(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Save(fs afero.Fs, root string) error {
	path := filepath.Join(root, FileName)
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// FileMode parses Mode as an octal permission string such as "0755".
func (c *Config) FileMode() (os.FileMode, error) {
	v, err := strconv.ParseUint(c.Mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: must be octal like \"0755\"", c.Mode)
	}
	if v&^0o777 != 0 {
		return 0, fmt.Errorf("invalid mode %q: only permission bits are allowed", c.Mode)
	}
	return os.FileMode(v), nil
}

// BinaryName is the wrapper file name, which defaults to the dependency name.
func (c *Config) BinaryName() string {
	if c.Binary != "" {
		return c.Binary
	}
	return c.Dependency
}

// DependencyDir is the dependency's installation directory.
func (c *Config) DependencyDir() string {
	return filepath.Join(c.Root, c.ModulesDir, c.Dependency)
}

// SourceDir holds the vendored wrapper script.
func (c *Config) SourceDir() string {
	return filepath.Join(c.DependencyDir(), "bin")
}

func (c *Config) SourcePath() string {
	return filepath.Join(c.SourceDir(), c.BinaryName())
}

// TargetDir is the package manager's shared binary directory.
func (c *Config) TargetDir() string {
	return filepath.Join(c.Root, c.ModulesDir, c.BinDir)
}

func (c *Config) TargetPath() string {
	return filepath.Join(c.TargetDir(), c.BinaryName())
}
