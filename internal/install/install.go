// Package install places a dependency's wrapper script into the package
// manager's shared binary directory, rewriting the wrapper so it still finds
// its platform binaries from the new location.
package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/frostyard/forgeexec/internal/config"
	"github.com/frostyard/forgeexec/internal/prereq"
	"github.com/spf13/afero"
)

// Purpose describes what the dependency supplies, for the missing-dependency message.
const Purpose = "the executable needed for forge-exec to operate"

type Installer struct {
	Fs     afero.Fs
	Logger *log.Logger
	// DryRun reads and patches the wrapper but changes nothing on disk.
	DryRun bool
}

// Result describes a completed install.
type Result struct {
	Source string
	Target string
	Offset string
	Mode   os.FileMode
}

func New(fs afero.Fs, logger *log.Logger) *Installer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Installer{Fs: fs, Logger: logger}
}

// Run installs the wrapper described by cfg. When the dependency is not
// installed it returns an error matching prereq.ErrMissing and touches nothing.
func (in *Installer) Run(cfg *config.Config) (*Result, error) {
	mode, err := cfg.FileMode()
	if err != nil {
		return nil, err
	}

	req := prereq.Requirement{
		Name:    cfg.Dependency,
		Dir:     cfg.DependencyDir(),
		Purpose: Purpose,
	}
	if err := prereq.Check(in.Fs, req); err != nil {
		return nil, err
	}

	res := &Result{
		Source: cfg.SourcePath(),
		Target: cfg.TargetPath(),
		Mode:   mode,
	}

	if !in.DryRun {
		in.Logger.Debug("fixing permissions", "path", res.Source, "mode", fmt.Sprintf("%04o", mode))
		if err := in.Fs.Chmod(res.Source, mode); err != nil {
			return nil, fmt.Errorf("chmod %s: %w", res.Source, err)
		}

		in.Logger.Debug("ensuring directory", "path", cfg.TargetDir())
		if err := in.Fs.MkdirAll(cfg.TargetDir(), 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", cfg.TargetDir(), err)
		}
	}

	data, err := afero.ReadFile(in.Fs, res.Source)
	if err != nil {
		return nil, fmt.Errorf("read wrapper: %w", err)
	}

	res.Offset, err = RelativeOffset(cfg.TargetDir(), cfg.SourceDir())
	if err != nil {
		return nil, err
	}
	in.Logger.Debug("computed offset", "from", cfg.TargetDir(), "to", cfg.SourceDir(), "offset", res.Offset)

	content := string(data)
	patched, err := Patch(content, cfg.BinaryName(), res.Offset)
	if err != nil {
		return nil, fmt.Errorf("patch %s: %w", res.Source, err)
	}
	if err := checkShell(res.Source, content, patched); err != nil {
		return nil, err
	}

	if in.DryRun {
		in.Logger.Info("dry run, not writing", "target", res.Target, "offset", res.Offset)
		return res, nil
	}

	if err := in.unlinkSymlink(res.Target); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(in.Fs, res.Target, []byte(patched), mode); err != nil {
		return nil, fmt.Errorf("write %s: %w", res.Target, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := in.Fs.Chmod(res.Target, mode); err != nil {
		return nil, fmt.Errorf("chmod %s: %w", res.Target, err)
	}

	in.Logger.Info("installed wrapper", "target", res.Target)
	return res, nil
}

// unlinkSymlink removes path when it is a symlink, so the write below
// replaces the link instead of going through it. Package managers usually
// link bin entries straight to the vendored wrapper.
func (in *Installer) unlinkSymlink(path string) error {
	lst, ok := in.Fs.(afero.Lstater)
	if !ok {
		return nil
	}
	fi, _, err := lst.LstatIfPossible(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	in.Logger.Debug("replacing symlink", "path", path)
	if err := in.Fs.Remove(path); err != nil {
		return fmt.Errorf("remove symlink %s: %w", path, err)
	}
	return nil
}
