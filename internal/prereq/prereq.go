package prereq

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// ErrMissing matches any *MissingError.
var ErrMissing = errors.New("dependency not installed")

// Requirement is a package that must be installed under the modules directory.
type Requirement struct {
	Name    string
	Dir     string
	Purpose string
}

type MissingError struct {
	Requirement Requirement
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s not installed at %s (provides %s)", e.Requirement.Name, e.Requirement.Dir, e.Requirement.Purpose)
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

// Check reports whether the requirement's directory exists.
// A missing directory yields a *MissingError; other stat failures are returned as-is.
func Check(fs afero.Fs, req Requirement) error {
	ok, err := afero.DirExists(fs, req.Dir)
	if err != nil {
		return fmt.Errorf("check %s: %w", req.Dir, err)
	}
	if !ok {
		return &MissingError{Requirement: req}
	}
	return nil
}
