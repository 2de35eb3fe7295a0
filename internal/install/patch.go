package install

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ErrTokenNotFound is returned when the wrapper does not contain the
// placeholder for its platform binary.
var ErrTokenNotFound = errors.New("wrapper placeholder not found")

// targetVar is the wrapper's platform variable, left for the shell to expand.
const targetVar = "${TARGET}"

// Token is the placeholder a wrapper uses to locate its platform binary
// relative to the wrapper's own directory.
func Token(binary string) string {
	return "$DIR/" + targetVar + "/" + binary
}

// RelativeOffset returns the slash-separated path leading from fromDir to toDir.
// Both paths are cleaned first, so "x/.bin/../vendor/bin" is handled like
// "x/vendor/bin". It returns "." when the directories are the same.
func RelativeOffset(fromDir, toDir string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(fromDir), filepath.Clean(toDir))
	if err != nil {
		return "", fmt.Errorf("relative path from %s to %s: %w", fromDir, toDir, err)
	}
	return filepath.ToSlash(rel), nil
}

// Patch rewrites the first placeholder in content so it resolves through offset.
func Patch(content, binary, offset string) (string, error) {
	token := Token(binary)
	if !strings.Contains(content, token) {
		return "", fmt.Errorf("%w: %q", ErrTokenNotFound, token)
	}
	replacement := "$DIR/" + path.Join(offset, targetVar, binary)
	return strings.Replace(content, token, replacement, 1), nil
}

// checkShell fails when a wrapper that parsed as a shell script no longer
// parses after patching. Wrappers that never parsed are not checked.
func checkShell(name, before, after string) error {
	parser := syntax.NewParser()
	if _, err := parser.Parse(strings.NewReader(before), name); err != nil {
		return nil
	}
	if _, err := parser.Parse(strings.NewReader(after), name); err != nil {
		return fmt.Errorf("patched wrapper is not a valid shell script: %w", err)
	}
	return nil
}
