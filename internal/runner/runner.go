package runner

import (
	"os/exec"
	"syscall"
)

// Runner starts external programs. Mockable for tests.
type Runner interface {
	// RunBackground starts a command detached from the terminal and returns immediately.
	// Stdin/stdout/stderr are connected to /dev/null.
	RunBackground(name string, args ...string) error
	// LookPath resolves a program name the way the shell would.
	LookPath(name string) (string, error)
}

// SystemRunner starts real processes.
type SystemRunner struct{}

func (r *SystemRunner) RunBackground(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd.Start()
}

func (r *SystemRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
