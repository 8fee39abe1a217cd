//go:build windows

package exec

import (
	"errors"
	"os"
	"os/exec"
)

// setProcessGroup is a no-op; Windows has no POSIX process groups.
func setProcessGroup(*exec.Cmd) {}

// killProcessGroup kills the process itself.
func killProcessGroup(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
