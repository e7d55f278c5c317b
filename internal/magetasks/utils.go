package magetasks

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner runs name with args, streaming its output to out.
type CommandRunner func(out io.Writer, name string, args ...string) error

// Exec is the CommandRunner used outside tests.
func Exec(out io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Env = os.Environ()
	return cmd.Run()
}

// Output runs name and returns its trimmed standard output.
type Output func(name string, args ...string) (string, error)

// ExecOutput is the Output used outside tests.
func ExecOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// IsCommandNotFound reports whether err means the tool is not installed.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "no such file or directory")
}
