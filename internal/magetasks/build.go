package magetasks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tasks runs the build tasks of a Project.
type Tasks struct {
	Project Project
	Console Console
	Run     CommandRunner
	Output  Output
	Now     func() time.Time
}

// New returns Tasks for p that print to stdout and run real commands.
func New(p Project) *Tasks {
	return &Tasks{
		Project: p,
		Console: Console{W: os.Stdout},
		Run:     Exec,
		Output:  ExecOutput,
		Now:     time.Now,
	}
}

// Ldflags stamps version, commit and build date into internal/version.
func (p Project) Ldflags(version, commit string, built time.Time) string {
	pkg := p.ModulePath + "/internal/version"
	return strings.Join([]string{
		"-s", "-w",
		fmt.Sprintf("-X '%s.Version=%s'", pkg, version),
		fmt.Sprintf("-X '%s.CommitHash=%s'", pkg, commit),
		fmt.Sprintf("-X '%s.BuildDate=%s'", pkg, built.UTC().Format(time.RFC3339)),
	}, " ")
}

// Build compiles the binary with version information from git.
func (t *Tasks) Build() error {
	t.Console.Header("Build")
	version := t.gitOr("dev", "describe", "--tags", "--always", "--dirty", "--match=v*")
	commit := t.gitOr("unknown", "rev-parse", "--short", "HEAD")

	ldflags := t.Project.Ldflags(version, commit, t.Now())
	if err := t.Run(t.Console.W, "go", "build", "-ldflags", ldflags, "-o", t.Project.BinPath, t.Project.MainPackage); err != nil {
		t.Console.Error("build")
		return err
	}
	t.Console.Success("built " + t.Project.BinPath)
	return nil
}

// Clean removes the binary's directory and the coverage profile.
func (t *Tasks) Clean() error {
	t.Console.Header("Clean")
	dir := filepath.Join(t.Project.Root, filepath.Dir(t.Project.BinPath))
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(t.Project.Root, "coverage.out")); err != nil && !os.IsNotExist(err) {
		return err
	}
	t.Console.Success("removed build artifacts")
	return nil
}

func (t *Tasks) gitOr(fallback string, args ...string) string {
	out, err := t.Output("git", args...)
	if err != nil || out == "" {
		return fallback
	}
	return out
}
