package magetasks

import (
	"errors"
	"fmt"
)

var golangciDisabled = "--disable=exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,tagalign"

// Test runs the test suite.
func (t *Tasks) Test() error {
	t.Console.Header("Tests")
	if err := t.Run(t.Console.W, "go", "test", "./..."); err != nil {
		t.Console.Error("tests")
		return err
	}
	t.Console.Success("all tests passed")
	return nil
}

// Race runs the test suite under the race detector.
func (t *Tasks) Race() error {
	t.Console.Header("Race Detector")
	if err := t.Run(t.Console.W, "go", "test", "-race", "./..."); err != nil {
		t.Console.Error("race detector")
		return err
	}
	t.Console.Success("no races detected")
	return nil
}

// Coverage writes coverage.out and prints the per-function summary.
func (t *Tasks) Coverage() error {
	t.Console.Header("Coverage")
	if err := t.Run(t.Console.W, "go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		t.Console.Error("tests")
		return err
	}
	if err := t.Run(t.Console.W, "go", "tool", "cover", "-func=coverage.out"); err != nil {
		t.Console.Warning("coverage summary: " + err.Error())
		return fmt.Errorf("go tool cover: %w", err)
	}
	t.Console.Success("wrote coverage.out")
	return nil
}

// Lint runs gofmt and vet, then staticcheck and golangci-lint when they are
// installed. Every failure is reported.
func (t *Tasks) Lint() error {
	t.Console.Header("Lint")
	var errs []error
	if err := t.Run(t.Console.W, "gofmt", "-l", "."); err != nil {
		errs = append(errs, fmt.Errorf("gofmt: %w", err))
	}
	if err := t.Run(t.Console.W, "go", "vet", "./..."); err != nil {
		errs = append(errs, fmt.Errorf("go vet: %w", err))
	}
	if err := t.optional("staticcheck", "./..."); err != nil {
		errs = append(errs, err)
	}
	if err := t.optional("golangci-lint", "run", golangciDisabled, "--timeout=5m", "./..."); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		t.Console.Error("lint")
		return errors.Join(errs...)
	}
	t.Console.Success("lint clean")
	return nil
}

// optional runs a linter that may not be installed; a missing tool is a
// warning, not a failure.
func (t *Tasks) optional(tool string, args ...string) error {
	err := t.Run(t.Console.W, tool, args...)
	if IsCommandNotFound(err) {
		t.Console.Warning(tool + " not installed, skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}
	return nil
}

// All builds, lints and tests, stopping at the first failing step.
func (t *Tasks) All() error {
	for _, step := range []func() error{t.Build, t.Lint, t.Test} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
