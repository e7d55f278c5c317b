//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/stew/internal/magetasks"
)

var tasks = magetasks.New(magetasks.Stew)

// Default target builds the stew binary.
var Default = Build

func init() {
	if err := tasks.Project.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "mage: %v\n", err)
		os.Exit(1)
	}
}

// Build builds bin/stew with version information from git.
func Build() error { return tasks.Build() }

// Clean removes build artifacts.
func Clean() error { return tasks.Clean() }

// Test runs the test suite.
func Test() error { return tasks.Test() }

// Lint runs the formatters and linters.
func Lint() error { return tasks.Lint() }

// All builds, lints and tests.
func All() error { return tasks.All() }

type Check mg.Namespace

// Race runs the tests under the race detector.
func (Check) Race() error { return tasks.Race() }

// Coverage writes coverage.out and prints a summary.
func (Check) Coverage() error { return tasks.Coverage() }
