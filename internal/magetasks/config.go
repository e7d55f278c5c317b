package magetasks

import (
	"os"
	"path/filepath"
)

// Project describes what the tasks build.
type Project struct {
	// ModulePath is the Go module path, used to address the version
	// variables in -ldflags.
	ModulePath string
	// MainPackage is the package built into the binary.
	MainPackage string
	// BinPath is the output path of the binary, relative to Root.
	BinPath string
	// Root is the project directory. Set by Initialize.
	Root string
}

// Stew is the project built by the Magefile.
var Stew = Project{
	ModulePath:  "github.com/dkoosis/stew",
	MainPackage: "./cmd/stew",
	BinPath:     "./bin/stew",
}

// Initialize records the working directory as the project root and makes
// sure the binary's directory exists.
func (p *Project) Initialize() error {
	root, err := os.Getwd()
	if err != nil {
		return err
	}
	p.Root = root
	return os.MkdirAll(filepath.Join(root, filepath.Dir(p.BinPath)), 0o750)
}
