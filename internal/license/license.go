// Package license prints the license texts embedded in the stew binary.
package license

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/dkoosis/stew/internal/config"
)

var (
	//go:embed texts/stew.txt
	stewLicense string

	//go:embed texts/dependencies.txt
	dependencyLicenses string
)

// Text returns the license text for l.
func Text(l config.License) string {
	switch l {
	case config.ThisSoftware:
		return stewLicense
	case config.Dependencies:
		return dependencyLicenses
	default:
		return ""
	}
}

// Renderer writes license texts under a heading.
type Renderer struct {
	w       io.Writer
	name    string
	heading lipgloss.Style
}

// NewRenderer returns a Renderer for the tool called name. Headings are
// styled only when w is a terminal.
func NewRenderer(w io.Writer, name string) *Renderer {
	heading := lipgloss.NewStyle()
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		heading = heading.Bold(true).Foreground(lipgloss.Color("39"))
	}
	return &Renderer{w: w, name: name, heading: heading}
}

// Render writes the license text for l. Write errors are ignored; there is
// nothing useful to do about a closed stdout here.
func (r *Renderer) Render(l config.License) {
	title := r.title(l)
	rule := strings.Repeat("=", runewidth.StringWidth(title))
	fmt.Fprintf(r.w, "%s\n%s\n\n%s\n", r.heading.Render(title), rule, strings.TrimRight(Text(l), "\n"))
	fmt.Fprintln(r.w)
}

func (r *Renderer) title(l config.License) string {
	switch l {
	case config.ThisSoftware:
		return fmt.Sprintf("License of %s", r.name)
	case config.Dependencies:
		return fmt.Sprintf("Licenses of the dependencies of %s", r.name)
	default:
		return l.String()
	}
}
