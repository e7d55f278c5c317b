package magetasks

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// Console prints task progress.
type Console struct {
	W io.Writer
}

func (c Console) Header(title string) {
	fmt.Fprintf(c.W, "\n%s\n\n", headerStyle.Render("=== "+title+" ==="))
}

func (c Console) Success(msg string) { fmt.Fprintln(c.W, successStyle.Render("ok   "+msg)) }

func (c Console) Warning(msg string) { fmt.Fprintln(c.W, warnStyle.Render("warn "+msg)) }

func (c Console) Error(msg string) { fmt.Fprintln(c.W, errorStyle.Render("FAIL "+msg)) }
