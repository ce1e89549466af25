// Package ui holds kr's terminal output, prompts and logging setup.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func FprintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, successStyle.Render("✓")+" "+msg)
}

func FprintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, warningStyle.Render("!")+" "+msg)
}

func FprintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, errorStyle.Render("✗")+" "+msg)
}

// URL renders a link for display on w. Writers that are not terminals get
// the plain URL.
func URL(w io.Writer, u string) string {
	return lipgloss.NewRenderer(w).NewStyle().Underline(true).Render(u)
}
