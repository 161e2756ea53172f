package main

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(16)
)

var stdoutIsTerminal = sync.OnceValue(func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
})

// render styles text only when stdout is a terminal, so piped output stays
// plain.
func render(style lipgloss.Style, text string) string {
	if !stdoutIsTerminal() {
		return text
	}
	return style.Render(text)
}

func heading(text string) string { return render(headingStyle, text) }
func dim(text string) string     { return render(dimStyle, text) }
func success(text string) string { return render(successStyle, text) }

func printField(name, value string) {
	if !stdoutIsTerminal() {
		os.Stdout.WriteString(name + ": " + value + "\n")
		return
	}
	os.Stdout.WriteString(fieldStyle.Render(name) + value + "\n")
}
