package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/tiling"
)

const stashWidth = 22

var (
	canvasStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	stashStyle = lipgloss.NewStyle().
			Width(stashWidth).
			PaddingLeft(1).
			Foreground(lipgloss.Color("250"))

	stashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
)

// renderStatusBar renders the frame counts and the focused frame.
func renderStatusBar(status tiling.Status, width int) string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	parts := []string{
		dot + " frametile sandbox",
		fmt.Sprintf("windows:%d", status.Windows),
		fmt.Sprintf("frames:%d", status.Frames),
		fmt.Sprintf("voids:%d", status.Voids),
		fmt.Sprintf("stashed:%d", status.Stashed),
	}
	if r := status.FocusedRect; r != nil {
		focus := fmt.Sprintf("focus:%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
		if status.FocusedNumber != 0 {
			focus += fmt.Sprintf(" #%d", status.FocusedNumber)
		}
		parts = append(parts, focus)
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

// renderMessageBar shows the outcome of the last key press.
func renderMessageBar(message string, failed bool, width int) string {
	color := lipgloss.Color("250")
	if failed {
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().
		Width(width).
		Foreground(color).
		Padding(0, 1).
		Render(message)
}

// renderStash lists the stash, most recent entry first.
func renderStash(entries []frame.Node, label labelFunc, height int) string {
	lines := []string{stashTitleStyle.Render("Stash")}
	if len(entries) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("(empty)"))
	}
	for i, entry := range entries {
		for _, leaf := range entry.Leaves() {
			if leaf.Window == 0 {
				continue
			}
			line := fmt.Sprintf("%d. %s", i+1, label(leaf))
			if leaf.Number != 0 {
				line += fmt.Sprintf(" #%d", leaf.Number)
			}
			lines = append(lines, line)
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return stashStyle.Height(height).Render(strings.Join(lines, "\n"))
}
