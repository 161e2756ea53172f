package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

var kindByName = map[string]launcherKind{
	"rofi":   kindRofi,
	"fuzzel": kindFuzzel,
	"wofi":   kindWofi,
	"dmenu":  kindDmenu,
}

// launcher runs a dmenu-style program: items on stdin, the pick on stdout.
type launcher struct {
	command string
	kind    launcherKind
}

// indexOutput reports whether the launcher prints the row index instead of
// the row text.
func (l *launcher) indexOutput() bool {
	return l.kind == kindRofi || l.kind == kindFuzzel
}

func (l *launcher) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	display := l.disambiguate(items)

	cmd := exec.Command(l.command, l.args(prompt)...)
	cmd.Stdin = strings.NewReader(l.input(display))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", l.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", l.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parseSelection(selection, display)
}

func (l *launcher) args(prompt string) []string {
	var args []string

	switch l.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	case kindWofi:
		args = []string{"--dmenu"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	case kindDmenu:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}
	return args
}

// disambiguate copies items, numbering repeated labels for launchers that
// report the picked text.
func (l *launcher) disambiguate(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	if l.indexOutput() {
		return out
	}

	seen := make(map[string]int)
	for i := range out {
		key := sanitizeLabel(out[i].Label)
		if out[i].IsHeader || key == "" {
			continue
		}
		if count := seen[key]; count > 0 {
			out[i].Label = fmt.Sprintf("%s (%d)", key, count+1)
		}
		seen[key]++
	}
	return out
}

func (l *launcher) input(items []Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, l.formatItem(item))
	}
	return strings.Join(lines, "\n")
}

func (l *launcher) formatItem(item Item) string {
	label := sanitizeLabel(item.Label)
	if l.kind != kindRofi {
		if item.IsHeader {
			return "── " + label + " ──"
		}
		return label
	}

	// Rofi row properties follow a single NUL, separated by \x1f.
	label = html.EscapeString(label)
	if item.IsHeader {
		return "<b>" + label + "</b>\x00nonselectable\x1ftrue"
	}
	return label
}

func (l *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if l.indexOutput() {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if l.formatItem(item) == selection || sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\x00", " ")
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// 1 is "no selection", 130 is Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
