package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/frametile/internal/config"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func newTestModel(t *testing.T) model {
	t.Helper()
	m, err := newSandbox(config.DefaultConfig())
	if err != nil {
		t.Fatalf("newSandbox: %v", err)
	}
	return m
}

func TestSandboxOpensAndFocusesWindows(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("o"), runes("o"))
	status := m.tiler.Status()
	if status.Windows != 2 || status.Voids != 0 {
		t.Fatalf("expected two tiled windows, got %+v", status)
	}
	if r := status.FocusedRect; r == nil || r.X != 960 {
		t.Fatalf("expected the new window on the right to be focused, got %+v", r)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if r := m.tiler.Status().FocusedRect; r == nil || r.X != 0 {
		t.Fatalf("focus-left did not move focus, got %+v", r)
	}
	if m.message != "focus-left" || m.failed {
		t.Fatalf("unexpected message %q", m.message)
	}

	m = press(t, m, runes("h"))
	if m.message != "focus-left: nothing to do" {
		t.Fatalf("unexpected message %q", m.message)
	}
}

func TestSandboxStashSplitAndFill(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("o"), runes("o"), runes("h"))

	m = press(t, m, runes("z"))
	status := m.tiler.Status()
	if status.Stashed != 1 || status.Voids != 1 {
		t.Fatalf("stash should leave a void, got %+v", status)
	}

	m = press(t, m, runes("u"))
	status = m.tiler.Status()
	if status.Stashed != 0 || status.Windows != 2 {
		t.Fatalf("unstash should restore the window, got %+v", status)
	}

	m = press(t, m, runes("|"))
	if status = m.tiler.Status(); status.Voids != 1 || status.Frames != 3 {
		t.Fatalf("split should add a void frame, got %+v", status)
	}

	m = press(t, m, runes("o"))
	if status = m.tiler.Status(); status.Voids != 0 || status.Windows != 3 {
		t.Fatalf("a new window should fill the focused void, got %+v", status)
	}
	if err := m.tiler.Validate(); err != nil {
		t.Fatalf("layout invalid: %v", err)
	}
}

func TestSandboxReportsErrors(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("o"))

	m = press(t, m, runes("x"))
	if !m.failed || !strings.HasPrefix(m.message, "remove:") {
		t.Fatalf("removing the root frame should fail, got %q", m.message)
	}

	m = press(t, m, runes("1"))
	if !m.failed || !strings.HasPrefix(m.message, "focus-number 1:") {
		t.Fatalf("focusing a missing number should fail, got %q", m.message)
	}
}

func TestSandboxView(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "" {
		t.Fatalf("view before the first size message should be empty, got %q", got)
	}

	m = press(t, m,
		tea.WindowSizeMsg{Width: 100, Height: 30},
		runes("o"), runes("o"), runes("z"),
	)
	view := m.View()
	for _, want := range []string{"frametile sandbox", "term-1", "Stash", "term-2", "void"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view is missing %q:\n%s", want, view)
		}
	}
}

func TestSandboxQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
