package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/tiling"
)

// model is the root bubbletea model for the sandbox.
type model struct {
	tiler   *tiling.Tiler
	backend *platform.MemoryBackend
	keys    keyMap
	help    help.Model

	opened  int
	message string
	failed  bool

	// Terminal dimensions
	width  int
	height int
}

func newModel(tiler *tiling.Tiler, backend *platform.MemoryBackend) model {
	return model{
		tiler:   tiler,
		backend: backend,
		keys:    newKeyMap(),
		help:    help.New(),
		message: "press o to open a window",
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Open):
			m.openWindow()
			return m, nil
		}
		if action, ok := m.keys.actionFor(msg); ok {
			m.run(action)
		}
	}
	return m, nil
}

// openWindow maps a new window over the focused frame.
func (m *model) openWindow() {
	before := m.tiler.Status()
	x, y := 960, 540
	if r := before.FocusedRect; r != nil {
		x, y = r.Center()
	}
	m.opened++
	class := fmt.Sprintf("term-%d", m.opened)
	id := m.backend.OpenWindow(class, x, y)
	if err := m.tiler.Reconcile(); err != nil {
		m.setResult("open "+class, false, err)
		return
	}
	if m.tiler.Status().Windows == before.Windows {
		m.backend.DestroyWindow(id)
		m.setResult("open "+class, false, fmt.Errorf("no room for another window"))
		return
	}
	m.setResult("open "+class, true, nil)
}

func (m *model) run(action string) {
	changed, err := m.tiler.DoString(action)
	m.setResult(action, changed, err)
}

func (m *model) setResult(action string, changed bool, err error) {
	switch {
	case err != nil:
		m.message = fmt.Sprintf("%s: %v", action, err)
		m.failed = true
	case !changed:
		m.message = action + ": nothing to do"
		m.failed = false
	default:
		m.message = action
		m.failed = false
	}
}

// label names a leaf by the class of its window.
func (m model) label(n frame.Node) string {
	if n.Window == 0 {
		return "void"
	}
	if w, ok := m.backend.Window(platform.WindowID(n.Window)); ok {
		return w.Class
	}
	return fmt.Sprintf("0x%x", uint32(n.Window))
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	status := m.tiler.Status()
	tree := m.tiler.Tree()

	statusBar := renderStatusBar(status, m.width)
	messageBar := renderMessageBar(m.message, m.failed, m.width)
	helpBar := helpStyle.Width(m.width).Render(m.help.View(m.keys))

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(messageBar) + lipgloss.Height(helpBar)
	contentHeight := max(m.height-usedHeight, 1)

	stash := renderStash(tree.Stash, m.label, contentHeight)
	canvasWidth := max(m.width-lipgloss.Width(stash), 1)

	var canvas []string
	if len(tree.Displays) > 0 {
		d := tree.Displays[0]
		canvas = renderCanvas(d.Root, d.Root.Rect, canvasWidth, contentHeight, m.label)
	} else {
		canvas = emptyCanvas(canvasWidth, contentHeight)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(lipgloss.JoinVertical(lipgloss.Left, canvas...)),
		stash,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		messageBar,
		helpBar,
	)
}
