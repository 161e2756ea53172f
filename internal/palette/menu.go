package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/tiling"
)

// MenuItem represents an item in the menu hierarchy.
type MenuItem struct {
	Label    string     // Display label
	Action   string     // Action string (empty for parent items)
	IsHeader bool       // Non-selectable section header
	Submenu  []MenuItem // Child items (empty for leaf items)
}

// IsParent returns true if this item has a submenu.
func (m MenuItem) IsParent() bool {
	return len(m.Submenu) > 0
}

// Menu handles hierarchical menu navigation using a palette backend.
type Menu struct {
	backend Backend
	root    []MenuItem
	prompt  string
}

// NewMenu creates a new hierarchical menu with the given backend and root items.
func NewMenu(backend Backend, items []MenuItem) *Menu {
	return &Menu{
		backend: backend,
		root:    items,
		prompt:  "frametile",
	}
}

// Show displays the menu and handles navigation through submenus.
// Returns the action string of the selected leaf item, or ErrCancelled if user exits.
func (m *Menu) Show() (string, error) {
	return m.showLevel(m.root, nil)
}

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

func (m *Menu) showLevel(items []MenuItem, breadcrumb []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	for {
		paletteItems := make([]Item, 0, len(items)+1)
		if len(breadcrumb) > 0 {
			paletteItems = append(paletteItems, Item{Label: "← Back", Action: backAction})
		}
		for i, item := range items {
			entry := Item{Label: item.Label, Action: item.Action, IsHeader: item.IsHeader}
			if item.IsParent() {
				entry.Label += " →"
				entry.Action = submenuPrefix + strconv.Itoa(i)
			}
			paletteItems = append(paletteItems, entry)
		}

		prompt := m.prompt
		if len(breadcrumb) > 0 {
			prompt = breadcrumb[len(breadcrumb)-1]
		}

		picked, err := m.backend.Show(prompt, paletteItems)
		if err != nil {
			return "", err
		}

		switch {
		case picked.IsHeader, picked.Action == "":
			// Launchers without non-selectable rows can return headers.
			continue
		case picked.Action == backAction:
			return "", ErrCancelled
		case strings.HasPrefix(picked.Action, submenuPrefix):
			idx, err := strconv.Atoi(strings.TrimPrefix(picked.Action, submenuPrefix))
			if err != nil || idx < 0 || idx >= len(items) || !items[idx].IsParent() {
				continue
			}
			action, err := m.showLevel(items[idx].Submenu, append(breadcrumb[:len(breadcrumb):len(breadcrumb)], items[idx].Label))
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return action, err
		}
		return picked.Action, nil
	}
}

// BuildMenu lists the actions that apply to the focused frame, plus the
// numbered frames and the stash of tree.
func BuildMenu(tree tiling.Tree) []MenuItem {
	directional := func(kind string) []MenuItem {
		out := make([]MenuItem, 0, 4)
		for _, dir := range []string{"left", "down", "up", "right"} {
			out = append(out, MenuItem{Label: dir, Action: kind + "-" + dir})
		}
		return out
	}

	items := []MenuItem{
		{Label: "Focus", Submenu: directional("focus")},
		{Label: "Move", Submenu: directional("move")},
		{Label: "Swap", Submenu: directional("exchange")},
		{Label: "Grow", Submenu: []MenuItem{
			{Label: "left", Action: "bump-left"},
			{Label: "down", Action: "bump-bottom"},
			{Label: "up", Action: "bump-top"},
			{Label: "right", Action: "bump-right"},
		}},
		{Label: "Split side by side", Action: "split-horizontal"},
		{Label: "Split stacked", Action: "split-vertical"},
		{Label: "Equalize", Action: "equalize"},
		{Label: "Remove frame", Action: "remove"},
		{Label: "Stash window", Action: "stash"},
		{Label: "Close window", Action: "close"},
	}

	var numbered []MenuItem
	for _, d := range tree.Displays {
		for _, leaf := range d.Root.Leaves() {
			if leaf.Number == 0 || leaf.Focused {
				continue
			}
			numbered = append(numbered, MenuItem{
				Label:  fmt.Sprintf("#%d %s on %s", leaf.Number, describe(leaf), d.Display.Name),
				Action: fmt.Sprintf("focus-number %d", leaf.Number),
			})
		}
	}
	if len(numbered) > 0 {
		items = append(items, MenuItem{Label: "Go to frame", Submenu: numbered})
	}

	if len(tree.Stash) > 0 {
		stash := []MenuItem{{Label: "Restore most recent", Action: "unstash"}}
		for _, entry := range tree.Stash {
			for _, leaf := range entry.Leaves() {
				if leaf.Number == 0 {
					continue
				}
				stash = append(stash, MenuItem{
					Label:  fmt.Sprintf("Restore #%d %s", leaf.Number, describe(leaf)),
					Action: fmt.Sprintf("focus-number %d", leaf.Number),
				})
			}
		}
		items = append(items, MenuItem{Label: fmt.Sprintf("Stash (%d)", len(tree.Stash)), Submenu: stash})
	}
	return items
}

func describe(n frame.Node) string {
	if n.Window == 0 {
		return "(void)"
	}
	return fmt.Sprintf("window 0x%x", uint32(n.Window))
}
