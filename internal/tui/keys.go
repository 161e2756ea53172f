package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// actionKey binds keys to a tiling action.
type actionKey struct {
	binding key.Binding
	action  string
	group   int
}

const (
	groupFocus = iota
	groupMove
	groupExchange
	groupEdit
	groupBump
	groupStash
	groupCount
)

func bind(group int, action, help string, keys ...string) actionKey {
	return actionKey{
		binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), help)),
		action:  action,
		group:   group,
	}
}

// keyMap implements help.KeyMap.
type keyMap struct {
	actions []actionKey

	FocusNumber key.Binding
	Open        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		actions: []actionKey{
			bind(groupFocus, "focus-left", "focus left", "left", "h"),
			bind(groupFocus, "focus-down", "focus down", "down", "j"),
			bind(groupFocus, "focus-up", "focus up", "up", "k"),
			bind(groupFocus, "focus-right", "focus right", "right", "l"),

			bind(groupMove, "move-left", "move left", "shift+left", "H"),
			bind(groupMove, "move-down", "move down", "shift+down", "J"),
			bind(groupMove, "move-up", "move up", "shift+up", "K"),
			bind(groupMove, "move-right", "move right", "shift+right", "L"),

			bind(groupExchange, "exchange-left", "swap left", "alt+left", "alt+h"),
			bind(groupExchange, "exchange-down", "swap down", "alt+down", "alt+j"),
			bind(groupExchange, "exchange-up", "swap up", "alt+up", "alt+k"),
			bind(groupExchange, "exchange-right", "swap right", "alt+right", "alt+l"),

			bind(groupEdit, "split-horizontal", "split side by side", "|"),
			bind(groupEdit, "split-vertical", "split stacked", "-"),
			bind(groupEdit, "remove", "remove frame", "x"),
			bind(groupEdit, "equalize", "equalize", "="),
			bind(groupEdit, "close", "close window", "c"),

			bind(groupBump, "bump-left", "grow left", "["),
			bind(groupBump, "bump-right", "grow right", "]"),
			bind(groupBump, "bump-top", "grow up", "{"),
			bind(groupBump, "bump-bottom", "grow down", "}"),

			bind(groupStash, "stash", "stash", "z"),
			bind(groupStash, "unstash", "unstash", "u"),
		},
		FocusNumber: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "focus number"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open window"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// actionFor returns the action bound to msg.
func (k keyMap) actionFor(msg tea.KeyMsg) (string, bool) {
	if key.Matches(msg, k.FocusNumber) {
		return "focus-number " + msg.String(), true
	}
	for _, a := range k.actions {
		if key.Matches(msg, a.binding) {
			return a.action, true
		}
	}
	return "", false
}

func (k keyMap) binding(action string) key.Binding {
	for _, a := range k.actions {
		if a.action == action {
			return a.binding
		}
	}
	return key.Binding{}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("h"), key.WithHelp("hjkl", "focus")),
		key.NewBinding(key.WithKeys("H"), key.WithHelp("HJKL", "move")),
		k.binding("split-horizontal"),
		k.binding("split-vertical"),
		k.Open,
		k.binding("stash"),
		k.Help,
		k.Quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	columns := make([][]key.Binding, groupCount)
	for _, a := range k.actions {
		columns[a.group] = append(columns[a.group], a.binding)
	}
	columns[groupStash] = append(columns[groupStash], k.FocusNumber, k.Open, k.Help, k.Quit)
	return columns
}
