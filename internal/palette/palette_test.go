package palette

import (
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/tiling"
)

// scriptedBackend picks items by label, one pick per Show call.
type scriptedBackend struct {
	picks   []string
	prompts []string
}

func (s *scriptedBackend) Show(prompt string, items []Item) (Item, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.picks) == 0 {
		return Item{}, ErrCancelled
	}
	pick := s.picks[0]
	s.picks = s.picks[1:]
	for _, item := range items {
		if item.Label == pick {
			return item, nil
		}
	}
	return Item{}, errors.New("no item " + pick)
}

func TestMenuNavigatesSubmenus(t *testing.T) {
	b := &scriptedBackend{picks: []string{"Move →", "← Back", "Grow →", "up"}}
	action, err := NewMenu(b, BuildMenu(tiling.Tree{})).Show()
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if action != "bump-top" {
		t.Fatalf("expected bump-top, got %q", action)
	}
	want := []string{"frametile", "Move", "frametile", "Grow"}
	if strings.Join(b.prompts, ",") != strings.Join(want, ",") {
		t.Fatalf("prompts = %v, want %v", b.prompts, want)
	}
}

func TestMenuCancel(t *testing.T) {
	b := &scriptedBackend{}
	if _, err := NewMenu(b, BuildMenu(tiling.Tree{})).Show(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestBuildMenuListsFramesAndStash(t *testing.T) {
	tree := tiling.Tree{
		Displays: []tiling.DisplayTree{{
			Display: platform.Display{Name: "main"},
			Root: frame.Node{
				Split: "horizontal",
				Children: []frame.Node{
					{Window: 0x10, Number: 1, Focused: true},
					{Window: 0x20, Number: 2},
				},
			},
		}},
		Stash: []frame.Node{{Window: 0x30, Number: 3}, {Window: 0x40}},
	}

	b := &scriptedBackend{picks: []string{"Go to frame →", "#2 window 0x20 on main"}}
	action, err := NewMenu(b, BuildMenu(tree)).Show()
	if err != nil || action != "focus-number 2" {
		t.Fatalf("go to frame = %q, %v", action, err)
	}

	b = &scriptedBackend{picks: []string{"Stash (2) →", "Restore #3 window 0x30"}}
	action, err = NewMenu(b, BuildMenu(tree)).Show()
	if err != nil || action != "focus-number 3" {
		t.Fatalf("restore = %q, %v", action, err)
	}

	for _, item := range BuildMenu(tree) {
		for _, sub := range item.Submenu {
			if strings.HasPrefix(sub.Label, "#1 ") {
				t.Fatalf("the focused frame should not be offered: %+v", sub)
			}
		}
	}
}

func TestEveryMenuActionParses(t *testing.T) {
	var walk func(items []MenuItem)
	walk = func(items []MenuItem) {
		for _, item := range items {
			if item.IsParent() {
				walk(item.Submenu)
				continue
			}
			if _, err := tiling.ParseAction(item.Action); err != nil {
				t.Fatalf("menu item %q has invalid action %q: %v", item.Label, item.Action, err)
			}
		}
	}
	walk(BuildMenu(tiling.Tree{Stash: []frame.Node{{Window: 1, Number: 4}}}))
}

func TestLauncherFormatting(t *testing.T) {
	rofi := &launcher{command: "rofi", kind: kindRofi}
	if out := rofi.formatItem(Item{Label: "Tiles & <frames>", IsHeader: true}); out != "<b>Tiles &amp; &lt;frames&gt;</b>\x00nonselectable\x1ftrue" {
		t.Fatalf("unexpected rofi header %q", out)
	}

	dmenu := &launcher{command: "dmenu", kind: kindDmenu}
	items := dmenu.disambiguate([]Item{{Label: "left"}, {Label: "left"}, {Label: "left"}})
	if items[1].Label != "left (2)" || items[2].Label != "left (3)" {
		t.Fatalf("labels were not disambiguated: %+v", items)
	}
	picked, err := dmenu.parseSelection("left (2)", items)
	if err != nil || picked.Label != "left (2)" {
		t.Fatalf("parseSelection = %+v, %v", picked, err)
	}
}

func TestLauncherParsesIndex(t *testing.T) {
	fuzzel := &launcher{command: "fuzzel", kind: kindFuzzel}
	items := []Item{{Label: "a", Action: "stash"}, {Label: "b", Action: "unstash"}}

	picked, err := fuzzel.parseSelection("1", items)
	if err != nil || picked.Action != "unstash" {
		t.Fatalf("parseSelection = %+v, %v", picked, err)
	}
	if _, err := fuzzel.parseSelection("7", items); err == nil {
		t.Fatalf("expected an out of range error")
	}
}

func TestNewBackendRejectsUnknownNames(t *testing.T) {
	if _, err := NewBackend("zenity"); err == nil {
		t.Fatalf("expected an error for an unknown backend")
	}
}
