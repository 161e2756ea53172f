package tiling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/frametile/internal/frame"
)

// Kind names a layout action.
type Kind string

const (
	KindFocus       Kind = "focus"
	KindMove        Kind = "move"
	KindExchange    Kind = "exchange"
	KindSplit       Kind = "split"
	KindRemove      Kind = "remove"
	KindBump        Kind = "bump"
	KindEqualize    Kind = "equalize"
	KindStash       Kind = "stash"
	KindUnstash     Kind = "unstash"
	KindFocusNumber Kind = "focus-number"
	KindSetNumber   Kind = "set-number"
	KindClose       Kind = "close"
)

// Action is a parsed action string such as "focus-left", "bump-right 80" or
// "set-number 3". The same strings are used by key bindings, the IPC
// protocol, the CLI, the MCP tools and the sandbox.
type Action struct {
	Kind      Kind
	Direction frame.Direction
	Split     frame.SplitDirection // split, equalize (SplitNone = both axes)
	Edge      frame.Edge
	Amount    int // bump; 0 means the configured step
	Number    int
}

// ActionNames lists the action forms accepted by ParseAction.
var ActionNames = []string{
	"focus-left", "focus-right", "focus-up", "focus-down",
	"move-left", "move-right", "move-up", "move-down",
	"exchange-left", "exchange-right", "exchange-up", "exchange-down",
	"split-horizontal", "split-vertical",
	"remove",
	"bump-left [px]", "bump-right [px]", "bump-top [px]", "bump-bottom [px]",
	"equalize", "equalize-horizontal", "equalize-vertical",
	"stash", "unstash",
	"focus-number <n>", "set-number <n>",
	"close",
}

// ParseAction parses an action string.
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("empty action")
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "remove", "stash", "unstash", "close", "equalize":
		if len(args) != 0 {
			return Action{}, fmt.Errorf("%s takes no arguments", name)
		}
		return Action{Kind: Kind(name)}, nil
	case "focus-number", "set-number":
		if len(args) != 1 {
			return Action{}, fmt.Errorf("%s needs a frame number", name)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 || (n == 0 && name == "focus-number") {
			return Action{}, fmt.Errorf("%s: invalid frame number %q", name, args[0])
		}
		return Action{Kind: Kind(name), Number: n}, nil
	}

	kind, arg, ok := strings.Cut(name, "-")
	if !ok {
		return Action{}, fmt.Errorf("unknown action %q", s)
	}
	if kind != string(KindBump) && len(args) != 0 {
		return Action{}, fmt.Errorf("%s takes no arguments", name)
	}

	switch Kind(kind) {
	case KindFocus, KindMove, KindExchange:
		dir, err := frame.ParseDirection(arg)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Kind(kind), Direction: dir}, nil
	case KindSplit, KindEqualize:
		dir, err := frame.ParseSplitDirection(arg)
		if err != nil || dir == frame.SplitNone {
			return Action{}, fmt.Errorf("%s: unknown split direction %q", kind, arg)
		}
		return Action{Kind: Kind(kind), Split: dir}, nil
	case KindBump:
		edge, err := parseEdge(arg)
		if err != nil {
			return Action{}, err
		}
		a := Action{Kind: KindBump, Edge: edge}
		if len(args) > 1 {
			return Action{}, fmt.Errorf("bump takes at most one amount")
		}
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n == 0 {
				return Action{}, fmt.Errorf("bump: invalid amount %q", args[0])
			}
			a.Amount = n
		}
		return a, nil
	}
	return Action{}, fmt.Errorf("unknown action %q", s)
}

func parseEdge(s string) (frame.Edge, error) {
	switch s {
	case "left":
		return frame.EdgeLeft, nil
	case "top", "up":
		return frame.EdgeTop, nil
	case "right":
		return frame.EdgeRight, nil
	case "bottom", "down":
		return frame.EdgeBottom, nil
	}
	return frame.EdgeLeft, fmt.Errorf("unknown edge %q", s)
}

// String returns the canonical action string.
func (a Action) String() string {
	switch a.Kind {
	case KindFocus, KindMove, KindExchange:
		return string(a.Kind) + "-" + a.Direction.String()
	case KindSplit:
		return "split-" + a.Split.String()
	case KindEqualize:
		if a.Split == frame.SplitNone {
			return "equalize"
		}
		return "equalize-" + a.Split.String()
	case KindBump:
		if a.Amount != 0 {
			return fmt.Sprintf("bump-%s %d", a.Edge, a.Amount)
		}
		return "bump-" + a.Edge.String()
	case KindFocusNumber, KindSetNumber:
		return fmt.Sprintf("%s %d", a.Kind, a.Number)
	}
	return string(a.Kind)
}

// ValidateBindings checks the action of every key binding. Empty actions
// disable a default binding and are accepted.
func ValidateBindings(bindings map[string]string) error {
	for key, action := range bindings {
		if strings.TrimSpace(action) == "" {
			continue
		}
		if _, err := ParseAction(action); err != nil {
			return fmt.Errorf("bindings.%s: %w", key, err)
		}
	}
	return nil
}
