package tiling

import (
	"fmt"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/platform"
)

// DoString parses and runs an action.
func (t *Tiler) DoString(s string) (bool, error) {
	a, err := ParseAction(s)
	if err != nil {
		return false, err
	}
	return t.Do(a)
}

// Do runs an action on the focused frame. It reports whether the layout or
// the focus changed; an action that has nothing to do is not an error.
func (t *Tiler) Do(a Action) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureFocus()
	f := t.focus
	if f == nil {
		return false, ErrNoDisplay
	}

	changed, err := t.apply(f, a)
	t.ensureFocus()
	if err != nil {
		t.logger.Debug("action failed", "action", a.String(), "error", err)
		return false, err
	}
	t.logger.Debug("action applied", "action", a.String(), "changed", changed)
	return changed, nil
}

func (t *Tiler) apply(f *frame.Frame, a Action) (bool, error) {
	switch a.Kind {
	case KindFocus:
		n := t.layout.NeighborLeaf(f, a.Direction)
		if n == nil {
			return false, nil
		}
		t.setFocus(n)
		return true, nil

	case KindMove:
		dest, ok := t.layout.MoveFrame(f, a.Direction)
		if !ok {
			return false, nil
		}
		t.focus = dest
		t.autoEqualize(dest)
		return true, nil

	case KindExchange:
		n := t.layout.NeighborLeaf(f, a.Direction)
		if n == nil {
			return false, nil
		}
		if err := t.layout.Exchange(f, n); err != nil {
			return false, err
		}
		t.focus = n
		return true, nil

	case KindSplit:
		_, inserted, err := t.layout.Split(f, nil, false, a.Split)
		if err != nil {
			return false, err
		}
		t.focus = inserted
		t.autoEqualize(inserted)
		return true, nil

	case KindRemove:
		if f.Parent == nil {
			return false, frame.ErrRoot
		}
		t.stashContent(f)
		parent := f.Parent
		if err := t.layout.Remove(f); err != nil {
			return false, err
		}
		t.refocusAfterRemove(parent)
		t.autoEqualize(parent)
		return true, nil

	case KindBump:
		amount := a.Amount
		if amount == 0 {
			amount = t.config.BumpStep
		}
		return t.layout.BumpEdge(f, a.Edge, amount) != 0, nil

	case KindEqualize:
		root := f.Root()
		if root.IsLeaf() {
			return false, nil
		}
		if a.Split == frame.SplitNone {
			t.layout.Equalize(root, frame.SplitHorizontal)
			t.layout.Equalize(root, frame.SplitVertical)
		} else {
			t.layout.Equalize(root, a.Split)
		}
		return true, nil

	case KindStash:
		if !t.stashContent(f) {
			return false, nil
		}
		t.dropVoid(f)
		return true, nil

	case KindUnstash:
		return t.unstash(f)

	case KindFocusNumber:
		target := t.layout.FrameByNumber(a.Number)
		if target == nil {
			return false, fmt.Errorf("%w: %d", ErrNoFrame, a.Number)
		}
		if t.layout.IsOnScreen(target) {
			t.setFocus(frame.Leaves(target)[0])
			return true, nil
		}
		// Bring the stash entry holding the number to the front and restore
		// it into the focused frame.
		entry := target.Root()
		t.layout.UnlinkFromStash(entry)
		t.layout.LinkIntoStash(entry)
		return t.unstash(f)

	case KindSetNumber:
		if f.Number == a.Number {
			return false, nil
		}
		t.layout.SetNumber(f, a.Number)
		return true, nil

	case KindClose:
		if f.Window == 0 {
			return false, nil
		}
		if err := t.backend.Close(platform.WindowID(f.Window)); err != nil {
			return false, fmt.Errorf("failed to close window: %w", err)
		}
		t.removeWindow(f.Window)
		return true, nil
	}
	return false, fmt.Errorf("unknown action %q", a.Kind)
}

// unstash restores the most recent stash entry into f, splitting f first
// when it is not a void.
func (t *Tiler) unstash(f *frame.Frame) (bool, error) {
	if t.layout.StashCount() == 0 {
		return false, nil
	}
	target := f
	if !f.IsVoid() {
		_, inserted, err := t.layout.Split(f, nil, false, t.config.SplitDirection())
		if err != nil {
			return false, fmt.Errorf("unstash: %w", err)
		}
		target = inserted
	}
	if !t.layout.FillVoidWithStash(target) {
		if target != f {
			if err := t.layout.Remove(target); err != nil {
				t.logger.Warn("failed to undo split", "error", err)
			}
		}
		return false, fmt.Errorf("unstash: %w", frame.ErrNoSpace)
	}

	focus := frame.Leaves(target)[0]
	for _, leaf := range frame.Leaves(target) {
		if leaf.Window == 0 {
			continue
		}
		if err := t.backend.Activate(platform.WindowID(leaf.Window)); err != nil {
			t.logger.Warn("failed to restore window", "window", leaf.Window, "error", err)
		}
		if focus.Window == 0 {
			focus = leaf
		}
	}
	t.setFocus(focus)
	if target != f {
		t.autoEqualize(target)
	}
	return true, nil
}

// Status summarizes the managed layout.
type Status struct {
	Displays      int            `json:"displays"`
	Frames        int            `json:"frames"`
	Windows       int            `json:"windows"`
	Voids         int            `json:"voids"`
	Stashed       int            `json:"stashed"`
	FocusedWindow frame.WindowID `json:"focused_window,omitempty"`
	FocusedNumber int            `json:"focused_number,omitempty"`
	FocusedRect   *frame.Rect    `json:"focused_rect,omitempty"`
}

// Status returns counts for the screen trees and the stash.
func (t *Tiler) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Status{
		Displays: len(t.displays),
		Stashed:  t.layout.StashCount(),
	}
	for _, root := range t.orderedRoots() {
		for _, leaf := range frame.Leaves(root) {
			s.Frames++
			if leaf.IsVoid() {
				s.Voids++
			} else {
				s.Windows++
			}
		}
	}
	if t.focus != nil {
		r := t.focus.Rect
		s.FocusedWindow = t.focus.Window
		s.FocusedNumber = t.focus.Number
		s.FocusedRect = &r
	}
	return s
}

// DisplayTree is the frame tree of one display.
type DisplayTree struct {
	Display platform.Display `json:"display"`
	Root    frame.Node       `json:"root"`
}

// Tree is a snapshot of every screen tree and the stash, most recent
// entry first.
type Tree struct {
	Displays []DisplayTree `json:"displays"`
	Stash    []frame.Node  `json:"stash,omitempty"`
}

// Tree copies the current layout.
func (t *Tiler) Tree() Tree {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out Tree
	for _, d := range t.displays {
		out.Displays = append(out.Displays, DisplayTree{
			Display: d,
			Root:    frame.Snapshot(t.roots[d.ID], t.focus),
		})
	}
	for _, s := range t.layout.Stashed() {
		out.Stash = append(out.Stash, frame.Snapshot(s, nil))
	}
	return out
}

// Displays returns the managed displays.
func (t *Tiler) Displays() []platform.Display {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]platform.Display, len(t.displays))
	copy(out, t.displays)
	return out
}
