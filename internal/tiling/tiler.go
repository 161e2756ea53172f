package tiling

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/platform"
)

var (
	// ErrNoDisplay is returned when an action runs before any display is
	// managed.
	ErrNoDisplay = errors.New("no display is managed")
	// ErrNoFrame is returned by focus-number for an unknown number.
	ErrNoFrame = errors.New("no frame with that number")
)

// Tiler keeps one frame tree per display and mirrors it onto the windows of
// a Backend.
type Tiler struct {
	mu      sync.RWMutex
	backend platform.Backend
	config  *config.Config
	logger  *slog.Logger

	layout    *frame.Layout
	displays  []platform.Display
	roots     map[int]*frame.Frame
	focus     *frame.Frame
	unmanaged map[frame.WindowID]struct{}
}

// NewTiler creates a tiler. Nothing is laid out until the first
// SyncDisplays or Reconcile.
func NewTiler(backend platform.Backend, cfg *config.Config, logger *slog.Logger) *Tiler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t := &Tiler{
		backend:   backend,
		config:    cfg,
		logger:    logger,
		roots:     make(map[int]*frame.Frame),
		unmanaged: make(map[frame.WindowID]struct{}),
	}
	t.layout = frame.New(frame.Options{
		MinimumSize: cfg.MinimumFrameSize,
		OnReload:    t.place,
		Logger:      logger.With("component", "frame"),
	})
	return t
}

// place moves the window of an on-screen leaf into its frame, inset by half
// the inner gap on every side.
func (t *Tiler) place(f *frame.Frame) {
	if !f.IsLeaf() || f.Window == 0 || !t.layout.IsOnScreen(f) {
		return
	}
	if err := t.backend.MoveResize(platform.WindowID(f.Window), t.windowRect(f.Rect)); err != nil {
		t.logger.Warn("failed to place window", "window", f.Window, "error", err)
	}
}

func (t *Tiler) windowRect(r frame.Rect) platform.Rect {
	half := t.config.Gaps.Inner / 2
	return platform.Rect{
		X:      r.X + half,
		Y:      r.Y + half,
		Width:  max(r.Width-2*half, 1),
		Height: max(r.Height-2*half, 1),
	}
}

// tileRect is the area of a display given to its frame tree.
func (t *Tiler) tileRect(d platform.Display) frame.Rect {
	u := d.Usable
	if u.Width <= 0 || u.Height <= 0 {
		u = d.Bounds
	}
	o := t.config.Gaps.Outer
	return frame.Rect{
		X:      u.X + o,
		Y:      u.Y + o,
		Width:  max(u.Width-2*o, 1),
		Height: max(u.Height-2*o, 1),
	}
}

// SyncDisplays creates a tree for every new display, resizes the trees of
// displays whose work area changed and stashes the content of displays that
// went away.
func (t *Tiler) SyncDisplays(displays []platform.Display) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.syncDisplays(displays)
}

func (t *Tiler) syncDisplays(displays []platform.Display) {
	sorted := make([]platform.Display, len(displays))
	copy(sorted, displays)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	seen := make(map[int]bool, len(sorted))
	for _, d := range sorted {
		seen[d.ID] = true
		r := t.tileRect(d)
		root, ok := t.roots[d.ID]
		if !ok {
			t.roots[d.ID] = t.layout.AddRoot(r)
			t.logger.Info("display added", "display", d.ID, "name", d.Name,
				"width", r.Width, "height", r.Height)
			continue
		}
		if root.Rect == r {
			continue
		}
		if w, h := t.layout.MinimumSize(root); w > r.Width || h > r.Height {
			t.logger.Warn("display too small for its frames, stashing them", "display", d.ID)
			t.stashContent(root)
		}
		t.layout.Resize(root, r.X, r.Y, r.Width, r.Height)
		t.logger.Info("display resized", "display", d.ID, "width", r.Width, "height", r.Height)
	}

	for id, root := range t.roots {
		if seen[id] {
			continue
		}
		t.stashContent(root)
		t.layout.RemoveRoot(root)
		delete(t.roots, id)
		t.logger.Info("display removed", "display", id)
	}

	t.displays = sorted
	t.ensureFocus()
}

func displaysEqual(a, b []platform.Display) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// relayoutAll reapplies every display rectangle, for example after the gaps
// changed.
func (t *Tiler) relayoutAll() {
	for _, d := range t.displays {
		root := t.roots[d.ID]
		r := t.tileRect(d)
		t.layout.Resize(root, r.X, r.Y, r.Width, r.Height)
	}
}

// orderedRoots returns the screen roots in display order.
func (t *Tiler) orderedRoots() []*frame.Frame {
	out := make([]*frame.Frame, 0, len(t.displays))
	for _, d := range t.displays {
		if root, ok := t.roots[d.ID]; ok {
			out = append(out, root)
		}
	}
	return out
}

// ensureFocus keeps the focus on an on-screen leaf.
func (t *Tiler) ensureFocus() {
	if t.focus != nil && t.layout.IsOnScreen(t.focus) {
		if !t.focus.IsLeaf() {
			t.focus = frame.Leaves(t.focus)[0]
		}
		return
	}
	t.focus = nil
	if roots := t.orderedRoots(); len(roots) > 0 {
		t.focus = frame.Leaves(roots[0])[0]
	}
}

// refocusAfterRemove moves the focus into parent when a removal detached
// the focused frame.
func (t *Tiler) refocusAfterRemove(parent *frame.Frame) {
	if t.focus == nil || !t.layout.IsOnScreen(t.focus) {
		t.focus = frame.Leaves(parent)[0]
	}
}

func (t *Tiler) setFocus(f *frame.Frame) {
	t.focus = f
	if f.Window == 0 {
		return
	}
	if err := t.backend.Activate(platform.WindowID(f.Window)); err != nil {
		t.logger.Warn("failed to activate window", "window", f.Window, "error", err)
	}
}

func (t *Tiler) autoEqualize(f *frame.Frame) {
	if t.config.AutoEqualize {
		t.layout.ApplyAutoEqualize(f)
	}
}

// stashContent pushes the content of f onto the stash and minimizes its
// windows. f stays in place as a void.
func (t *Tiler) stashContent(f *frame.Frame) bool {
	detached := t.layout.Stash(f)
	if detached == nil {
		return false
	}
	for _, leaf := range frame.Leaves(detached) {
		if leaf.Window == 0 {
			continue
		}
		if err := t.backend.Minimize(platform.WindowID(leaf.Window)); err != nil {
			t.logger.Warn("failed to minimize window", "window", leaf.Window, "error", err)
		}
	}
	return true
}

// dropVoid removes the void f from its tree when remove_voids is set.
func (t *Tiler) dropVoid(f *frame.Frame) {
	if !t.config.RemoveVoids || f.Parent == nil || !f.IsVoid() {
		return
	}
	parent := f.Parent
	if err := t.layout.Remove(f); err != nil {
		t.logger.Warn("failed to remove void", "error", err)
		return
	}
	t.refocusAfterRemove(parent)
	t.autoEqualize(parent)
}

// stashedWindow finds the stash entry and leaf holding a window.
func (t *Tiler) stashedWindow(id frame.WindowID) (entry, leaf *frame.Frame) {
	for _, s := range t.layout.Stashed() {
		frame.Walk(s, func(f *frame.Frame) bool {
			if f.Window == id {
				leaf = f
				return false
			}
			return true
		})
		if leaf != nil {
			return s, leaf
		}
	}
	return nil, nil
}

func (t *Tiler) trackedWindows() []frame.WindowID {
	var ids []frame.WindowID
	collect := func(f *frame.Frame) bool {
		if f.Window != 0 {
			ids = append(ids, f.Window)
		}
		return true
	}
	for _, root := range t.orderedRoots() {
		frame.Walk(root, collect)
	}
	for _, s := range t.layout.Stashed() {
		frame.Walk(s, collect)
	}
	return ids
}

// AddWindow tiles a window into the tree of the display holding its
// center. The focused frame is filled when it is a void, then any other
// void of that tree; otherwise the focused frame is split.
func (t *Tiler) AddWindow(w platform.Window) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.addWindow(w)
}

func (t *Tiler) addWindow(w platform.Window) error {
	id := frame.WindowID(w.ID)
	if id == 0 || t.config.Ignored(w.Class) {
		return nil
	}
	if t.layout.FrameByWindow(id) != nil {
		return nil
	}
	if _, leaf := t.stashedWindow(id); leaf != nil {
		return nil
	}

	root := t.rootFor(w.Bounds)
	if root == nil {
		return ErrNoDisplay
	}

	target := frame.Leaves(root)[0]
	if t.focus != nil && t.focus.Root() == root {
		target = t.focus
	}
	if !target.IsVoid() {
		for _, leaf := range frame.Leaves(root) {
			if leaf.IsVoid() {
				target = leaf
				break
			}
		}
	}

	if target.IsVoid() {
		target.Window = id
		t.place(target)
		t.focus = target
		t.logger.Info("window tiled", "window", id, "class", w.Class)
		return nil
	}

	dir := t.config.SplitDirection()
	_, inserted, err := t.layout.Split(target, &frame.Frame{Window: id}, false, dir)
	if errors.Is(err, frame.ErrNoSpace) {
		_, inserted, err = t.layout.Split(target, &frame.Frame{Window: id}, false, otherSplit(dir))
	}
	if err != nil {
		t.unmanaged[id] = struct{}{}
		t.logger.Warn("window left floating", "window", id, "class", w.Class, "error", err)
		return fmt.Errorf("failed to tile window 0x%x: %w", uint32(id), err)
	}
	t.focus = inserted
	t.autoEqualize(inserted)
	t.logger.Info("window tiled", "window", id, "class", w.Class, "split", dir)
	return nil
}

func (t *Tiler) rootFor(bounds platform.Rect) *frame.Frame {
	cx, cy := bounds.Center()
	if d, ok := platform.DisplayAt(t.displays, cx, cy); ok {
		return t.roots[d.ID]
	}
	if t.focus != nil {
		return t.focus.Root()
	}
	if roots := t.orderedRoots(); len(roots) > 0 {
		return roots[0]
	}
	return nil
}

func otherSplit(dir frame.SplitDirection) frame.SplitDirection {
	if dir == frame.SplitHorizontal {
		return frame.SplitVertical
	}
	return frame.SplitHorizontal
}

// RemoveWindow forgets a window that was closed. Its frame becomes a void,
// or disappears when remove_voids is set. Reports whether the window was
// known.
func (t *Tiler) RemoveWindow(id platform.WindowID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeWindow(frame.WindowID(id))
}

func (t *Tiler) removeWindow(id frame.WindowID) bool {
	delete(t.unmanaged, id)
	if f := t.layout.FrameByWindow(id); f != nil {
		f.Window = 0
		// The freed room may fit windows that were left floating.
		clear(t.unmanaged)
		t.logger.Info("window gone", "window", id)
		t.dropVoid(f)
		t.ensureFocus()
		return true
	}
	if entry, leaf := t.stashedWindow(id); leaf != nil {
		leaf.Window = 0
		if len(windowsIn(entry)) == 0 {
			t.layout.UnlinkFromStash(entry)
		}
		t.logger.Info("stashed window gone", "window", id)
		return true
	}
	return false
}

func windowsIn(f *frame.Frame) []frame.WindowID {
	var ids []frame.WindowID
	for _, leaf := range frame.Leaves(f) {
		if leaf.Window != 0 {
			ids = append(ids, leaf.Window)
		}
	}
	return ids
}

// Reconcile brings the trees in line with the backend: display changes are
// applied, vanished windows are forgotten, new windows are tiled, tiled
// windows minimized by the user are stashed and stashed windows restored by
// the user are tiled again. The focus follows the active window.
func (t *Tiler) Reconcile() error {
	displays, err := t.backend.Displays()
	if err != nil {
		return fmt.Errorf("failed to list displays: %w", err)
	}
	var windows []platform.Window
	for _, d := range displays {
		ws, err := t.backend.ListWindowsOnDisplay(d.ID)
		if err != nil {
			return fmt.Errorf("failed to list windows on display %d: %w", d.ID, err)
		}
		windows = append(windows, ws...)
	}
	active, err := t.backend.ActiveWindow()
	if err != nil {
		t.logger.Debug("no active window", "error", err)
		active = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !displaysEqual(t.displays, sortedDisplays(displays)) {
		t.syncDisplays(displays)
	}

	present := make(map[frame.WindowID]bool, len(windows))
	for _, w := range windows {
		present[frame.WindowID(w.ID)] = true
	}
	for _, id := range t.trackedWindows() {
		if !present[id] {
			t.removeWindow(id)
		}
	}
	for id := range t.unmanaged {
		if !present[id] {
			delete(t.unmanaged, id)
		}
	}

	for _, w := range windows {
		id := frame.WindowID(w.ID)
		if _, skip := t.unmanaged[id]; skip {
			continue
		}
		if f := t.layout.FrameByWindow(id); f != nil {
			if w.Hidden {
				t.logger.Info("window minimized, stashing it", "window", id)
				t.stashContent(f)
				t.dropVoid(f)
			}
			continue
		}
		if _, leaf := t.stashedWindow(id); leaf != nil {
			if w.Hidden {
				continue
			}
			t.removeWindow(id)
		}
		if w.Hidden {
			continue
		}
		if err := t.addWindow(w); err != nil {
			t.logger.Debug("reconcile could not tile window", "window", id, "error", err)
		}
	}

	if f := t.layout.FrameByWindow(frame.WindowID(active)); f != nil {
		t.focus = f
	}
	t.ensureFocus()
	return nil
}

func sortedDisplays(displays []platform.Display) []platform.Display {
	out := make([]platform.Display, len(displays))
	copy(out, displays)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateConfig swaps the configuration. Gap changes are applied at once;
// a new minimum frame size only applies to a new tiler.
func (t *Tiler) UpdateConfig(cfg *config.Config) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old := t.config
	t.config = cfg
	if old.MinimumFrameSize != cfg.MinimumFrameSize {
		t.logger.Warn("minimum frame size changes take effect after a restart",
			"current", t.layout.MinimumLeafSize(), "configured", cfg.MinimumFrameSize)
	}
	if old.Gaps != cfg.Gaps {
		t.relayoutAll()
	}
	t.logger.Info("configuration updated")
}

// Validate checks the structure of every screen tree.
func (t *Tiler) Validate() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, d := range t.displays {
		if err := t.layout.Validate(t.roots[d.ID]); err != nil {
			return fmt.Errorf("display %d: %w", d.ID, err)
		}
	}
	return nil
}
