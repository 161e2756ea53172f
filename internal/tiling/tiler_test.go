package tiling

import (
	"errors"
	"testing"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/platform"
)

var mainDisplay = platform.Display{ID: 0, Name: "main", Bounds: platform.Rect{Width: 1920, Height: 1080}}

func newTestTiler(t *testing.T, opts ...func(*config.Config)) (*Tiler, *platform.MemoryBackend) {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	b := platform.NewMemoryBackend(mainDisplay)
	return NewTiler(b, cfg, nil), b
}

func removeVoids(cfg *config.Config) { cfg.RemoveVoids = true }

// open maps a window in the middle of the main display and reconciles.
func open(t *testing.T, tl *Tiler, b *platform.MemoryBackend) platform.WindowID {
	t.Helper()
	id := b.OpenWindow("kitty", 960, 540)
	reconcile(t, tl)
	return id
}

func reconcile(t *testing.T, tl *Tiler) {
	t.Helper()
	if err := tl.Reconcile(); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if err := tl.Validate(); err != nil {
		t.Fatalf("invalid layout: %v", err)
	}
}

func do(t *testing.T, tl *Tiler, action string) bool {
	t.Helper()
	changed, err := tl.DoString(action)
	if err != nil {
		t.Fatalf("%s: %v", action, err)
	}
	if err := tl.Validate(); err != nil {
		t.Fatalf("invalid layout after %s: %v", action, err)
	}
	return changed
}

func bounds(t *testing.T, b *platform.MemoryBackend, id platform.WindowID) platform.Rect {
	t.Helper()
	w, ok := b.Window(id)
	if !ok {
		t.Fatalf("window 0x%x does not exist", uint32(id))
	}
	return w.Bounds
}

func TestReconcileTilesNewWindows(t *testing.T) {
	tl, b := newTestTiler(t)
	w1 := open(t, tl, b)
	if got := bounds(t, b, w1); got != (platform.Rect{Width: 1920, Height: 1080}) {
		t.Fatalf("first window should fill the display, got %+v", got)
	}

	w2 := open(t, tl, b)
	w3 := open(t, tl, b)

	want := map[platform.WindowID]platform.Rect{
		w1: {X: 0, Width: 640, Height: 1080},
		w2: {X: 640, Width: 640, Height: 1080},
		w3: {X: 1280, Width: 640, Height: 1080},
	}
	for id, r := range want {
		if got := bounds(t, b, id); got != r {
			t.Fatalf("window 0x%x: got %+v, want %+v", uint32(id), got, r)
		}
	}

	s := tl.Status()
	if s.Displays != 1 || s.Windows != 3 || s.Voids != 0 || s.FocusedWindow != frame.WindowID(w3) {
		t.Fatalf("unexpected status %+v", s)
	}
}

func TestReconcileForgetsClosedWindows(t *testing.T) {
	tests := []struct {
		name      string
		opts      []func(*config.Config)
		wantVoids int
		wantW1    platform.Rect
	}{
		{"keep void", nil, 1, platform.Rect{Width: 640, Height: 1080}},
		{"remove void", []func(*config.Config){removeVoids}, 0, platform.Rect{Width: 960, Height: 1080}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, b := newTestTiler(t, tt.opts...)
			w1 := open(t, tl, b)
			w2 := open(t, tl, b)
			open(t, tl, b)

			b.DestroyWindow(w2)
			reconcile(t, tl)

			s := tl.Status()
			if s.Windows != 2 || s.Voids != tt.wantVoids {
				t.Fatalf("unexpected status %+v", s)
			}
			if got := bounds(t, b, w1); got != tt.wantW1 {
				t.Fatalf("got %+v, want %+v", got, tt.wantW1)
			}
		})
	}
}

func TestReconcileSkipsIgnoredClasses(t *testing.T) {
	tl, b := newTestTiler(t, func(cfg *config.Config) { cfg.IgnoreClasses = []string{"Pinentry"} })
	b.OpenWindow("pinentry", 100, 100)
	reconcile(t, tl)
	if s := tl.Status(); s.Windows != 0 || s.Frames != 1 {
		t.Fatalf("ignored window was tiled: %+v", s)
	}
}

func TestReconcileRetriesWindowsWithoutRoom(t *testing.T) {
	tl, b := newTestTiler(t, func(cfg *config.Config) { cfg.MinimumFrameSize = 60 })
	b.SetDisplays(platform.Display{ID: 0, Bounds: platform.Rect{Width: 100, Height: 100}})

	w1 := b.OpenWindow("kitty", 50, 50)
	reconcile(t, tl)
	w2 := b.OpenWindow("kitty", 50, 50)
	reconcile(t, tl)
	if s := tl.Status(); s.Windows != 1 {
		t.Fatalf("second window should be left floating: %+v", s)
	}

	b.DestroyWindow(w1)
	reconcile(t, tl)
	tree := tl.Tree()
	leaves := tree.Displays[0].Root.Leaves()
	if len(leaves) != 1 || leaves[0].Window != frame.WindowID(w2) {
		t.Fatalf("expected the floating window to take the freed frame, got %+v", leaves)
	}
}

func TestFocusMoveAndExchange(t *testing.T) {
	tl, b := newTestTiler(t)
	w1 := open(t, tl, b)
	w2 := open(t, tl, b)

	if !do(t, tl, "focus-left") {
		t.Fatalf("focus-left should move the focus")
	}
	if s := tl.Status(); s.FocusedWindow != frame.WindowID(w1) {
		t.Fatalf("expected focus on 0x%x, got %+v", uint32(w1), s)
	}
	if active, _ := b.ActiveWindow(); active != w1 {
		t.Fatalf("focused window was not activated")
	}
	if do(t, tl, "focus-left") {
		t.Fatalf("focus-left at the display edge should do nothing")
	}

	do(t, tl, "move-right")
	if got := bounds(t, b, w1); got.X != 960 || got.Width != 960 {
		t.Fatalf("moved window at %+v", got)
	}
	if got := bounds(t, b, w2); got.X != 0 {
		t.Fatalf("other window at %+v", got)
	}

	do(t, tl, "exchange-left")
	if got := bounds(t, b, w1); got.X != 0 {
		t.Fatalf("exchanged window at %+v", got)
	}
	if s := tl.Status(); s.FocusedWindow != frame.WindowID(w1) {
		t.Fatalf("focus should follow the exchanged window, got %+v", s)
	}
}

func TestBumpAndEqualize(t *testing.T) {
	tl, b := newTestTiler(t)
	w1 := open(t, tl, b)
	w2 := open(t, tl, b)
	do(t, tl, "focus-left")

	do(t, tl, "bump-right")
	if got := bounds(t, b, w1).Width; got != 1000 {
		t.Fatalf("expected the configured step to give 1000, got %d", got)
	}
	do(t, tl, "bump-right 100")
	if got := bounds(t, b, w2); got.X != 1100 || got.Width != 820 {
		t.Fatalf("neighbor at %+v", got)
	}
	if do(t, tl, "bump-left") {
		t.Fatalf("bumping the display edge should do nothing")
	}

	do(t, tl, "equalize")
	if got := bounds(t, b, w1).Width; got != 960 {
		t.Fatalf("expected equal columns, got %d", got)
	}
}

func TestSplitThenOpenFillsVoid(t *testing.T) {
	tl, b := newTestTiler(t)
	w1 := open(t, tl, b)

	do(t, tl, "split-vertical")
	if got := bounds(t, b, w1); got != (platform.Rect{Width: 1920, Height: 540}) {
		t.Fatalf("split window at %+v", got)
	}
	w2 := open(t, tl, b)
	if got := bounds(t, b, w2); got != (platform.Rect{Y: 540, Width: 1920, Height: 540}) {
		t.Fatalf("new window at %+v", got)
	}
	if s := tl.Status(); s.Frames != 2 || s.Voids != 0 {
		t.Fatalf("unexpected status %+v", s)
	}
}

func TestStashAndUnstash(t *testing.T) {
	tests := []struct {
		name      string
		opts      []func(*config.Config)
		wantVoids int
		wantW1    int
	}{
		{"keep void", nil, 1, 960},
		{"remove void", []func(*config.Config){removeVoids}, 0, 1920},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, b := newTestTiler(t, tt.opts...)
			w1 := open(t, tl, b)
			w2 := open(t, tl, b)

			do(t, tl, "stash")
			if w, _ := b.Window(w2); !w.Hidden {
				t.Fatalf("stashed window should be minimized")
			}
			s := tl.Status()
			if s.Stashed != 1 || s.Windows != 1 || s.Voids != tt.wantVoids {
				t.Fatalf("unexpected status %+v", s)
			}
			if got := bounds(t, b, w1).Width; got != tt.wantW1 {
				t.Fatalf("remaining window is %d wide, want %d", got, tt.wantW1)
			}

			// A hidden stashed window stays stashed.
			reconcile(t, tl)
			if tl.Status().Stashed != 1 {
				t.Fatalf("reconcile dropped the stash entry")
			}

			do(t, tl, "unstash")
			w, _ := b.Window(w2)
			if w.Hidden || w.Bounds != (platform.Rect{X: 960, Width: 960, Height: 1080}) {
				t.Fatalf("restored window %+v", w)
			}
			if s := tl.Status(); s.Stashed != 0 || s.FocusedWindow != frame.WindowID(w2) {
				t.Fatalf("unexpected status %+v", s)
			}
			if do(t, tl, "unstash") {
				t.Fatalf("unstash with an empty stash should do nothing")
			}
		})
	}
}

func TestUserMinimizeAndRestore(t *testing.T) {
	tl, b := newTestTiler(t)
	open(t, tl, b)
	w2 := open(t, tl, b)

	if err := b.Minimize(w2); err != nil {
		t.Fatalf("minimize: %v", err)
	}
	reconcile(t, tl)
	if s := tl.Status(); s.Stashed != 1 || s.Windows != 1 {
		t.Fatalf("minimized window should be stashed: %+v", s)
	}

	if err := b.Activate(w2); err != nil {
		t.Fatalf("activate: %v", err)
	}
	reconcile(t, tl)
	if s := tl.Status(); s.Stashed != 0 || s.Windows != 2 {
		t.Fatalf("restored window should be tiled again: %+v", s)
	}
	if got := bounds(t, b, w2); got.X != 960 {
		t.Fatalf("restored window at %+v", got)
	}
}

func TestRemoveStashesWindow(t *testing.T) {
	tl, b := newTestTiler(t)
	w1 := open(t, tl, b)
	open(t, tl, b)

	do(t, tl, "remove")
	s := tl.Status()
	if s.Frames != 1 || s.Windows != 1 || s.Stashed != 1 {
		t.Fatalf("unexpected status %+v", s)
	}
	if got := bounds(t, b, w1).Width; got != 1920 {
		t.Fatalf("remaining window is %d wide", got)
	}

	if _, err := tl.DoString("remove"); !errors.Is(err, frame.ErrRoot) {
		t.Fatalf("expected ErrRoot, got %v", err)
	}
}

func TestCloseAction(t *testing.T) {
	tl, b := newTestTiler(t)
	open(t, tl, b)
	w2 := open(t, tl, b)

	do(t, tl, "close")
	if _, ok := b.Window(w2); ok {
		t.Fatalf("window was not closed")
	}
	if s := tl.Status(); s.Windows != 1 || s.Voids != 1 {
		t.Fatalf("unexpected status %+v", s)
	}
	if do(t, tl, "close") {
		t.Fatalf("closing a void should do nothing")
	}
}

func TestFocusNumberRestoresStashedFrame(t *testing.T) {
	tl, b := newTestTiler(t)
	open(t, tl, b)
	w2 := open(t, tl, b)

	do(t, tl, "set-number 7")
	do(t, tl, "stash")
	do(t, tl, "focus-left")

	do(t, tl, "focus-number 7")
	s := tl.Status()
	if s.Stashed != 0 || s.FocusedWindow != frame.WindowID(w2) || s.FocusedNumber != 7 {
		t.Fatalf("unexpected status %+v", s)
	}
	if w, _ := b.Window(w2); w.Hidden {
		t.Fatalf("restored window is still hidden")
	}

	if _, err := tl.DoString("focus-number 99"); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}
}

func TestSyncDisplaysStashesRemovedDisplay(t *testing.T) {
	tl, b := newTestTiler(t)
	right := platform.Display{ID: 1, Name: "right", Bounds: platform.Rect{X: 1920, Width: 1280, Height: 1024}}
	b.SetDisplays(mainDisplay, right)

	b.OpenWindow("kitty", 500, 500)
	reconcile(t, tl)
	wr := b.OpenWindow("kitty", 2500, 500)
	reconcile(t, tl)
	if got := bounds(t, b, wr); got != right.Bounds {
		t.Fatalf("window on the right display at %+v", got)
	}

	tl.SyncDisplays([]platform.Display{mainDisplay})
	if s := tl.Status(); s.Displays != 1 || s.Stashed != 1 || s.Windows != 1 {
		t.Fatalf("unexpected status %+v", s)
	}

	do(t, tl, "unstash")
	if got := bounds(t, b, wr); got != (platform.Rect{X: 960, Width: 960, Height: 1080}) {
		t.Fatalf("restored window at %+v", got)
	}
}

func TestSyncDisplaysFollowsWorkArea(t *testing.T) {
	tl, b := newTestTiler(t)
	w1 := open(t, tl, b)

	panel := mainDisplay
	panel.Usable = platform.Rect{Y: 40, Width: 1920, Height: 1040}
	tl.SyncDisplays([]platform.Display{panel})
	if got := bounds(t, b, w1); got != panel.Usable {
		t.Fatalf("got %+v, want %+v", got, panel.Usable)
	}
}

func TestGaps(t *testing.T) {
	tl, b := newTestTiler(t, func(cfg *config.Config) {
		cfg.Gaps = config.Gaps{Inner: 10, Outer: 20}
	})
	w1 := open(t, tl, b)
	if got := bounds(t, b, w1); got != (platform.Rect{X: 25, Y: 25, Width: 1870, Height: 1030}) {
		t.Fatalf("single window at %+v", got)
	}
	w2 := open(t, tl, b)
	if got := bounds(t, b, w1); got != (platform.Rect{X: 25, Y: 25, Width: 930, Height: 1030}) {
		t.Fatalf("left window at %+v", got)
	}
	if got := bounds(t, b, w2); got != (platform.Rect{X: 965, Y: 25, Width: 930, Height: 1030}) {
		t.Fatalf("right window at %+v", got)
	}

	cfg := *tl.config
	cfg.Gaps = config.Gaps{}
	tl.UpdateConfig(&cfg)
	if got := bounds(t, b, w1); got != (platform.Rect{Width: 960, Height: 1080}) {
		t.Fatalf("window after removing gaps at %+v", got)
	}
}

func TestDoWithoutDisplay(t *testing.T) {
	tl, _ := newTestTiler(t)
	if _, err := tl.DoString("focus-left"); !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("expected ErrNoDisplay, got %v", err)
	}
}
