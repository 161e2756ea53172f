package platform

import "testing"

func twoDisplays() *MemoryBackend {
	return NewMemoryBackend(
		Display{ID: 0, Name: "left", Bounds: Rect{Width: 1920, Height: 1080}},
		Display{ID: 1, Name: "right", Bounds: Rect{X: 1920, Width: 1280, Height: 1024}},
	)
}

func TestMemoryBackendListsWindowsByCenter(t *testing.T) {
	b := twoDisplays()
	a := b.OpenWindow("kitty", 100, 100)
	c := b.OpenWindow("kitty", 2500, 500)

	left, err := b.ListWindowsOnDisplay(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 1 || left[0].ID != a {
		t.Fatalf("unexpected windows on the left display: %+v", left)
	}
	right, _ := b.ListWindowsOnDisplay(1)
	if len(right) != 1 || right[0].ID != c {
		t.Fatalf("unexpected windows on the right display: %+v", right)
	}
	if _, err := b.ListWindowsOnDisplay(7); err == nil {
		t.Fatalf("expected an error for an unknown display")
	}
}

func TestMemoryBackendActiveDisplayFollowsActiveWindow(t *testing.T) {
	b := twoDisplays()
	if d, _ := b.ActiveDisplay(); d.ID != 0 {
		t.Fatalf("expected the first display without windows, got %d", d.ID)
	}
	b.OpenWindow("kitty", 2500, 500)
	if d, _ := b.ActiveDisplay(); d.ID != 1 {
		t.Fatalf("expected the right display, got %d", d.ID)
	}
	if d, _ := b.ActiveDisplay(); d.Usable != d.Bounds {
		t.Fatalf("usable area should default to the bounds")
	}
}

func TestMemoryBackendRecordsCalls(t *testing.T) {
	b := twoDisplays()
	id := b.OpenWindow("kitty", 100, 100)

	if err := b.MoveResize(id, Rect{X: 10, Y: 10, Width: 500, Height: 400}); err != nil {
		t.Fatalf("move resize: %v", err)
	}
	if err := b.Minimize(id); err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if w, _ := b.Window(id); !w.Hidden || w.Bounds.Width != 500 {
		t.Fatalf("unexpected window state %+v", w)
	}
	if active, _ := b.ActiveWindow(); active != 0 {
		t.Fatalf("a minimized window cannot stay active")
	}
	if err := b.Activate(id); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := b.Close(id); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := b.MoveResize(id, Rect{}); err == nil {
		t.Fatalf("expected an error for a closed window")
	}

	want := []string{"move-resize", "minimize", "activate", "close", "move-resize"}
	calls := b.Calls()
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %+v", len(want), calls)
	}
	for i, op := range want {
		if calls[i].Op != op {
			t.Fatalf("call %d: expected %s, got %s", i, op, calls[i].Op)
		}
	}
	b.ResetCalls()
	if len(b.Calls()) != 0 {
		t.Fatalf("expected an empty call log")
	}
}
