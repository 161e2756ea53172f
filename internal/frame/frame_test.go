package frame

import (
	"reflect"
	"testing"
)

// newTestLayout returns a layout with a single 1920x1080 root and a counter
// of reload notifications.
func newTestLayout(t *testing.T, minSize int) (*Layout, *Frame, *int) {
	t.Helper()
	reloads := 0
	l := New(Options{
		MinimumSize: minSize,
		OnReload:    func(*Frame) { reloads++ },
	})
	root := l.AddRoot(Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	return l, root, &reloads
}

// mustSplit splits f and returns (old content, new frame).
func mustSplit(t *testing.T, l *Layout, f *Frame, dir SplitDirection) (*Frame, *Frame) {
	t.Helper()
	moved, inserted, err := l.Split(f, nil, false, dir)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	return moved, inserted
}

func mustValidate(t *testing.T, l *Layout, f *Frame) {
	t.Helper()
	if err := l.Validate(f); err != nil {
		t.Fatalf("invalid tree: %v", err)
	}
}

// columns builds root = left | right with windows 1 and 2.
func columns(t *testing.T, l *Layout, root *Frame) (*Frame, *Frame) {
	t.Helper()
	left, right := mustSplit(t, l, root, SplitHorizontal)
	left.Window = 1
	right.Window = 2
	return left, right
}

func TestAddRootIsVoidLeaf(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	if !root.IsVoid() {
		t.Fatalf("expected void root")
	}
	if root.Rect != (Rect{Width: 1920, Height: 1080}) {
		t.Fatalf("unexpected root rect %+v", root.Rect)
	}
	if l.MinimumLeafSize() != DefaultMinimumSize {
		t.Fatalf("expected default minimum size, got %d", l.MinimumLeafSize())
	}
	if got := l.Roots(); len(got) != 1 || got[0] != root {
		t.Fatalf("unexpected roots %v", got)
	}
	mustValidate(t, l, root)
}

func TestSiblingAndAncestor(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	left, right := columns(t, l, root)
	top, bottom := mustSplit(t, l, right, SplitVertical)

	if left.Sibling() != right {
		t.Fatalf("expected right to be sibling of left")
	}
	if top.Sibling() != bottom || bottom.Sibling() != top {
		t.Fatalf("unexpected siblings in vertical split")
	}
	if root.Sibling() != nil {
		t.Fatalf("root has no sibling")
	}
	if !bottom.IsAncestor(root) || !bottom.IsAncestor(right) {
		t.Fatalf("expected root and right to be ancestors of bottom")
	}
	if left.IsAncestor(right) {
		t.Fatalf("right is not an ancestor of left")
	}
	if bottom.Root() != root {
		t.Fatalf("expected root of bottom to be root")
	}
}

func TestLeavesOrder(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	left, right := columns(t, l, root)
	top, bottom := mustSplit(t, l, right, SplitVertical)

	got := Leaves(root)
	want := []*Frame{left, top, bottom}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected leaf order")
	}
}

func TestFrameByWindowAndNumber(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	left, right := columns(t, l, root)

	if l.FrameByWindow(2) != right {
		t.Fatalf("expected window 2 in right frame")
	}
	if l.FrameByWindow(0) != nil || l.FrameByWindow(99) != nil {
		t.Fatalf("expected no frame for unknown windows")
	}

	l.SetNumber(left, 3)
	if l.FrameByNumber(3) != left {
		t.Fatalf("expected number 3 on left frame")
	}
	l.SetNumber(right, 3)
	if left.Number != 0 || l.FrameByNumber(3) != right {
		t.Fatalf("expected number 3 to move to right frame")
	}
	if l.FrameByNumber(0) != nil {
		t.Fatalf("number 0 is never registered")
	}
}

func TestValidateReportsBrokenPartition(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	left, _ := columns(t, l, root)
	left.Width += 5

	if err := l.Validate(root); err == nil {
		t.Fatalf("expected partition error")
	}
}

func TestValidateReportsUndersizedLeaf(t *testing.T) {
	l := New(Options{MinimumSize: 100})
	root := l.AddRoot(Rect{Width: 150, Height: 150})

	if err := l.Validate(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Resize(root, 0, 0, 50, 150)
	if err := l.Validate(root); err == nil {
		t.Fatalf("expected minimum size error")
	}
}

func TestRemoveRoot(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	second := l.AddRoot(Rect{X: 1920, Width: 1280, Height: 1024})

	if l.RootAt(2000, 10) != second {
		t.Fatalf("expected second root at x=2000")
	}
	if !l.RemoveRoot(root) {
		t.Fatalf("expected root removal")
	}
	if l.RemoveRoot(root) {
		t.Fatalf("root removed twice")
	}
	if l.IsOnScreen(root) {
		t.Fatalf("removed root still on screen")
	}
}

func TestParseSplitDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    SplitDirection
		wantErr bool
	}{
		{"horizontal", SplitHorizontal, false},
		{"v", SplitVertical, false},
		{"", SplitNone, false},
		{"diagonal", SplitNone, true},
	}
	for _, tt := range tests {
		got, err := ParseSplitDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseSplitDirection(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSplitDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
