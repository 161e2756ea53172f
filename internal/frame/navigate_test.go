package frame

import "testing"

// threePane builds root = A | (B / C).
func threePane(t *testing.T) (l *Layout, root, a, v, b, c *Frame) {
	t.Helper()
	l, root, _ = newTestLayout(t, 0)
	a, v = mustSplit(t, l, root, SplitHorizontal)
	b, c = mustSplit(t, l, v, SplitVertical)
	a.Window, b.Window, c.Window = 1, 2, 3
	return l, root, a, v, b, c
}

func TestNeighbor(t *testing.T) {
	l, _, a, v, b, c := threePane(t)

	tests := []struct {
		name string
		got  *Frame
		want *Frame
	}{
		{"left of B", l.LeftOf(b), a},
		{"left of C", l.LeftOf(c), a},
		{"right of A", l.RightOf(a), v},
		{"left of the column", l.LeftOf(v), a},
		{"above C", l.Above(c), b},
		{"below B", l.Below(b), c},
		{"left of A", l.LeftOf(a), nil},
		{"right of B", l.RightOf(b), nil},
		{"above A", l.Above(a), nil},
		{"below C", l.Below(c), nil},
		{"above B", l.Above(b), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestEdgeLeaf(t *testing.T) {
	l, root, a, _, b, c := threePane(t)

	tests := []struct {
		name string
		got  *Frame
		want *Frame
	}{
		{"rightmost at y=900", l.MostRightLeaf(root, 900), c},
		{"rightmost at y=100", l.MostRightLeaf(root, 100), b},
		{"rightmost on the boundary", l.MostRightLeaf(root, 540), c},
		{"topmost at x=1500", l.MostTopLeaf(root, 1500), b},
		{"topmost at x=100", l.MostTopLeaf(root, 100), a},
		{"leftmost", l.MostLeftLeaf(root, 700), a},
		{"bottommost at x=1500", l.MostBottomLeaf(root, 1500), c},
		{"bottommost at x=959", l.MostBottomLeaf(root, 959), a},
		{"leaf itself", l.MostLeftLeaf(b, 0), b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestNeighborLeaf(t *testing.T) {
	l, _, a, _, b, c := threePane(t)

	if got := l.NeighborLeaf(c, DirLeft); got != a {
		t.Fatalf("expected A left of C, got %v", got)
	}
	// The center of A sits on the boundary between B and C.
	if got := l.NeighborLeaf(a, DirRight); got != c {
		t.Fatalf("expected C right of A, got %v", got)
	}
	if got := l.NeighborLeaf(b, DirDown); got != c {
		t.Fatalf("expected C below B, got %v", got)
	}
	if got := l.NeighborLeaf(a, DirLeft); got != nil {
		t.Fatalf("expected no leaf left of A, got %v", got)
	}

	l.BumpEdge(b, EdgeBottom, 100)
	if got := l.NeighborLeaf(a, DirRight); got != b {
		t.Fatalf("expected B right of A after the bump, got %v", got)
	}
}

func TestNeighborAcrossNestedSplits(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	left, right := mustSplit(t, l, root, SplitHorizontal)
	l1, l2 := mustSplit(t, l, left, SplitHorizontal)
	r1, _ := mustSplit(t, l, right, SplitHorizontal)

	if got := l.RightOf(l2); got != right {
		t.Fatalf("expected the right half, got %v", got)
	}
	if got := l.NeighborLeaf(l2, DirRight); got != r1 {
		t.Fatalf("expected the first leaf of the right half, got %v", got)
	}
	if got := l.LeftOf(l1); got != nil {
		t.Fatalf("expected nothing left of the first column, got %v", got)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"left", DirLeft, false},
		{"u", DirUp, false},
		{"below", DirDown, false},
		{"right", DirRight, false},
		{"sideways", DirLeft, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDirection(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirLeft:  DirRight,
		DirRight: DirLeft,
		DirUp:    DirDown,
		DirDown:  DirUp,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Fatalf("%v.Opposite() = %v, want %v", d, got, want)
		}
		if d.Axis() != want.Axis() {
			t.Fatalf("%v and %v should share an axis", d, want)
		}
	}
}
