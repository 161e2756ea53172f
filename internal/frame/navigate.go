package frame

import "fmt"

// Direction is a direction of travel across the screen.
type Direction uint8

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	}
	return "unknown"
}

// ParseDirection parses left, up, right or down.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left", "l":
		return DirLeft, nil
	case "up", "u", "above":
		return DirUp, nil
	case "right", "r":
		return DirRight, nil
	case "down", "d", "below":
		return DirDown, nil
	}
	return DirLeft, fmt.Errorf("unknown direction %q", s)
}

// Axis returns the split direction whose children line up along d.
func (d Direction) Axis() SplitDirection {
	if d == DirLeft || d == DirRight {
		return SplitHorizontal
	}
	return SplitVertical
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// backward reports whether d points towards the left/top child.
func (d Direction) backward() bool {
	return d == DirLeft || d == DirUp
}

// LeftOf returns the frame directly left of f: the left child of the
// nearest horizontal split that has f in its right subtree. It is nil when
// f touches the left edge of its tree, and usually an internal frame when f
// has no single leaf neighbor.
func (l *Layout) LeftOf(f *Frame) *Frame {
	return l.Neighbor(f, DirLeft)
}

// Above returns the frame directly above f.
func (l *Layout) Above(f *Frame) *Frame {
	return l.Neighbor(f, DirUp)
}

// RightOf returns the frame directly right of f.
func (l *Layout) RightOf(f *Frame) *Frame {
	return l.Neighbor(f, DirRight)
}

// Below returns the frame directly below f.
func (l *Layout) Below(f *Frame) *Frame {
	return l.Neighbor(f, DirDown)
}

// Neighbor walks up from f until it sits on the trailing side of a split
// along the axis of dir and returns the other child of that split.
func (l *Layout) Neighbor(f *Frame, dir Direction) *Frame {
	if f == nil {
		return nil
	}
	axis := dir.Axis()
	for f.Parent != nil {
		p := f.Parent
		if p.Split == axis {
			if dir.backward() && p.Right == f {
				return p.Left
			}
			if !dir.backward() && p.Left == f {
				return p.Right
			}
		}
		f = p
	}
	return nil
}

// MostLeftLeaf descends from f to its leftmost leaf, choosing between
// stacked children by the y coordinate.
func (l *Layout) MostLeftLeaf(f *Frame, y int) *Frame {
	return l.EdgeLeaf(f, DirLeft, y)
}

// MostTopLeaf descends from f to its topmost leaf, choosing between side by
// side children by the x coordinate.
func (l *Layout) MostTopLeaf(f *Frame, x int) *Frame {
	return l.EdgeLeaf(f, DirUp, x)
}

// MostRightLeaf descends from f to its rightmost leaf.
func (l *Layout) MostRightLeaf(f *Frame, y int) *Frame {
	return l.EdgeLeaf(f, DirRight, y)
}

// MostBottomLeaf descends from f to its bottommost leaf.
func (l *Layout) MostBottomLeaf(f *Frame, x int) *Frame {
	return l.EdgeLeaf(f, DirDown, x)
}

// EdgeLeaf descends from f to the leaf on its dir side. Splits along the
// axis of dir pick the near or far child; perpendicular splits pick the
// child spanning hint, which is a y coordinate for left/right and an x
// coordinate for up/down. A hint on the boundary picks the second child.
// f must not be nil.
func (l *Layout) EdgeLeaf(f *Frame, dir Direction, hint int) *Frame {
	axis := dir.Axis()
	for f.Left != nil {
		switch {
		case f.Split == axis && dir.backward():
			f = f.Left
		case f.Split == axis:
			f = f.Right
		case f.Split == SplitVertical:
			if hint < f.Right.Y {
				f = f.Left
			} else {
				f = f.Right
			}
		default:
			if hint < f.Right.X {
				f = f.Left
			} else {
				f = f.Right
			}
		}
	}
	return f
}

// NeighborLeaf returns the leaf across the dir side of f that lines up with
// the center of f, or nil at the edge of the tree.
func (l *Layout) NeighborLeaf(f *Frame, dir Direction) *Frame {
	n := l.Neighbor(f, dir)
	if n == nil {
		return nil
	}
	cx, cy := f.Center()
	hint := cy
	if dir.Axis() == SplitVertical {
		hint = cx
	}
	return l.EdgeLeaf(n, dir.Opposite(), hint)
}
