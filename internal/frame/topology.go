package frame

import "fmt"

// Split turns f into an internal frame. The previous content of f moves
// into a new child, and other (a fresh void when nil) becomes the second
// child; before puts other on the left/top. The split point starts at half
// of f and is moved as needed so both sides keep their minimum size.
//
// other must be a parentless frame. Returns the frame now holding the old
// content of f and the inserted frame.
func (l *Layout) Split(f, other *Frame, before bool, dir SplitDirection) (moved, inserted *Frame, err error) {
	if f == nil {
		return nil, nil, ErrNilFrame
	}
	if dir == SplitNone {
		return nil, nil, fmt.Errorf("split needs a direction")
	}
	if other == nil {
		other = &Frame{}
	} else if other.Parent != nil || other.stashed {
		return nil, nil, fmt.Errorf("split: inserted frame is still attached")
	}
	if !l.fits(f, other, dir, f.Width, f.Height) {
		return nil, nil, fmt.Errorf("split %dx%d %s: %w", f.Width, f.Height, dir, ErrNoSpace)
	}

	moved = &Frame{Rect: f.Rect}
	takeContent(moved, f)

	first, second := moved, other
	if before {
		first, second = other, moved
	}
	f.Left, f.Right = first, second
	first.Parent, second.Parent = f, f
	f.Split = dir
	f.Ratio = l.splitRatio(f)

	l.relayout(f)
	l.logger.Debug("split frame", "direction", dir, "before", before)
	return moved, other, nil
}

// fits reports whether a and b can share a width x height area split
// along dir without dropping below their minimum sizes.
func (l *Layout) fits(a, b *Frame, dir SplitDirection, width, height int) bool {
	aw, ah := l.MinimumSize(a)
	bw, bh := l.MinimumSize(b)
	if dir == SplitHorizontal {
		return aw+bw <= width && maxInt(ah, bh) <= height
	}
	return ah+bh <= height && maxInt(aw, bw) <= width
}

// splitRatio returns a half split of f clamped to the minimum sizes of its
// children.
func (l *Layout) splitRatio(f *Frame) Ratio {
	extent := f.Width
	minFirst, _ := l.MinimumSize(f.Left)
	minSecond, _ := l.MinimumSize(f.Right)
	if f.Split == SplitVertical {
		extent = f.Height
		_, minFirst = l.MinimumSize(f.Left)
		_, minSecond = l.MinimumSize(f.Right)
	}
	if extent <= 0 {
		return Half
	}
	first := clampSplit(extent/2, extent, minFirst, minSecond)
	if first == extent/2 || first <= 0 {
		return Half
	}
	return Ratio{Numerator: uint32(first), Denominator: uint32(extent)}
}

// Remove takes f out of its tree. The sibling's content takes over the
// parent's slot and f keeps its own content as a parentless frame.
func (l *Layout) Remove(f *Frame) error {
	if f == nil {
		return ErrNilFrame
	}
	parent := f.Parent
	if parent == nil {
		return ErrRoot
	}
	sibling := f.Sibling()
	number := parent.Number

	parent.Left, parent.Right = nil, nil
	f.Parent = nil
	takeContent(parent, sibling)
	sibling.Parent = nil
	if parent.Number == 0 {
		parent.Number = number
	}

	l.relayout(parent)
	l.logger.Debug("removed frame", "window", f.Window)
	return nil
}

// MoveFrame relocates f next to the frame across its dir side:
//
//   - no neighbor (the edge of a monitor): nothing happens;
//   - the neighbor is a leaf: f is split onto its far side;
//   - the neighbor is split across dir: f is split onto the near side of
//     the child that lines up with the center of f;
//   - either of the above lands on a void: the content of f fills it
//     without a split;
//   - the neighbor is split along dir: f is split onto the far side of the
//     whole neighbor.
//
// Returns the frame now holding the content of f and whether anything
// moved. Moves that would leave a frame below the minimum size are refused
// before anything is touched.
func (l *Layout) MoveFrame(f *Frame, dir Direction) (*Frame, bool) {
	if f == nil || f.Parent == nil {
		return nil, false
	}
	n := l.Neighbor(f, dir)
	if n == nil {
		return nil, false
	}
	axis := dir.Axis()
	parent, sibling := f.Parent, f.Sibling()

	target, before := n, dir.backward()
	if n.Left != nil && n.Split != axis {
		cx, cy := f.Center()
		hint := cy
		if n.Split == SplitHorizontal {
			hint = cx
		}
		target = l.spanningChild(n, hint)
		before = !dir.backward()
	}

	if target.IsVoid() {
		if !l.fitsInto(f, target, sibling) {
			return nil, false
		}
		if err := l.Remove(f); err != nil {
			return nil, false
		}
		if target == sibling {
			target = parent
		}
		number := target.Number
		takeContent(target, f)
		if target.Number == 0 {
			target.Number = number
		}
		l.relayout(target)
		l.logger.Debug("moved frame into void", "direction", dir)
		return target, true
	}

	if !l.fitsBeside(f, target, sibling, axis) {
		return nil, false
	}
	if err := l.Remove(f); err != nil {
		return nil, false
	}
	if target == sibling {
		target = parent
	}
	if _, _, err := l.Split(target, f, before, axis); err != nil {
		// fitsBeside checked the space already; this only happens for
		// corrupt trees.
		l.logger.Error("move frame: split failed", "error", err)
		return nil, false
	}
	l.logger.Debug("moved frame", "direction", dir)
	return f, true
}

// spanningChild returns the child of n whose extent contains hint along the
// split axis of n. A hint on the boundary picks the second child.
func (l *Layout) spanningChild(n *Frame, hint int) *Frame {
	if n.Split == SplitHorizontal {
		if hint < n.Right.X {
			return n.Left
		}
		return n.Right
	}
	if hint < n.Right.Y {
		return n.Left
	}
	return n.Right
}

// slotAfterRemoval returns the rectangle target occupies once f is
// removed: the sibling of f grows to the parent's rectangle.
func slotAfterRemoval(f, target, sibling *Frame) Rect {
	if target == sibling {
		return f.Parent.Rect
	}
	return target.Rect
}

func (l *Layout) fitsInto(f, void, sibling *Frame) bool {
	r := slotAfterRemoval(f, void, sibling)
	w, h := l.MinimumSize(f)
	return w <= r.Width && h <= r.Height
}

func (l *Layout) fitsBeside(f, target, sibling *Frame, axis SplitDirection) bool {
	r := slotAfterRemoval(f, target, sibling)
	return l.fits(target, f, axis, r.Width, r.Height)
}

// Exchange swaps the contents of two frames: children, split direction,
// ratio and window. Each frame keeps its slot, rectangle and number, and
// both subtrees are laid out again in their new rectangles.
func (l *Layout) Exchange(from, to *Frame) error {
	if from == nil || to == nil {
		return ErrNilFrame
	}
	if from == to {
		return nil
	}
	if from.IsAncestor(to) || to.IsAncestor(from) {
		return ErrAncestor
	}
	fw, fh := l.MinimumSize(from)
	tw, th := l.MinimumSize(to)
	if fw > to.Width || fh > to.Height || tw > from.Width || th > from.Height {
		return fmt.Errorf("exchange: %w", ErrNoSpace)
	}

	fromNumber, toNumber := from.Number, to.Number
	tmp := &Frame{}
	takeContent(tmp, from)
	takeContent(from, to)
	takeContent(to, tmp)
	from.Number, to.Number = fromNumber, toNumber

	l.relayout(from)
	l.relayout(to)
	return nil
}
