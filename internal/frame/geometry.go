package frame

// Edge is one side of a frame.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	}
	return "unknown"
}

// Resize sets the rectangle of f and lays out its subtree using the stored
// ratios. Where the extent allows it, a split point is clamped so neither
// child drops below its minimum size. The reload hook sees every frame of
// the subtree, children first.
func (l *Layout) Resize(f *Frame, x, y, width, height int) {
	f.X, f.Y, f.Width, f.Height = x, y, width, height
	if f.Left != nil {
		switch f.Split {
		case SplitHorizontal:
			minLeft, _ := l.MinimumSize(f.Left)
			minRight, _ := l.MinimumSize(f.Right)
			left := clampSplit(f.Ratio.apply(width), width, minLeft, minRight)
			l.Resize(f.Left, x, y, left, height)
			l.Resize(f.Right, x+left, y, width-left, height)
		case SplitVertical:
			_, minTop := l.MinimumSize(f.Left)
			_, minBottom := l.MinimumSize(f.Right)
			top := clampSplit(f.Ratio.apply(height), height, minTop, minBottom)
			l.Resize(f.Left, x, y, width, top)
			l.Resize(f.Right, x, y+top, width, height-top)
		}
	}
	l.notify(f)
}

// relayout reapplies the current rectangle of f.
func (l *Layout) relayout(f *Frame) {
	l.Resize(f, f.X, f.Y, f.Width, f.Height)
}

// ResizeIgnoreRatio is Resize with the split point taken from the previous
// pixel extents of the children instead of the stored ratio, which stays
// as it is. Where the extent allows it, the split point never leaves a
// child below its minimum size.
func (l *Layout) ResizeIgnoreRatio(f *Frame, x, y, width, height int) {
	f.X, f.Y, f.Width, f.Height = x, y, width, height
	if f.Left != nil {
		switch f.Split {
		case SplitHorizontal:
			left := proportional(width, f.Left.Width, f.Right.Width)
			minLeft, _ := l.MinimumSize(f.Left)
			minRight, _ := l.MinimumSize(f.Right)
			left = clampSplit(left, width, minLeft, minRight)
			l.ResizeIgnoreRatio(f.Left, x, y, left, height)
			l.ResizeIgnoreRatio(f.Right, x+left, y, width-left, height)
		case SplitVertical:
			top := proportional(height, f.Left.Height, f.Right.Height)
			_, minTop := l.MinimumSize(f.Left)
			_, minBottom := l.MinimumSize(f.Right)
			top = clampSplit(top, height, minTop, minBottom)
			l.ResizeIgnoreRatio(f.Left, x, y, width, top)
			l.ResizeIgnoreRatio(f.Right, x, y+top, width, height-top)
		}
	}
	l.notify(f)
}

// syncRatios stores the current pixel split of every internal frame of f
// as its ratio, so a later Resize of the same rectangle keeps the geometry.
func syncRatios(f *Frame) {
	if f.Left == nil {
		return
	}
	first, extent := f.Left.Width, f.Width
	if f.Split == SplitVertical {
		first, extent = f.Left.Height, f.Height
	}
	if first > 0 && first < extent {
		f.Ratio = Ratio{Numerator: uint32(first), Denominator: uint32(extent)}
	}
	syncRatios(f.Left)
	syncRatios(f.Right)
}

func proportional(extent, prevFirst, prevSecond int) int {
	if prevFirst <= 0 || prevSecond <= 0 {
		return extent / 2
	}
	return int(int64(extent) * int64(prevFirst) / int64(prevFirst+prevSecond))
}

// clampSplit keeps first in [minFirst, extent-minSecond] when both fit.
func clampSplit(first, extent, minFirst, minSecond int) int {
	if minFirst+minSecond > extent {
		return first
	}
	if first < minFirst {
		first = minFirst
	}
	if first > extent-minSecond {
		first = extent - minSecond
	}
	return first
}

// MinimumSize returns the smallest width and height the subtree of f can
// be laid out in without any leaf dropping below the minimum size.
func (l *Layout) MinimumSize(f *Frame) (width, height int) {
	if f.Left == nil {
		return l.minSize, l.minSize
	}
	lw, lh := l.MinimumSize(f.Left)
	rw, rh := l.MinimumSize(f.Right)
	if f.Split == SplitHorizontal {
		return lw + rw, maxInt(lh, rh)
	}
	return maxInt(lw, rw), lh + rh
}

// BumpEdge moves one edge of f by amount pixels, growing f and shrinking
// the neighbor across that edge (or the reverse for a negative amount). The
// amount is clamped so neither side drops below its minimum size. Returns
// the signed amount actually applied, 0 when there is no neighbor.
func (l *Layout) BumpEdge(f *Frame, edge Edge, amount int) int {
	if f == nil || amount == 0 {
		return 0
	}
	switch edge {
	case EdgeLeft:
		left := l.LeftOf(f)
		if left == nil {
			return 0
		}
		return -l.BumpEdge(left, EdgeRight, -amount)
	case EdgeTop:
		above := l.Above(f)
		if above == nil {
			return 0
		}
		return -l.BumpEdge(above, EdgeBottom, -amount)
	case EdgeRight:
		right := l.RightOf(f)
		if right == nil {
			return 0
		}
		parent := right.Parent
		first := parent.Left
		if amount < 0 {
			minWidth, _ := l.MinimumSize(first)
			amount = maxInt(amount, -(first.Width - minWidth))
		} else {
			minWidth, _ := l.MinimumSize(right)
			amount = minInt(amount, right.Width-minWidth)
		}
		if amount == 0 {
			return 0
		}
		l.ResizeIgnoreRatio(first, first.X, first.Y, first.Width+amount, first.Height)
		l.ResizeIgnoreRatio(right, right.X+amount, right.Y, right.Width-amount, right.Height)
		syncRatios(first)
		syncRatios(right)
		parent.Ratio = Ratio{Numerator: uint32(first.Width), Denominator: uint32(parent.Width)}
	case EdgeBottom:
		below := l.Below(f)
		if below == nil {
			return 0
		}
		parent := below.Parent
		first := parent.Left
		if amount < 0 {
			_, minHeight := l.MinimumSize(first)
			amount = maxInt(amount, -(first.Height - minHeight))
		} else {
			_, minHeight := l.MinimumSize(below)
			amount = minInt(amount, below.Height-minHeight)
		}
		if amount == 0 {
			return 0
		}
		l.ResizeIgnoreRatio(first, first.X, first.Y, first.Width, first.Height+amount)
		l.ResizeIgnoreRatio(below, below.X, below.Y+amount, below.Width, below.Height-amount)
		syncRatios(first)
		syncRatios(below)
		parent.Ratio = Ratio{Numerator: uint32(first.Height), Denominator: uint32(parent.Height)}
	default:
		return 0
	}
	l.logger.Debug("bumped frame edge", "edge", edge, "amount", amount)
	return amount
}

// CountInDirection returns how many leaves of f share the axis of dir: a
// split along dir adds its children, a perpendicular split takes the
// larger child.
func CountInDirection(f *Frame, dir SplitDirection) int {
	if f.Left == nil {
		return 1
	}
	left := CountInDirection(f.Left, dir)
	right := CountInDirection(f.Right, dir)
	if f.Split == dir {
		return left + right
	}
	return maxInt(left, right)
}

func equalizeRatios(f *Frame, dir SplitDirection) {
	if f.Left == nil {
		return
	}
	if f.Split == dir {
		left := CountInDirection(f.Left, dir)
		right := CountInDirection(f.Right, dir)
		f.Ratio = Ratio{Numerator: uint32(left), Denominator: uint32(left + right)}
	}
	equalizeRatios(f.Left, dir)
	equalizeRatios(f.Right, dir)
}

// Equalize gives every leaf along dir an equal share of f and lays the
// subtree out again.
func (l *Layout) Equalize(f *Frame, dir SplitDirection) {
	if f == nil || dir == SplitNone {
		return
	}
	equalizeRatios(f, dir)
	l.relayout(f)
}

// ApplyAutoEqualize equalizes the whole row or column f belongs to: it
// climbs to the highest ancestor sharing f's split direction and equalizes
// from there. A leaf starts at its parent.
func (l *Layout) ApplyAutoEqualize(f *Frame) {
	if f == nil {
		return
	}
	if f.Left == nil {
		f = f.Parent
		if f == nil {
			return
		}
	}
	dir := f.Split
	for f.Parent != nil && f.Parent.Split == dir {
		f = f.Parent
	}
	l.Equalize(f, dir)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
