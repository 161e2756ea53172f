// Package frame implements the tiling layout tree: a binary partition of
// each monitor into rectangular frames, plus the stash that keeps detached
// subtrees around until they are put back into a void.
//
// All operations run to completion on the caller's goroutine. A Layout is
// not safe for concurrent use; callers serialize access.
package frame

import (
	"errors"
	"fmt"
	"log/slog"
)

// DefaultMinimumSize is the minimum width and height of an on-screen leaf
// when Options.MinimumSize is not set.
const DefaultMinimumSize = 24

var (
	// ErrNilFrame is returned when a required frame is nil.
	ErrNilFrame = errors.New("frame is nil")
	// ErrAncestor is returned by Exchange when one frame contains the other.
	ErrAncestor = errors.New("frames are in an ancestor relationship")
	// ErrRoot is returned by Remove for a screen root.
	ErrRoot = errors.New("frame is a root")
	// ErrNoSpace is returned when the minimum sizes of the frames involved
	// do not fit the available rectangle.
	ErrNoSpace = errors.New("not enough space")
	// ErrNotVoid is returned when an operation needs an empty leaf.
	ErrNotVoid = errors.New("frame is not a void")
)

// Rect is a frame rectangle in screen coordinates.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Center returns the center point of r.
func (r Rect) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// SplitDirection says how an internal frame divides its rectangle.
type SplitDirection uint8

const (
	SplitNone       SplitDirection = iota
	SplitHorizontal                // children side by side
	SplitVertical                  // children stacked
)

func (d SplitDirection) String() string {
	switch d {
	case SplitHorizontal:
		return "horizontal"
	case SplitVertical:
		return "vertical"
	default:
		return "none"
	}
}

// ParseSplitDirection parses "horizontal", "vertical" or "none".
func ParseSplitDirection(s string) (SplitDirection, error) {
	switch s {
	case "horizontal", "h":
		return SplitHorizontal, nil
	case "vertical", "v":
		return SplitVertical, nil
	case "none", "":
		return SplitNone, nil
	}
	return SplitNone, fmt.Errorf("unknown split direction %q", s)
}

// Ratio is the share of the split axis given to the left/top child.
type Ratio struct {
	Numerator   uint32 `json:"numerator" yaml:"numerator"`
	Denominator uint32 `json:"denominator" yaml:"denominator"`
}

// Half is the ratio new splits start from.
var Half = Ratio{Numerator: 1, Denominator: 2}

// apply returns floor(extent * r) using a 64 bit intermediate.
func (r Ratio) apply(extent int) int {
	if r.Denominator == 0 {
		r = Half
	}
	return int(int64(extent) * int64(r.Numerator) / int64(r.Denominator))
}

// WindowID is an opaque handle to a client window. Zero means no window.
type WindowID uint32

// Frame is a node of the layout tree. A leaf has no children and may hold a
// window; an internal frame has exactly two children and a split direction.
type Frame struct {
	Rect

	Split SplitDirection
	Ratio Ratio

	Left   *Frame
	Right  *Frame
	Parent *Frame

	Window WindowID
	Number int

	stashNext *Frame
	stashed   bool
}

// IsLeaf reports whether f has no children.
func (f *Frame) IsLeaf() bool {
	return f.Left == nil
}

// IsVoid reports whether f is an empty leaf.
func (f *Frame) IsVoid() bool {
	return f.Left == nil && f.Window == 0
}

// IsStashed reports whether f currently sits in a stash list.
func (f *Frame) IsStashed() bool {
	return f.stashed
}

// Sibling returns the other child of f's parent, or nil for a root.
func (f *Frame) Sibling() *Frame {
	if f.Parent == nil {
		return nil
	}
	if f.Parent.Left == f {
		return f.Parent.Right
	}
	return f.Parent.Left
}

// IsAncestor reports whether a is a proper ancestor of f.
func (f *Frame) IsAncestor(a *Frame) bool {
	for p := f.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

// Root returns the topmost ancestor of f.
func (f *Frame) Root() *Frame {
	for f.Parent != nil {
		f = f.Parent
	}
	return f
}

// Walk calls fn for f and every frame below it in pre-order. Returning
// false from fn stops the walk.
func Walk(f *Frame, fn func(*Frame) bool) bool {
	if f == nil {
		return true
	}
	if !fn(f) {
		return false
	}
	if f.Left != nil {
		if !Walk(f.Left, fn) {
			return false
		}
		return Walk(f.Right, fn)
	}
	return true
}

// Leaves returns the leaves of f from left/top to right/bottom.
func Leaves(f *Frame) []*Frame {
	var leaves []*Frame
	Walk(f, func(n *Frame) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// ReloadFunc is told about every frame whose rectangle was (re)applied.
type ReloadFunc func(f *Frame)

// Options configures a Layout.
type Options struct {
	MinimumSize int
	OnReload    ReloadFunc
	Logger      *slog.Logger
}

// Layout owns the screen trees of all monitors and the stash.
type Layout struct {
	minSize int
	reload  ReloadFunc
	logger  *slog.Logger

	roots []*Frame
	stash *Frame
}

// New creates an empty layout.
func New(opts Options) *Layout {
	l := &Layout{
		minSize: opts.MinimumSize,
		reload:  opts.OnReload,
		logger:  opts.Logger,
	}
	if l.minSize <= 0 {
		l.minSize = DefaultMinimumSize
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	return l
}

// MinimumLeafSize returns the minimum leaf extent of this layout.
func (l *Layout) MinimumLeafSize() int {
	return l.minSize
}

// SetReloadHook replaces the reload hook.
func (l *Layout) SetReloadHook(fn ReloadFunc) {
	l.reload = fn
}

func (l *Layout) notify(f *Frame) {
	if l.reload != nil {
		l.reload(f)
	}
}

// AddRoot creates a void root frame covering r, typically one per monitor.
func (l *Layout) AddRoot(r Rect) *Frame {
	root := &Frame{}
	l.roots = append(l.roots, root)
	l.Resize(root, r.X, r.Y, r.Width, r.Height)
	return root
}

// RemoveRoot drops a screen root. The subtree is left untouched so the
// caller can stash or discard it.
func (l *Layout) RemoveRoot(root *Frame) bool {
	for i, r := range l.roots {
		if r == root {
			l.roots = append(l.roots[:i], l.roots[i+1:]...)
			return true
		}
	}
	return false
}

// Roots returns the screen roots in creation order.
func (l *Layout) Roots() []*Frame {
	out := make([]*Frame, len(l.roots))
	copy(out, l.roots)
	return out
}

// IsOnScreen reports whether f belongs to one of the screen trees.
func (l *Layout) IsOnScreen(f *Frame) bool {
	if f == nil {
		return false
	}
	root := f.Root()
	for _, r := range l.roots {
		if r == root {
			return true
		}
	}
	return false
}

// RootAt returns the screen root whose rectangle contains the point.
func (l *Layout) RootAt(x, y int) *Frame {
	for _, r := range l.roots {
		if r.Contains(x, y) {
			return r
		}
	}
	return nil
}

// FrameByWindow finds the on-screen leaf holding the window.
func (l *Layout) FrameByWindow(id WindowID) *Frame {
	if id == 0 {
		return nil
	}
	var found *Frame
	for _, r := range l.roots {
		Walk(r, func(f *Frame) bool {
			if f.Window == id {
				found = f
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// FrameByNumber looks the number up in the screen trees first and then in
// the stash.
func (l *Layout) FrameByNumber(n int) *Frame {
	if n == 0 {
		return nil
	}
	var found *Frame
	match := func(f *Frame) bool {
		if f.Number == n {
			found = f
			return false
		}
		return true
	}
	for _, r := range l.roots {
		if !Walk(r, match) {
			return found
		}
	}
	for s := l.stash; s != nil; s = s.stashNext {
		if !Walk(s, match) {
			return found
		}
	}
	return nil
}

// SetNumber assigns n to f, taking it away from whichever frame held it.
// Zero clears the number of f.
func (l *Layout) SetNumber(f *Frame, n int) {
	if f == nil {
		return
	}
	if n != 0 {
		if other := l.FrameByNumber(n); other != nil && other != f {
			other.Number = 0
		}
	}
	f.Number = n
}

// Validate checks the structural invariants of the subtree rooted at f.
func (l *Layout) Validate(f *Frame) error {
	var err error
	Walk(f, func(n *Frame) bool {
		err = l.validateNode(n)
		return err == nil
	})
	return err
}

func (l *Layout) validateNode(f *Frame) error {
	if (f.Left == nil) != (f.Right == nil) {
		return fmt.Errorf("frame at %d,%d has a single child", f.X, f.Y)
	}
	if f.Left == nil {
		if f.Split != SplitNone {
			return fmt.Errorf("leaf at %d,%d has split direction %s", f.X, f.Y, f.Split)
		}
		if l.IsOnScreen(f) {
			if f.Width < l.minSize || f.Height < l.minSize {
				return fmt.Errorf("leaf at %d,%d is %dx%d, below minimum %d",
					f.X, f.Y, f.Width, f.Height, l.minSize)
			}
		}
		return nil
	}
	if f.Window != 0 {
		return fmt.Errorf("internal frame at %d,%d holds window %d", f.X, f.Y, f.Window)
	}
	if f.Left.Parent != f || f.Right.Parent != f {
		return fmt.Errorf("frame at %d,%d has children with a stale parent", f.X, f.Y)
	}
	a, b := f.Left, f.Right
	switch f.Split {
	case SplitHorizontal:
		if a.Width+b.Width != f.Width || a.Height != f.Height || b.Height != f.Height ||
			a.X != f.X || b.X != f.X+a.Width || a.Y != f.Y || b.Y != f.Y {
			return fmt.Errorf("horizontal split at %d,%d does not partition %dx%d", f.X, f.Y, f.Width, f.Height)
		}
	case SplitVertical:
		if a.Height+b.Height != f.Height || a.Width != f.Width || b.Width != f.Width ||
			a.Y != f.Y || b.Y != f.Y+a.Height || a.X != f.X || b.X != f.X {
			return fmt.Errorf("vertical split at %d,%d does not partition %dx%d", f.X, f.Y, f.Width, f.Height)
		}
	default:
		return fmt.Errorf("internal frame at %d,%d has no split direction", f.X, f.Y)
	}
	if f.Ratio.Numerator == 0 || f.Ratio.Numerator > f.Ratio.Denominator {
		return fmt.Errorf("frame at %d,%d has invalid ratio %d/%d",
			f.X, f.Y, f.Ratio.Numerator, f.Ratio.Denominator)
	}
	return nil
}

// takeContent moves the children, split, ratio, window and number of src
// into dst and leaves src an unnumbered void. Rectangles are not touched.
func takeContent(dst, src *Frame) {
	dst.Left, dst.Right = src.Left, src.Right
	dst.Split = src.Split
	dst.Ratio = src.Ratio
	dst.Window = src.Window
	dst.Number = src.Number
	if dst.Left != nil {
		dst.Left.Parent = dst
		dst.Right.Parent = dst
	}
	src.Left, src.Right = nil, nil
	src.Split = SplitNone
	src.Ratio = Ratio{}
	src.Window = 0
	src.Number = 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
