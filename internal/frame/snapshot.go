package frame

import (
	"fmt"
	"io"
	"strings"
)

// Node is a serializable copy of a subtree.
type Node struct {
	Rect     Rect     `json:"rect" yaml:"rect"`
	Split    string   `json:"split,omitempty" yaml:"split,omitempty"`
	Ratio    *Ratio   `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Window   WindowID `json:"window,omitempty" yaml:"window,omitempty"`
	Number   int      `json:"number,omitempty" yaml:"number,omitempty"`
	Focused  bool     `json:"focused,omitempty" yaml:"focused,omitempty"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Snapshot copies the subtree of f. The focused frame, if any, is marked.
func Snapshot(f, focused *Frame) Node {
	n := Node{
		Rect:    f.Rect,
		Window:  f.Window,
		Number:  f.Number,
		Focused: f == focused,
	}
	if f.Left != nil {
		ratio := f.Ratio
		n.Split = f.Split.String()
		n.Ratio = &ratio
		n.Children = []Node{Snapshot(f.Left, focused), Snapshot(f.Right, focused)}
	}
	return n
}

// Leaves returns the leaf nodes of n in order.
func (n Node) Leaves() []Node {
	if len(n.Children) == 0 {
		return []Node{n}
	}
	var out []Node
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// WriteTree prints n as an indented outline.
func (n Node) WriteTree(w io.Writer) error {
	return n.writeTree(w, 0)
}

func (n Node) writeTree(w io.Writer, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	if n.Focused {
		b.WriteString("* ")
	}
	fmt.Fprintf(&b, "%dx%d+%d+%d", n.Rect.Width, n.Rect.Height, n.Rect.X, n.Rect.Y)
	if n.Number != 0 {
		fmt.Fprintf(&b, " #%d", n.Number)
	}
	if len(n.Children) > 0 {
		fmt.Fprintf(&b, " %s %d/%d", n.Split, n.Ratio.Numerator, n.Ratio.Denominator)
	} else if n.Window != 0 {
		fmt.Fprintf(&b, " window=0x%x", uint32(n.Window))
	} else {
		b.WriteString(" void")
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.writeTree(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
