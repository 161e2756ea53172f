package frame

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSnapshotMarksFocus(t *testing.T) {
	_, root, a, _, b, c := threePane(t)
	a.Number = 1

	n := Snapshot(root, b)
	if n.Split != "horizontal" || n.Ratio == nil || len(n.Children) != 2 {
		t.Fatalf("unexpected root node %+v", n)
	}
	leaves := n.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(leaves))
	}
	if leaves[0].Number != 1 || leaves[0].Focused {
		t.Fatalf("unexpected first leaf %+v", leaves[0])
	}
	if !leaves[1].Focused || leaves[1].Window != b.Window {
		t.Fatalf("expected B to be focused")
	}
	if leaves[2].Rect != c.Rect || leaves[2].Ratio != nil {
		t.Fatalf("unexpected last leaf %+v", leaves[2])
	}
}

func TestSnapshotJSON(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	left, _ := mustSplit(t, l, root, SplitVertical)
	left.Window = 0x2a

	data, err := json.Marshal(Snapshot(root, left))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["split"] != "vertical" {
		t.Fatalf("unexpected split %v", decoded["split"])
	}
	if _, ok := decoded["window"]; ok {
		t.Fatalf("internal frames should not carry a window field")
	}
	children, ok := decoded["children"].([]any)
	if !ok || len(children) != 2 {
		t.Fatalf("expected two children, got %v", decoded["children"])
	}
}

func TestWriteTree(t *testing.T) {
	l, root, _ := newTestLayout(t, 0)
	left, right := columns(t, l, root)
	l.SetNumber(right, 2)
	right.Window = 0

	var buf bytes.Buffer
	if err := Snapshot(root, left).WriteTree(&buf); err != nil {
		t.Fatalf("write tree: %v", err)
	}
	want := "1920x1080+0+0 horizontal 1/2\n" +
		"  * 960x1080+0+0 window=0x1\n" +
		"  960x1080+960+0 #2 void\n"
	if buf.String() != want {
		t.Fatalf("unexpected tree:\n%s\nwant:\n%s", buf.String(), want)
	}
}
