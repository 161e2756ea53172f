package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/frametile/internal/frame"
)

// boxStyle is a set of box drawing runes.
type boxStyle struct {
	h, v, tl, tr, bl, br rune
}

var (
	lightBox  = boxStyle{'─', '│', '┌', '┐', '└', '┘'}
	heavyBox  = boxStyle{'━', '┃', '┏', '┓', '┗', '┛'}
	dashedBox = boxStyle{'┄', '┆', '┌', '┐', '└', '┘'}
)

// labelFunc names the content of a leaf.
type labelFunc func(n frame.Node) string

// renderCanvas draws the leaves of root, scaled from area to a width by
// height character canvas. The focused frame is drawn heavy and voids
// dashed.
func renderCanvas(root frame.Node, area frame.Rect, width, height int, label labelFunc) []string {
	if width < 5 || height < 3 || area.Width <= 0 || area.Height <= 0 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	drawBorder(canvas, width, height)

	for _, leaf := range root.Leaves() {
		style := lightBox
		switch {
		case leaf.Focused:
			style = heavyBox
		case leaf.Window == 0:
			style = dashedBox
		}
		drawFrame(canvas, leaf, area, style, label(leaf))
	}

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawFrame(canvas [][]rune, n frame.Node, area frame.Rect, style boxStyle, label string) {
	canvasH := len(canvas)
	canvasW := len(canvas[0])
	innerW, innerH := canvasW-2, canvasH-2

	// Map the frame into the area inside the outer border.
	x1 := 1 + (n.Rect.X-area.X)*innerW/area.Width
	y1 := 1 + (n.Rect.Y-area.Y)*innerH/area.Height
	x2 := (n.Rect.X+n.Rect.Width-area.X)*innerW/area.Width
	y2 := (n.Rect.Y+n.Rect.Height-area.Y)*innerH/area.Height

	x1 = max(x1, 1)
	y1 = max(y1, 1)
	x2 = min(x2, canvasW-2)
	y2 = min(y2, canvasH-2)

	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = style.h
		canvas[y2][x] = style.h
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = style.v
		canvas[y][x2] = style.v
	}
	canvas[y1][x1] = style.tl
	canvas[y1][x2] = style.tr
	canvas[y2][x1] = style.bl
	canvas[y2][x2] = style.br

	lines := []string{label}
	if n.Number != 0 {
		lines = append(lines, fmt.Sprintf("#%d", n.Number))
	}
	centerY := (y1+y2)/2 - (len(lines)-1)/2
	for i, text := range lines {
		y := centerY + i
		if y <= y1 || y >= y2 {
			continue
		}
		runes := []rune(text)
		if room := x2 - x1 - 1; len(runes) > room {
			runes = runes[:max(room, 0)]
		}
		startX := (x1+x2)/2 - len(runes)/2
		for j, r := range runes {
			if x := startX + j; x > x1 && x < x2 {
				canvas[y][x] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	lines := make([]string, max(height, 0))
	empty := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
