package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Rect is a rectangle in root window coordinates.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// intersect returns the overlap of r and o; zero sized when they are apart.
func (r Rect) intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds Rect
	// WorkArea is Bounds minus the struts of docks and panels.
	WorkArea Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		bounds := Rect{X: int(info.X), Y: int(info.Y), Width: int(info.Width), Height: int(info.Height)}
		monitors = append(monitors, Monitor{ID: i, Name: name, Bounds: bounds, WorkArea: bounds})
	}

	c.applyStruts(monitors)
	return monitors, nil
}

// GetActiveMonitor returns the monitor holding the active window, else the
// one under the pointer, else the first one.
func (c *Connection) GetActiveMonitor() (Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("no monitors found")
	}

	if active, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && active != 0 {
		if x, y, w, h, ok := c.WindowGeometry(active); ok {
			if m := monitorAt(monitors, x+w/2, y+h/2); m != nil {
				return *m, nil
			}
		}
	}
	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		if m := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); m != nil {
			return *m, nil
		}
	}
	return monitors[0], nil
}

func monitorAt(monitors []Monitor, x, y int) *Monitor {
	for i := range monitors {
		if monitors[i].Bounds.contains(x, y) {
			return &monitors[i]
		}
	}
	return nil
}

type struts struct {
	left, right, top, bottom int
}

// applyStruts shrinks the work area of every monitor by the dock struts
// that overlap it.
func (c *Connection) applyStruts(monitors []Monitor) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return
	}
	rootW, rootH := int(rootGeom.Width), int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return
	}

	acc := make([]struts, len(monitors))
	for _, id := range clients {
		if !c.isDock(id) {
			continue
		}
		sp, err := ewmh.WmStrutPartialGet(c.XUtil, id)
		if err != nil {
			// Some docks only set _NET_WM_STRUT (no partial ranges).
			s, err := ewmh.WmStrutGet(c.XUtil, id)
			if err != nil {
				continue
			}
			sp = &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftEndY: uint(rootH - 1), RightEndY: uint(rootH - 1),
				TopEndX: uint(rootW - 1), BottomEndX: uint(rootW - 1),
			}
		}
		for i := range monitors {
			accumulateStruts(monitors[i].Bounds, rootW, rootH, sp, &acc[i])
		}
	}

	for i := range monitors {
		s := acc[i]
		wa := monitors[i].Bounds
		wa.X += s.left
		wa.Y += s.top
		wa.Width = max(1, wa.Width-s.left-s.right)
		wa.Height = max(1, wa.Height-s.top-s.bottom)
		monitors[i].WorkArea = wa
	}
}

func (c *Connection) isDock(id xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, id)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

func accumulateStruts(mon Rect, rootW, rootH int, sp *ewmh.WmStrutPartial, acc *struts) {
	if sp.Top > 0 {
		r := Rect{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) + 1 - int(sp.TopStartX), Height: int(sp.Top)}
		acc.top = max(acc.top, mon.intersect(r).Height)
	}
	if sp.Bottom > 0 {
		r := Rect{X: int(sp.BottomStartX), Y: rootH - int(sp.Bottom), Width: int(sp.BottomEndX) + 1 - int(sp.BottomStartX), Height: int(sp.Bottom)}
		acc.bottom = max(acc.bottom, mon.intersect(r).Height)
	}
	if sp.Left > 0 {
		r := Rect{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) + 1 - int(sp.LeftStartY)}
		acc.left = max(acc.left, mon.intersect(r).Width)
	}
	if sp.Right > 0 {
		r := Rect{X: rootW - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) + 1 - int(sp.RightStartY)}
		acc.right = max(acc.right, mon.intersect(r).Width)
	}
}
