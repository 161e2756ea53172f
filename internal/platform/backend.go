// Package platform hides the window system behind Backend so the tiler can
// run against X11 or an in-memory desktop.
package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of r.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Bounds Rect   `json:"bounds"`
	Usable Rect   `json:"usable"`
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID `json:"id"`
	Class  string   `json:"class,omitempty"`
	Title  string   `json:"title,omitempty"`
	Bounds Rect     `json:"bounds"`
	// Hidden is set for iconified windows.
	Hidden bool `json:"hidden,omitempty"`
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	ListWindowsOnDisplay(displayID int) ([]Window, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Minimize(windowID WindowID) error
	Activate(windowID WindowID) error
	Close(windowID WindowID) error
}

// DisplayAt returns the display whose bounds contain the point.
func DisplayAt(displays []Display, x, y int) (Display, bool) {
	for _, d := range displays {
		if d.Bounds.Contains(x, y) {
			return d, true
		}
	}
	return Display{}, false
}
