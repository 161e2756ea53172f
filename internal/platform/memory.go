package platform

import (
	"fmt"
	"sort"
	"sync"
)

// Call records one mutating request made to a MemoryBackend.
type Call struct {
	Op     string
	Window WindowID
	Bounds Rect
}

// MemoryBackend is an in-memory desktop. Windows are plain records, mutating
// requests are applied immediately and logged in Calls.
type MemoryBackend struct {
	mu       sync.Mutex
	displays []Display
	windows  map[WindowID]*Window
	active   WindowID
	nextID   WindowID
	calls    []Call
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates a desktop with the given displays. Usable
// defaults to Bounds.
func NewMemoryBackend(displays ...Display) *MemoryBackend {
	ds := make([]Display, len(displays))
	for i, d := range displays {
		if d.Usable == (Rect{}) {
			d.Usable = d.Bounds
		}
		ds[i] = d
	}
	return &MemoryBackend{
		displays: ds,
		windows:  make(map[WindowID]*Window),
		nextID:   0x400001,
	}
}

// SetDisplays replaces the display list, as after a RandR change.
func (m *MemoryBackend) SetDisplays(displays ...Display) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.displays = m.displays[:0]
	for _, d := range displays {
		if d.Usable == (Rect{}) {
			d.Usable = d.Bounds
		}
		m.displays = append(m.displays, d)
	}
}

// OpenWindow maps a new window centered at the given point and returns its
// id.
func (m *MemoryBackend) OpenWindow(class string, x, y int) WindowID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.windows[id] = &Window{
		ID:     id,
		Class:  class,
		Title:  fmt.Sprintf("%s-%d", class, id-0x400000),
		Bounds: Rect{X: x - 50, Y: y - 50, Width: 100, Height: 100},
	}
	m.active = id
	return id
}

// DestroyWindow unmaps a window as if its client exited.
func (m *MemoryBackend) DestroyWindow(id WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, id)
	if m.active == id {
		m.active = 0
	}
}

// Window returns a copy of a window record.
func (m *MemoryBackend) Window(id WindowID) (Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Calls returns the recorded requests in order.
func (m *MemoryBackend) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// ResetCalls clears the request log.
func (m *MemoryBackend) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MemoryBackend) Displays() ([]Display, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Display, len(m.displays))
	copy(out, m.displays)
	return out, nil
}

func (m *MemoryBackend) ActiveDisplay() (Display, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.displays) == 0 {
		return Display{}, fmt.Errorf("no displays")
	}
	if w, ok := m.windows[m.active]; ok {
		cx, cy := w.Bounds.Center()
		if d, ok := DisplayAt(m.displays, cx, cy); ok {
			return d, nil
		}
	}
	return m.displays[0], nil
}

func (m *MemoryBackend) ActiveWindow() (WindowID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, nil
}

func (m *MemoryBackend) ListWindowsOnDisplay(displayID int) ([]Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var target *Display
	for i := range m.displays {
		if m.displays[i].ID == displayID {
			target = &m.displays[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("display with id %d not found", displayID)
	}
	var out []Window
	for _, w := range m.windows {
		if target.Bounds.Contains(w.Bounds.Center()) {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryBackend) MoveResize(id WindowID, bounds Rect) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "move-resize", Window: id, Bounds: bounds})
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("window 0x%x not found", uint32(id))
	}
	w.Bounds = bounds
	return nil
}

func (m *MemoryBackend) Minimize(id WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "minimize", Window: id})
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("window 0x%x not found", uint32(id))
	}
	w.Hidden = true
	if m.active == id {
		m.active = 0
	}
	return nil
}

func (m *MemoryBackend) Activate(id WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "activate", Window: id})
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("window 0x%x not found", uint32(id))
	}
	w.Hidden = false
	m.active = id
	return nil
}

func (m *MemoryBackend) Close(id WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "close", Window: id})
	if _, ok := m.windows[id]; !ok {
		return fmt.Errorf("window 0x%x not found", uint32(id))
	}
	delete(m.windows, id)
	if m.active == id {
		m.active = 0
	}
	return nil
}
