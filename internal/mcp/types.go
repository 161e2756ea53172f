package mcp

// GetLayoutInput is the input for the get_layout tool.
type GetLayoutInput struct {
	Display string `json:"display,omitempty" jsonschema:"Only report the display with this name (default: all displays)"`
}

// FrameInfo describes one leaf frame.
type FrameInfo struct {
	Number  int    `json:"number,omitempty"`
	Window  uint32 `json:"window,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Void    bool   `json:"void"`
	Focused bool   `json:"focused,omitempty"`
}

// DisplayLayout is the frame tree of one display.
type DisplayLayout struct {
	Display string      `json:"display"`
	Tree    string      `json:"tree"`
	Frames  []FrameInfo `json:"frames"`
}

// GetLayoutOutput is the output for the get_layout tool.
type GetLayoutOutput struct {
	Displays []DisplayLayout `json:"displays"`
	Stashed  []FrameInfo     `json:"stashed"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Displays      int    `json:"displays"`
	Frames        int    `json:"frames"`
	Windows       int    `json:"windows"`
	Voids         int    `json:"voids"`
	Stashed       int    `json:"stashed"`
	FocusedWindow uint32 `json:"focused_window,omitempty"`
	FocusedNumber int    `json:"focused_number,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes a display and the area frames are laid out in.
type MonitorInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	UsableX      int    `json:"usable_x"`
	UsableY      int    `json:"usable_y"`
	UsableWidth  int    `json:"usable_width"`
	UsableHeight int    `json:"usable_height"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// RunActionInput is the input for the run_action tool.
type RunActionInput struct {
	Action string `json:"action" jsonschema:"required,Action to run on the focused frame, e.g. focus-left, split-vertical, bump-right 80, focus-number 2"`
}

// RunActionOutput is the output for the run_action tool.
type RunActionOutput struct {
	Action  string `json:"action"`
	Changed bool   `json:"changed"`
}

// ListActionsInput is the input for the list_actions tool.
type ListActionsInput struct{}

// ListActionsOutput is the output for the list_actions tool.
type ListActionsOutput struct {
	Actions []string `json:"actions"`
}
