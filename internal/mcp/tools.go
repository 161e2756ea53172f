package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/tiling"
)

func (s *Server) handleGetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args GetLayoutInput) (*mcpsdk.CallToolResult, GetLayoutOutput, error) {
	tree, err := s.daemon.GetTree()
	if err != nil {
		return nil, GetLayoutOutput{}, err
	}

	out := GetLayoutOutput{
		Displays: []DisplayLayout{},
		Stashed:  []FrameInfo{},
	}
	for _, d := range tree.Displays {
		if args.Display != "" && !strings.EqualFold(args.Display, d.Display.Name) {
			continue
		}
		var b strings.Builder
		if err := d.Root.WriteTree(&b); err != nil {
			return nil, GetLayoutOutput{}, err
		}
		out.Displays = append(out.Displays, DisplayLayout{
			Display: d.Display.Name,
			Tree:    b.String(),
			Frames:  frameInfos(d.Root),
		})
	}
	if args.Display != "" && len(out.Displays) == 0 {
		return nil, GetLayoutOutput{}, fmt.Errorf("no display named %q", args.Display)
	}
	for _, entry := range tree.Stash {
		out.Stashed = append(out.Stashed, frameInfos(entry)...)
	}

	s.logger.Debug("get_layout", "displays", len(out.Displays), "stashed", len(out.Stashed))
	return nil, out, nil
}

func frameInfos(n frame.Node) []FrameInfo {
	leaves := n.Leaves()
	out := make([]FrameInfo, 0, len(leaves))
	for _, leaf := range leaves {
		out = append(out, FrameInfo{
			Number:  leaf.Number,
			Window:  uint32(leaf.Window),
			X:       leaf.Rect.X,
			Y:       leaf.Rect.Y,
			Width:   leaf.Rect.Width,
			Height:  leaf.Rect.Height,
			Void:    leaf.Window == 0,
			Focused: leaf.Focused,
		})
	}
	return out
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		Displays:      status.Displays,
		Frames:        status.Frames,
		Windows:       status.Windows,
		Voids:         status.Voids,
		Stashed:       status.Stashed,
		FocusedWindow: uint32(status.FocusedWindow),
		FocusedNumber: status.FocusedNumber,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.daemon.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}

	out := ListMonitorsOutput{Monitors: make([]MonitorInfo, 0, len(data.Monitors))}
	for _, m := range data.Monitors {
		out.Monitors = append(out.Monitors, MonitorInfo{
			ID:           m.ID,
			Name:         m.Name,
			X:            m.X,
			Y:            m.Y,
			Width:        m.Width,
			Height:       m.Height,
			UsableX:      m.Usable.X,
			UsableY:      m.Usable.Y,
			UsableWidth:  m.Usable.Width,
			UsableHeight: m.Usable.Height,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListActions(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListActionsInput) (*mcpsdk.CallToolResult, ListActionsOutput, error) {
	return nil, ListActionsOutput{Actions: append([]string(nil), tiling.ActionNames...)}, nil
}

func (s *Server) handleRunAction(_ context.Context, _ *mcpsdk.CallToolRequest, args RunActionInput) (*mcpsdk.CallToolResult, RunActionOutput, error) {
	action, err := tiling.ParseAction(args.Action)
	if err != nil {
		return nil, RunActionOutput{}, err
	}

	data, err := s.daemon.Do(action.String())
	if err != nil {
		return nil, RunActionOutput{}, err
	}
	s.logger.Info("run_action", "action", data.Action, "changed", data.Changed)
	return nil, RunActionOutput{Action: data.Action, Changed: data.Changed}, nil
}
