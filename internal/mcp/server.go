// Package mcp exposes the running daemon's layout and actions as MCP tools.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/frametile/internal/ipc"
)

const (
	ServerName    = "frametile"
	ServerVersion = "0.1.0"
)

// Daemon is the part of the IPC client the tools use.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	GetTree() (*ipc.TreeData, error)
	GetMonitors() (*ipc.MonitorsData, error)
	Do(action string) (*ipc.ActionData, error)
}

// Server is the MCP server for frametile.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
	logger    *slog.Logger
}

// NewServer creates an MCP server that forwards to daemon. A nil daemon
// means the IPC client for the current user's socket.
func NewServer(daemon Daemon, logger *slog.Logger) *Server {
	if daemon == nil {
		daemon = ipc.NewClient()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		daemon: daemon,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_layout",
		Description: "Show the frame tree of every display and the stash. Each display has an indented text tree (the focused frame is marked with *) and a flat list of its leaf frames with their window, number and geometry. Void frames hold no window.",
	}, s.handleGetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Summarize the daemon: display, frame, window, void and stash counts and the focused frame.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the displays known to the daemon with their full and usable geometry.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_actions",
		Description: "List the action strings accepted by run_action.",
	}, s.handleListActions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_action",
		Description: "Run a tiling action on the focused frame, exactly as a hotkey would. Returns whether the layout or focus changed; an action with nothing to do is not an error.",
	}, s.handleRunAction)
}
