// Package mcp exposes read-only window queries and daemon status as MCP
// tools over stdio.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/winpin/winpin/internal/ipc"
	"github.com/winpin/winpin/internal/platform"
)

const (
	ServerName    = "winpin"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for window lookup and tracker introspection.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   platform.Backend
	ipcClient *ipc.Client
}

// NewServer creates a new MCP server over the given window backend.
func NewServer(backend platform.Backend) *Server {
	s := &Server{
		backend:   backend,
		ipcClient: ipc.NewClient(),
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
		Name:        "list_windows",
		Description: "List top-level windows with their IDs and trimmed titles. Hidden windows are excluded unless include_hidden is set.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "find_window",
		Description: "Find the first visible top-level window whose trimmed title matches the given title exactly. Reports found=false when no window matches.",
	}, s.handleFindWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "tracker_status",
		Description: "Report the running winpin daemon's tracker state: target, covered flag, overlay visibility and position. Reports daemon_running=false when no daemon is reachable.",
	}, s.handleTrackerStatus)
}
