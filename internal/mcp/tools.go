package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/winpin/winpin/internal/locator"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	ids, err := s.backend.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	windows := make([]WindowInfo, 0, len(ids))
	for _, id := range ids {
		visible, err := s.backend.IsVisible(id)
		if err != nil {
			continue
		}
		if !visible && !args.IncludeHidden {
			continue
		}

		title, err := s.backend.Title(id)
		if err != nil {
			title = ""
		}

		windows = append(windows, WindowInfo{
			ID:      uint64(id),
			Title:   strings.TrimSpace(title),
			Visible: visible,
		})
	}

	return nil, ListWindowsOutput{Windows: windows}, nil
}

func (s *Server) handleFindWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FindWindowInput) (*mcpsdk.CallToolResult, FindWindowOutput, error) {
	if strings.TrimSpace(args.Title) == "" {
		return nil, FindWindowOutput{}, fmt.Errorf("title is required")
	}

	id, err := locator.Find(s.backend, args.Title)
	if err != nil {
		if errors.Is(err, locator.ErrNotFound) {
			return nil, FindWindowOutput{Found: false}, nil
		}
		return nil, FindWindowOutput{}, err
	}

	return nil, FindWindowOutput{Found: true, ID: uint64(id)}, nil
}

func (s *Server) handleTrackerStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ TrackerStatusInput) (*mcpsdk.CallToolResult, TrackerStatusOutput, error) {
	status, err := s.ipcClient.GetStatus()
	if err != nil {
		// No reachable daemon is an answer, not a tool failure.
		return nil, TrackerStatusOutput{DaemonRunning: false}, nil
	}

	return nil, TrackerStatusOutput{
		DaemonRunning:  status.DaemonRunning,
		TargetID:       status.TargetID,
		TargetTitle:    status.TargetTitle,
		Covered:        status.Covered,
		OverlayVisible: status.OverlayVisible,
		X:              status.X,
		Y:              status.Y,
		Positioned:     status.Positioned,
		Ticks:          status.Ticks,
		UptimeSeconds:  status.UptimeSeconds,
	}, nil
}
