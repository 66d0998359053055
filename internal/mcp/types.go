package mcp

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	IncludeHidden bool `json:"include_hidden,omitempty" jsonschema:"When true, include windows that are not currently visible"`
}

// WindowInfo describes a single top-level window.
type WindowInfo struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Visible bool   `json:"visible"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// FindWindowInput is the input for the find_window tool.
type FindWindowInput struct {
	Title string `json:"title" jsonschema:"required,Exact window title to match after trimming surrounding whitespace"`
}

// FindWindowOutput is the output for the find_window tool.
type FindWindowOutput struct {
	Found bool   `json:"found"`
	ID    uint64 `json:"id,omitempty"`
}

// TrackerStatusInput is the input for the tracker_status tool.
type TrackerStatusInput struct{}

// TrackerStatusOutput is the output for the tracker_status tool.
type TrackerStatusOutput struct {
	DaemonRunning  bool   `json:"daemon_running"`
	TargetID       uint64 `json:"target_id,omitempty"`
	TargetTitle    string `json:"target_title,omitempty"`
	Covered        bool   `json:"covered,omitempty"`
	OverlayVisible bool   `json:"overlay_visible,omitempty"`
	X              int    `json:"x,omitempty"`
	Y              int    `json:"y,omitempty"`
	Positioned     bool   `json:"positioned,omitempty"`
	Ticks          uint64 `json:"ticks,omitempty"`
	UptimeSeconds  int64  `json:"uptime_seconds,omitempty"`
}
