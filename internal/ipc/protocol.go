package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType names a daemon control command.
type CommandType string

const (
	CommandGetStatus CommandType = "GET_STATUS"
	CommandPing      CommandType = "PING"
	CommandStop      CommandType = "STOP"
)

// Response status values.
const (
	statusOK    = "OK"
	statusError = "ERROR"
)

// Request is one client command, framed as a single JSON line. Payload is
// reserved; none of the current commands carry one.
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is the single-line reply to a Request.
type Response struct {
	Status string          `json:"status"` // statusOK or statusError
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is the GET_STATUS reply body: the tracker snapshot plus the
// daemon's identity.
type StatusData struct {
	DaemonRunning  bool   `json:"daemon_running"`
	TargetID       uint64 `json:"target_id"`
	TargetTitle    string `json:"target_title"`
	Covered        bool   `json:"covered"`
	OverlayVisible bool   `json:"overlay_visible"`
	X              int    `json:"x"`
	Y              int    `json:"y"`
	Positioned     bool   `json:"positioned"`
	Ticks          uint64 `json:"ticks"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// okResponse builds a success response, marshaling data when present.
func okResponse(data any) (*Response, error) {
	resp := &Response{Status: statusOK}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		resp.Data = b
	}
	return resp, nil
}

// errorResponse builds a failure response.
func errorResponse(msg string) *Response {
	return &Response{Status: statusError, Error: msg}
}
