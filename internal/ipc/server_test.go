package ipc

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/winpin/winpin/internal/tracker"
)

type stubStatusSource struct {
	st tracker.Status
}

func (s stubStatusSource) Status() tracker.Status { return s.st }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startTestServer(t *testing.T, src StatusSource, stopChan chan struct{}) *Server {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	srv, err := NewServer(src, "Status Board", stopChan, discardLogger())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(srv.Stop)
	return srv
}

func TestStatusRoundTrip(t *testing.T) {
	src := stubStatusSource{st: tracker.Status{
		Target:         42,
		Covered:        false,
		OverlayVisible: true,
		X:              -317,
		Y:              57,
		Positioned:     true,
		Ticks:          128,
	}}
	startTestServer(t, src, make(chan struct{}, 1))

	status, err := NewClient().GetStatus()
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}

	if !status.DaemonRunning {
		t.Error("daemon_running = false, want true")
	}
	if status.TargetID != 42 {
		t.Errorf("target_id = %d, want 42", status.TargetID)
	}
	if status.TargetTitle != "Status Board" {
		t.Errorf("target_title = %q, want %q", status.TargetTitle, "Status Board")
	}
	if status.Covered {
		t.Error("covered = true, want false")
	}
	if !status.OverlayVisible {
		t.Error("overlay_visible = false, want true")
	}
	if status.X != -317 || status.Y != 57 {
		t.Errorf("position = (%d, %d), want (-317, 57)", status.X, status.Y)
	}
	if status.Ticks != 128 {
		t.Errorf("ticks = %d, want 128", status.Ticks)
	}
}

func TestPing(t *testing.T) {
	startTestServer(t, stubStatusSource{}, make(chan struct{}, 1))

	if err := NewClient().Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestStopForwardsToChannel(t *testing.T) {
	stopChan := make(chan struct{}, 1)
	startTestServer(t, stubStatusSource{}, stopChan)

	if err := NewClient().Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	select {
	case <-stopChan:
	case <-time.After(time.Second):
		t.Fatal("STOP command never reached the stop channel")
	}
}

func TestUnknownCommand(t *testing.T) {
	srv := startTestServer(t, stubStatusSource{}, make(chan struct{}, 1))

	conn, err := net.Dial("unix", srv.socketPath)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(`{"command":"BOGUS"}` + "\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if resp.Status != "ERROR" {
		t.Errorf("status = %q, want ERROR", resp.Status)
	}
}

func TestClientWithoutDaemon(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	if err := NewClient().Ping(); err == nil {
		t.Fatal("Ping succeeded with no daemon listening")
	}
}
