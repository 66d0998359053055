package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/winpin/winpin/internal/runtimepath"
	"github.com/winpin/winpin/internal/tracker"
)

// StatusSource exposes the tracker snapshot to the IPC server.
type StatusSource interface {
	Status() tracker.Status
}

// Server answers control requests on the daemon's unix socket.
type Server struct {
	socketPath   string
	listener     net.Listener
	statuses     StatusSource
	targetTitle  string
	stopChan     chan<- struct{}
	startTime    time.Time
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server. A STOP request is forwarded to
// stopChan without blocking.
func NewServer(statuses StatusSource, targetTitle string, stopChan chan<- struct{}, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Remove a stale socket from a previous run.
	os.Remove(socketPath)

	return &Server{
		socketPath:  socketPath,
		statuses:    statuses,
		targetTitle: targetTitle,
		stopChan:    stopChan,
		startTime:   time.Now(),
		logger:      logger,
	}, nil
}

// Start begins listening for IPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// The socket carries daemon control; owner only.
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Error("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection reads one request line and writes one response line.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Error("IPC read error", "error", err)
		return
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.writeResponse(conn, errorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	s.writeResponse(conn, s.handleCommand(&req))
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.logger.Error("failed to send IPC response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandPing:
		resp, _ := okResponse(nil)
		return resp
	case CommandStop:
		return s.handleStop()
	default:
		return errorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleGetStatus returns the current tracker snapshot.
func (s *Server) handleGetStatus() *Response {
	st := s.statuses.Status()

	status := StatusData{
		DaemonRunning:  true,
		TargetID:       uint64(st.Target),
		TargetTitle:    s.targetTitle,
		Covered:        st.Covered,
		OverlayVisible: st.OverlayVisible,
		X:              st.X,
		Y:              st.Y,
		Positioned:     st.Positioned,
		Ticks:          st.Ticks,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
	}

	resp, _ := okResponse(status)
	return resp
}

// handleStop asks the daemon to shut down.
func (s *Server) handleStop() *Response {
	s.logger.Info("IPC: received STOP command")

	// Non-blocking: a second STOP while shutdown is underway is a no-op.
	select {
	case s.stopChan <- struct{}{}:
	default:
	}

	resp, _ := okResponse(nil)
	return resp
}

// Stop gracefully shuts down the IPC server.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
