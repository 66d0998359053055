package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/winpin/winpin/internal/runtimepath"
)

// Client issues commands to a running daemon over its control socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep the constructor non-failing; roundTrip surfaces connection
		// errors with the daemon hint.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// roundTrip sends one command and reads the single-line response. None of
// the winpin commands carry a payload.
func (c *Client) roundTrip(cmd CommandType) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	// Encode appends the newline that frames a request.
	if err := json.NewEncoder(conn).Encode(Request{Command: cmd}); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", cmd, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status != statusOK {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

// GetStatus retrieves the daemon's tracker snapshot.
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.roundTrip(CommandGetStatus)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// Stop asks the daemon to shut down.
func (c *Client) Stop() error {
	_, err := c.roundTrip(CommandStop)
	return err
}

// Ping checks whether a daemon is answering on the socket.
func (c *Client) Ping() error {
	_, err := c.roundTrip(CommandPing)
	return err
}
