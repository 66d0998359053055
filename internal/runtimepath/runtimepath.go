// Package runtimepath resolves where the winpin control socket lives.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

const socketName = "winpin.sock"

// Dir returns the directory holding the control socket. $XDG_RUNTIME_DIR
// wins when set; otherwise /run/user/<uid> when it exists; otherwise a
// private directory under /tmp is created.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	if dir := fmt.Sprintf("/run/user/%d", uid); isDir(dir) {
		return dir, nil
	}

	dir := fmt.Sprintf("/tmp/winpin-runtime-%d", uid)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return dir, nil
}

// SocketPath returns the daemon control socket path under Dir.
func SocketPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, socketName), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
