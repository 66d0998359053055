package platform

import "errors"

// WindowID is a platform-neutral window identifier. Zero means "no window".
type WindowID uintptr

// Rect describes a window rectangle by its edges in absolute desktop pixel
// coordinates. Right >= Left and Bottom >= Top by OS contract.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Offset is a fixed anchor offset relative to a window's top-right corner.
type Offset struct {
	DX int
	DY int
}

// Window pairs a window ID with its trimmed title for listing surfaces.
type Window struct {
	ID    WindowID
	Title string
}

// ErrUnsupported is returned by New on platforms without a backend.
var ErrUnsupported = errors.New("window system not supported on this platform")

// Backend abstracts the window-system queries the tracker depends on.
// Every query is independently fallible; callers treat failures
// conservatively rather than aborting.
type Backend interface {
	// ListWindows returns all top-level windows in OS-defined order,
	// including invisible ones.
	ListWindows() ([]WindowID, error)

	// IsVisible reports the OS visibility flag (not occlusion).
	IsVisible(id WindowID) (bool, error)

	// Title returns the window title. Reads are bounded; overlong titles
	// come back truncated.
	Title(id WindowID) (string, error)

	// WindowRect returns the window's outer rectangle in desktop coordinates.
	WindowRect(id WindowID) (Rect, error)

	// ForegroundWindow returns the currently focused top-level window.
	ForegroundWindow() (WindowID, error)

	// IsMinimized reports whether the window is iconified.
	IsMinimized(id WindowID) (bool, error)

	// Close releases the backend's OS connection.
	Close() error
}
