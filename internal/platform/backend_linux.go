//go:build linux

package platform

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// LinuxBackend answers window queries over an X11 connection.
type LinuxBackend struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var _ Backend = (*LinuxBackend)(nil)

// New connects to the X server and returns the Linux backend.
func New() (Backend, error) {
	return NewLinuxBackend()
}

// NewLinuxBackend opens a fresh X11 connection.
func NewLinuxBackend() (*LinuxBackend, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{xu: xu, root: xu.RootWin()}, nil
}

// Close disconnects from the X server.
func (b *LinuxBackend) Close() error {
	if b != nil && b.xu != nil {
		b.xu.Conn().Close()
	}
	return nil
}

// XUtil returns the underlying xgbutil connection for X11-specific callers.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil {
		return nil
	}
	return b.xu
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil {
		return 0
	}
	return b.root
}

// ListWindows returns the window manager's client list in stacking-age order.
func (b *LinuxBackend) ListWindows() ([]WindowID, error) {
	xu, err := b.util()
	if err != nil {
		return nil, err
	}

	clients, err := ewmh.ClientListGet(xu)
	if err != nil {
		return nil, fmt.Errorf("failed to read client list: %w", err)
	}

	ids := make([]WindowID, 0, len(clients))
	for _, windowID := range clients {
		ids = append(ids, WindowID(windowID))
	}
	return ids, nil
}

// IsVisible reports whether the window is mapped and viewable.
func (b *LinuxBackend) IsVisible(id WindowID) (bool, error) {
	xu, err := b.util()
	if err != nil {
		return false, err
	}

	attrs, err := xproto.GetWindowAttributes(xu.Conn(), xproto.Window(id)).Reply()
	if err != nil {
		return false, err
	}
	return attrs.MapState == xproto.MapStateViewable, nil
}

// Title returns the window title, preferring _NET_WM_NAME over WM_NAME.
func (b *LinuxBackend) Title(id WindowID) (string, error) {
	xu, err := b.util()
	if err != nil {
		return "", err
	}

	title, ewmhErr := ewmh.WmNameGet(xu, xproto.Window(id))
	if ewmhErr == nil && strings.TrimSpace(title) != "" {
		return title, nil
	}

	title, icccmErr := icccm.WmNameGet(xu, xproto.Window(id))
	if icccmErr == nil {
		return title, nil
	}
	if ewmhErr == nil {
		// _NET_WM_NAME was readable but empty; an empty title is valid.
		return "", nil
	}
	return "", icccmErr
}

// WindowRect returns the window's rectangle translated to root coordinates.
func (b *LinuxBackend) WindowRect(id WindowID) (Rect, error) {
	xu, err := b.util()
	if err != nil {
		return Rect{}, err
	}

	geom, err := xproto.GetGeometry(xu.Conn(), xproto.Drawable(id)).Reply()
	if err != nil {
		return Rect{}, err
	}

	translate, err := xproto.TranslateCoordinates(
		xu.Conn(),
		xproto.Window(id),
		b.root,
		0, 0,
	).Reply()
	if err != nil {
		return Rect{}, err
	}

	left := int(translate.DstX)
	top := int(translate.DstY)
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + int(geom.Width),
		Bottom: top + int(geom.Height),
	}, nil
}

// ForegroundWindow returns _NET_ACTIVE_WINDOW.
func (b *LinuxBackend) ForegroundWindow() (WindowID, error) {
	xu, err := b.util()
	if err != nil {
		return 0, err
	}

	active, err := ewmh.ActiveWindowGet(xu)
	if err != nil {
		return 0, err
	}
	return WindowID(active), nil
}

// IsMinimized reports _NET_WM_STATE_HIDDEN, falling back to the ICCCM
// iconic state for windows whose manager does not publish EWMH state.
func (b *LinuxBackend) IsMinimized(id WindowID) (bool, error) {
	xu, err := b.util()
	if err != nil {
		return false, err
	}

	states, ewmhErr := ewmh.WmStateGet(xu, xproto.Window(id))
	if ewmhErr == nil {
		for _, state := range states {
			if state == "_NET_WM_STATE_HIDDEN" {
				return true, nil
			}
		}
		return false, nil
	}

	wmState, icccmErr := icccm.WmStateGet(xu, xproto.Window(id))
	if icccmErr != nil {
		return false, icccmErr
	}
	return wmState.State == icccm.StateIconic, nil
}

func (b *LinuxBackend) util() (*xgbutil.XUtil, error) {
	if b == nil || b.xu == nil {
		return nil, fmt.Errorf("x11 connection is not open")
	}
	return b.xu, nil
}
