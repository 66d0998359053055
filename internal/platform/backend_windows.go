//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// titleBufferLen bounds GetWindowTextW reads; longer titles are truncated.
const titleBufferLen = 512

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows         = user32.NewProc("EnumWindows")
	procIsWindowVisible     = user32.NewProc("IsWindowVisible")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procIsIconic            = user32.NewProc("IsIconic")
)

// WindowsBackend answers window queries through user32.
type WindowsBackend struct{}

var _ Backend = (*WindowsBackend)(nil)

// New returns the Windows backend.
func New() (Backend, error) {
	return &WindowsBackend{}, nil
}

// Close is a no-op; user32 needs no teardown.
func (b *WindowsBackend) Close() error { return nil }

// enumCallback collects handles through the lparam slice pointer. Callback
// registrations are permanent for the process, so it is created once rather
// than per call.
var enumCallback = windows.NewCallback(func(hwnd, lparam uintptr) uintptr {
	ids := (*[]WindowID)(unsafe.Pointer(lparam))
	*ids = append(*ids, WindowID(hwnd))
	return 1
})

// ListWindows enumerates all top-level windows in Z order.
func (b *WindowsBackend) ListWindows() ([]WindowID, error) {
	var ids []WindowID
	ret, _, err := procEnumWindows.Call(enumCallback, uintptr(unsafe.Pointer(&ids)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	return ids, nil
}

// IsVisible reports the WS_VISIBLE style bit.
func (b *WindowsBackend) IsVisible(id WindowID) (bool, error) {
	ret, _, _ := procIsWindowVisible.Call(uintptr(id))
	return ret != 0, nil
}

// Title reads up to titleBufferLen UTF-16 units of the window text.
// A zero-length result is an empty title; Win32 does not distinguish
// that from a read failure here.
func (b *WindowsBackend) Title(id WindowID) (string, error) {
	buf := make([]uint16, titleBufferLen)
	ret, _, _ := procGetWindowTextW.Call(
		uintptr(id),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if ret == 0 {
		return "", nil
	}
	return windows.UTF16ToString(buf), nil
}

// WindowRect returns the window's outer rectangle including decorations.
func (b *WindowsBackend) WindowRect(id WindowID) (Rect, error) {
	var r windows.Rect
	ret, _, err := procGetWindowRect.Call(uintptr(id), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Rect{}, fmt.Errorf("GetWindowRect failed for window %#x: %w", uintptr(id), err)
	}
	return Rect{
		Left:   int(r.Left),
		Top:    int(r.Top),
		Right:  int(r.Right),
		Bottom: int(r.Bottom),
	}, nil
}

// ForegroundWindow returns the focused window, zero during focus handoff.
func (b *WindowsBackend) ForegroundWindow() (WindowID, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return WindowID(hwnd), nil
}

// IsMinimized reports whether the window is iconified.
func (b *WindowsBackend) IsMinimized(id WindowID) (bool, error) {
	ret, _, _ := procIsIconic.Call(uintptr(id))
	return ret != 0, nil
}
