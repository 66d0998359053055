//go:build windows

package overlay

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/winpin/winpin/internal/platform"
)

const overlayClassName = "winpinOverlay"

const (
	wsPopup          = 0x80000000
	wsExLayered      = 0x00080000
	wsExToolWindow   = 0x00000080
	wsExNoActivate   = 0x08000000
	wsExTopmost      = 0x00000008
	lwaAlpha         = 0x00000002
	swHide           = 0
	swShowNoActivate = 4
	swpNoSize        = 0x0001
	swpNoActivate    = 0x0010
	wmClose          = 0x0010
	wmDestroy        = 0x0002
)

// HWND_TOPMOST
var hwndTopmost = ^uintptr(0)

var (
	user32Overlay = windows.NewLazySystemDLL("user32.dll")
	gdi32         = windows.NewLazySystemDLL("gdi32.dll")

	procCreateSolidBrush           = gdi32.NewProc("CreateSolidBrush")
	procRegisterClassExW           = user32Overlay.NewProc("RegisterClassExW")
	procCreateWindowExW            = user32Overlay.NewProc("CreateWindowExW")
	procDefWindowProcW             = user32Overlay.NewProc("DefWindowProcW")
	procShowWindow                 = user32Overlay.NewProc("ShowWindow")
	procSetWindowPos               = user32Overlay.NewProc("SetWindowPos")
	procSetLayeredWindowAttributes = user32Overlay.NewProc("SetLayeredWindowAttributes")
	procPostMessageW               = user32Overlay.NewProc("PostMessageW")
	procPostQuitMessage            = user32Overlay.NewProc("PostQuitMessage")
	procGetMessageW                = user32Overlay.NewProc("GetMessageW")
	procTranslateMessage           = user32Overlay.NewProc("TranslateMessage")
	procDispatchMessageW           = user32Overlay.NewProc("DispatchMessageW")
)

type wndClassExW struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground uintptr
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type msgW struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// winSurface is a layered topmost tool window. WS_EX_NOACTIVATE keeps it
// out of the focus order and WS_EX_TOOLWINDOW keeps it off the taskbar.
// The window is owned by a dedicated OS thread that runs its message pump.
type winSurface struct {
	opts Options

	hwnd    uintptr
	created bool
}

// New builds the strip surface. The backend is unused here; user32 needs
// no shared connection.
func New(_ platform.Backend, opts Options) (Surface, error) {
	return &winSurface{opts: clampOptions(opts)}, nil
}

func (s *winSurface) SetVisible(visible bool) error {
	if !visible {
		if !s.created {
			return nil
		}
		procShowWindow.Call(s.hwnd, swHide)
		return nil
	}

	if err := s.ensureCreated(); err != nil {
		return err
	}
	procShowWindow.Call(s.hwnd, swShowNoActivate)
	return nil
}

func (s *winSurface) MoveTo(x, y int) error {
	if err := s.ensureCreated(); err != nil {
		return err
	}
	ret, _, err := procSetWindowPos.Call(
		s.hwnd,
		hwndTopmost,
		uintptr(x), uintptr(y),
		0, 0,
		swpNoSize|swpNoActivate,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos failed: %w", err)
	}
	return nil
}

func (s *winSurface) NativeHandle() platform.WindowID {
	return platform.WindowID(s.hwnd)
}

func (s *winSurface) Close() error {
	if !s.created {
		return nil
	}
	// DestroyWindow only works from the owning thread, so close via the
	// message pump instead.
	procPostMessageW.Call(s.hwnd, wmClose, 0, 0)
	s.hwnd = 0
	s.created = false
	return nil
}

// ensureCreated spawns the window thread on first use and waits for the
// native window to exist.
func (s *winSurface) ensureCreated() error {
	if s.created {
		return nil
	}

	errc := make(chan error, 1)
	go s.windowThread(errc)
	if err := <-errc; err != nil {
		return err
	}
	s.created = true
	return nil
}

// windowThread creates the window and pumps its messages until WM_DESTROY.
// Window ownership is per-thread in Win32, so the thread stays locked.
func (s *winSurface) windowThread(errc chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd, err := s.createWindow()
	if err != nil {
		errc <- err
		return
	}
	s.hwnd = hwnd
	errc <- nil

	var msg msgW
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 {
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
	}
}

// The class and its wndproc callback outlive every window in the process,
// so both register once; the background brush takes the color of the first
// surface.
var (
	overlayWndProcPtr = windows.NewCallback(overlayWndProc)

	overlayClassOnce sync.Once
	overlayClassErr  error
)

func registerOverlayClass(hInstance windows.Handle, color uint32) error {
	overlayClassOnce.Do(func() {
		className, err := windows.UTF16PtrFromString(overlayClassName)
		if err != nil {
			overlayClassErr = err
			return
		}

		// COLORREF is 0x00BBGGRR while Options.Color is 0xRRGGBB.
		colorref := (color&0xff)<<16 | (color & 0xff00) | (color >> 16 & 0xff)
		brush, _, _ := procCreateSolidBrush.Call(uintptr(colorref))

		wc := wndClassExW{
			lpfnWndProc:   overlayWndProcPtr,
			hInstance:     hInstance,
			hbrBackground: brush,
			lpszClassName: className,
		}
		wc.cbSize = uint32(unsafe.Sizeof(wc))

		if ret, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); ret == 0 {
			overlayClassErr = fmt.Errorf("RegisterClassExW failed: %w", err)
		}
	})
	return overlayClassErr
}

func (s *winSurface) createWindow() (uintptr, error) {
	hInstance, err := windows.GetModuleHandle(nil)
	if err != nil {
		return 0, fmt.Errorf("GetModuleHandle failed: %w", err)
	}

	if err := registerOverlayClass(hInstance, s.opts.Color); err != nil {
		return 0, err
	}

	className, err := windows.UTF16PtrFromString(overlayClassName)
	if err != nil {
		return 0, err
	}

	hwnd, _, err := procCreateWindowExW.Call(
		wsExLayered|wsExToolWindow|wsExNoActivate|wsExTopmost,
		uintptr(unsafe.Pointer(className)),
		0, // no title
		wsPopup,
		0, 0,
		uintptr(s.opts.Width), uintptr(s.opts.Height),
		0, 0,
		uintptr(hInstance),
		0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowExW failed: %w", err)
	}

	// A layered window stays invisible until its attributes are set once.
	procSetLayeredWindowAttributes.Call(hwnd, 0, 255, lwaAlpha)

	return hwnd, nil
}

func overlayWndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	if msg == wmDestroy {
		procPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := procDefWindowProcW.Call(hwnd, msg, wParam, lParam)
	return ret
}
