//go:build linux

package overlay

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/winpin/winpin/internal/platform"
)

// x11Surface is a single override-redirect window. Override-redirect makes
// the window manager ignore it: no decorations, no focus stealing, no
// reparenting.
type x11Surface struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	opts Options

	window  xproto.Window
	created bool
	mapped  bool
}

// New builds the strip surface on the backend's X connection so both talk
// to the same display.
func New(b platform.Backend, opts Options) (Surface, error) {
	lb, ok := b.(*platform.LinuxBackend)
	if !ok {
		return nil, fmt.Errorf("overlay surface requires the X11 backend, got %T", b)
	}
	return &x11Surface{
		xu:   lb.XUtil(),
		root: lb.RootWindow(),
		opts: clampOptions(opts),
	}, nil
}

func (s *x11Surface) SetVisible(visible bool) error {
	if !visible {
		if !s.created || !s.mapped {
			return nil
		}
		xproto.UnmapWindow(s.xu.Conn(), s.window)
		s.mapped = false
		return nil
	}

	if err := s.ensureCreated(); err != nil {
		return err
	}
	xproto.MapWindow(s.xu.Conn(), s.window)
	s.mapped = true
	return nil
}

func (s *x11Surface) MoveTo(x, y int) error {
	if err := s.ensureCreated(); err != nil {
		return err
	}

	// Negative coordinates are valid here; the server reads the low 16 bits
	// as INT16.
	xproto.ConfigureWindow(
		s.xu.Conn(),
		s.window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(x),
			uint32(y),
			xproto.StackModeAbove,
		},
	)
	return nil
}

func (s *x11Surface) NativeHandle() platform.WindowID {
	return platform.WindowID(s.window)
}

func (s *x11Surface) Close() error {
	if !s.created {
		return nil
	}
	xproto.DestroyWindow(s.xu.Conn(), s.window)
	s.window = 0
	s.created = false
	s.mapped = false
	return nil
}

// ensureCreated creates the strip window on first use.
func (s *x11Surface) ensureCreated() error {
	if s.created {
		return nil
	}

	conn := s.xu.Conn()
	screen := s.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return fmt.Errorf("failed to allocate overlay window id: %w", err)
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		s.root,
		0, 0,
		uint16(s.opts.Width), uint16(s.opts.Height),
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwBackPixel,
		// Value list order follows the bit positions of the mask (low to
		// high). CwBackPixel comes before CwOverrideRedirect, so it must
		// be first.
		[]uint32{s.opts.Color, 1},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to create overlay window: %w", err)
	}

	s.window = wid
	s.created = true
	return nil
}
