// Package overlay presents the tracked strip as a small borderless window
// that stays above other windows and never takes focus.
package overlay

import "github.com/winpin/winpin/internal/platform"

// Options sets the strip geometry and fill color (0xRRGGBB).
type Options struct {
	Width  int
	Height int
	Color  uint32
}

// Surface is one overlay strip. The native window is created lazily on
// first use; NativeHandle stays zero until then.
type Surface interface {
	// SetVisible shows or hides the strip without moving it.
	SetVisible(visible bool) error

	// MoveTo places the strip's top-left corner at absolute desktop
	// coordinates and raises it above other windows.
	MoveTo(x, y int) error

	// NativeHandle returns the strip's OS window handle, zero while the
	// strip is unrealized.
	NativeHandle() platform.WindowID

	// Close destroys the native window if one was created.
	Close() error
}

func clampOptions(opts Options) Options {
	if opts.Width < 1 {
		opts.Width = 1
	}
	if opts.Height < 1 {
		opts.Height = 1
	}
	return opts
}
