//go:build !linux && !windows

package overlay

import (
	"fmt"
	"runtime"

	"github.com/winpin/winpin/internal/platform"
)

// New reports that no overlay surface exists for this platform.
func New(_ platform.Backend, _ Options) (Surface, error) {
	return nil, fmt.Errorf("%w: %s", platform.ErrUnsupported, runtime.GOOS)
}
