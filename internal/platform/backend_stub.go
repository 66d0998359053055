//go:build !linux && !windows

package platform

import (
	"fmt"
	"runtime"
)

// New reports that no backend exists for this platform.
func New() (Backend, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}
