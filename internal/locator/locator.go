// Package locator finds the target window by exact title match.
package locator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/winpin/winpin/internal/platform"
)

// ErrNotFound means the target window could not be located, either because
// no enumerated window matched the title or because enumeration itself
// failed.
var ErrNotFound = errors.New("window not found")

// Find scans top-level windows in enumeration order and returns the first
// visible one whose trimmed title equals title exactly. Windows whose
// visibility or title cannot be read are skipped rather than failing the
// whole scan. An enumeration failure also reports ErrNotFound, with the
// cause kept in the chain.
func Find(b platform.Backend, title string) (platform.WindowID, error) {
	ids, err := b.ListWindows()
	if err != nil {
		return 0, fmt.Errorf("%w: window enumeration failed: %w", ErrNotFound, err)
	}

	for _, id := range ids {
		visible, err := b.IsVisible(id)
		if err != nil || !visible {
			continue
		}

		t, err := b.Title(id)
		if err != nil {
			continue
		}

		if strings.TrimSpace(t) == title {
			return id, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrNotFound, title)
}
