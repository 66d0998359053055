package locator

import (
	"errors"
	"testing"

	"github.com/winpin/winpin/internal/platform"
)

type fakeWindow struct {
	id         platform.WindowID
	title      string
	visible    bool
	titleErr   error
	visibleErr error
}

type fakeBackend struct {
	windows []fakeWindow
	listErr error
}

func (f *fakeBackend) ListWindows() ([]platform.WindowID, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]platform.WindowID, 0, len(f.windows))
	for _, w := range f.windows {
		ids = append(ids, w.id)
	}
	return ids, nil
}

func (f *fakeBackend) lookup(id platform.WindowID) *fakeWindow {
	for i := range f.windows {
		if f.windows[i].id == id {
			return &f.windows[i]
		}
	}
	return nil
}

func (f *fakeBackend) IsVisible(id platform.WindowID) (bool, error) {
	w := f.lookup(id)
	if w == nil {
		return false, errors.New("no such window")
	}
	if w.visibleErr != nil {
		return false, w.visibleErr
	}
	return w.visible, nil
}

func (f *fakeBackend) Title(id platform.WindowID) (string, error) {
	w := f.lookup(id)
	if w == nil {
		return "", errors.New("no such window")
	}
	if w.titleErr != nil {
		return "", w.titleErr
	}
	return w.title, nil
}

func (f *fakeBackend) WindowRect(id platform.WindowID) (platform.Rect, error) {
	return platform.Rect{}, nil
}

func (f *fakeBackend) ForegroundWindow() (platform.WindowID, error) {
	return 0, nil
}

func (f *fakeBackend) IsMinimized(id platform.WindowID) (bool, error) {
	return false, nil
}

func (f *fakeBackend) Close() error { return nil }

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		windows []fakeWindow
		title   string
		want    platform.WindowID
		wantErr bool
	}{
		{
			name: "exact match",
			windows: []fakeWindow{
				{id: 1, title: "Editor", visible: true},
				{id: 2, title: "Status Board", visible: true},
			},
			title: "Status Board",
			want:  2,
		},
		{
			name: "first match wins in enumeration order",
			windows: []fakeWindow{
				{id: 10, title: "Status Board", visible: true},
				{id: 20, title: "Status Board", visible: true},
			},
			title: "Status Board",
			want:  10,
		},
		{
			name: "substring does not match",
			windows: []fakeWindow{
				{id: 1, title: "Status Board - tmux", visible: true},
			},
			title:   "Status Board",
			wantErr: true,
		},
		{
			name: "match is case sensitive",
			windows: []fakeWindow{
				{id: 1, title: "status board", visible: true},
			},
			title:   "Status Board",
			wantErr: true,
		},
		{
			name: "title whitespace is trimmed before comparing",
			windows: []fakeWindow{
				{id: 7, title: "  Status Board\t", visible: true},
			},
			title: "Status Board",
			want:  7,
		},
		{
			name: "hidden window is skipped",
			windows: []fakeWindow{
				{id: 1, title: "Status Board", visible: false},
				{id: 2, title: "Status Board", visible: true},
			},
			title: "Status Board",
			want:  2,
		},
		{
			name: "window with unreadable visibility is skipped",
			windows: []fakeWindow{
				{id: 1, title: "Status Board", visible: true, visibleErr: errors.New("query failed")},
				{id: 2, title: "Status Board", visible: true},
			},
			title: "Status Board",
			want:  2,
		},
		{
			name: "window with unreadable title is skipped",
			windows: []fakeWindow{
				{id: 1, visible: true, titleErr: errors.New("query failed")},
				{id: 2, title: "Status Board", visible: true},
			},
			title: "Status Board",
			want:  2,
		},
		{
			name:    "no windows",
			windows: nil,
			title:   "Status Board",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{windows: tt.windows}
			got, err := Find(b, tt.title)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Find(%q) succeeded with id %d, want error", tt.title, got)
				}
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Find(%q) error = %v, want ErrNotFound", tt.title, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find(%q) failed: %v", tt.title, err)
			}
			if got != tt.want {
				t.Errorf("Find(%q) = %d, want %d", tt.title, got, tt.want)
			}
		})
	}
}

func TestFindEnumerationFailure(t *testing.T) {
	cause := errors.New("display gone")
	b := &fakeBackend{listErr: cause}

	_, err := Find(b, "Status Board")
	if err == nil {
		t.Fatal("Find succeeded, want enumeration error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Find error = %v, want it to report ErrNotFound", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Find error = %v, want it to wrap %v", err, cause)
	}
}
