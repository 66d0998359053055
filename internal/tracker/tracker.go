// Package tracker keeps the overlay strip glued to the target window and
// visible only while the target is plausibly front-most.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/winpin/winpin/internal/overlay"
	"github.com/winpin/winpin/internal/platform"
)

// DefaultInterval is the poll period used when Config.Interval is unset.
const DefaultInterval = 10 * time.Millisecond

// Config holds configuration for the tracker.
type Config struct {
	Target   platform.WindowID
	Offset   platform.Offset
	Interval time.Duration
	Logger   *slog.Logger
}

// Status is a point-in-time snapshot of the tracker state.
type Status struct {
	Target         platform.WindowID `json:"target"`
	Covered        bool              `json:"covered"`
	OverlayVisible bool              `json:"overlay_visible"`
	X              int               `json:"x"`
	Y              int               `json:"y"`
	Positioned     bool              `json:"positioned"`
	Ticks          uint64            `json:"ticks"`
	LastTransition time.Time         `json:"last_transition"`
	StartedAt      time.Time         `json:"started_at"`
}

// Tracker polls the target window and drives the overlay surface. All OS
// queries happen on the loop goroutine; Status is safe to read from other
// goroutines.
type Tracker struct {
	backend  platform.Backend
	surface  overlay.Surface
	target   platform.WindowID
	offset   platform.Offset
	interval time.Duration
	logger   *slog.Logger

	// Visibility last applied to the surface. Loop goroutine only.
	// appliedKnown stays false until the first SetVisible succeeds, so the
	// first tick always issues a command and a failed transition retries.
	applied      bool
	appliedKnown bool

	mu     sync.Mutex
	status Status
}

// New creates a tracker for one already-located target window.
func New(backend platform.Backend, surface overlay.Surface, cfg Config) *Tracker {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Tracker{
		backend:  backend,
		surface:  surface,
		target:   cfg.Target,
		offset:   cfg.Offset,
		interval: interval,
		logger:   logger,
		status: Status{
			Target:    cfg.Target,
			Covered:   true,
			StartedAt: time.Now(),
		},
	}
}

// Run starts the polling loop. Blocks until the context is cancelled.
func (t *Tracker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("tracker started", "target", t.target, "interval", t.interval)

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("tracker stopped")
			return nil
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Tick performs a single reconcile step: decide whether the target is
// covered, apply overlay visibility on change, then follow the target's
// position.
func (t *Tracker) Tick() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			t.logger.Error("tracker tick panic recovered", "error", err)
		}
	}()

	covered := t.coveredNow()
	t.applyVisibility(!covered)
	t.follow()

	t.mu.Lock()
	t.status.Covered = covered
	t.status.OverlayVisible = t.applied
	t.status.Ticks++
	t.mu.Unlock()
}

// Status returns a snapshot of the tracker state.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// coveredNow reports whether something other than the target or the strip
// itself is plausibly front-most. Every query failure lands on the
// conservative side: covered, so the overlay hides.
func (t *Tracker) coveredNow() bool {
	if t.target == 0 {
		return true
	}

	minimized, err := t.backend.IsMinimized(t.target)
	if err != nil || minimized {
		return true
	}

	fg, err := t.backend.ForegroundWindow()
	if err != nil {
		return true
	}
	if fg == t.target {
		return false
	}
	if h := t.surface.NativeHandle(); h != 0 && fg == h {
		return false
	}
	return true
}

// applyVisibility issues a surface command only when the desired state
// differs from the last applied one. On failure the applied state is left
// unchanged so the transition retries next tick.
func (t *Tracker) applyVisibility(visible bool) {
	if t.appliedKnown && visible == t.applied {
		return
	}

	if err := t.surface.SetVisible(visible); err != nil {
		t.logger.Debug("overlay visibility change failed", "visible", visible, "error", err)
		return
	}

	t.applied = visible
	t.appliedKnown = true

	t.mu.Lock()
	t.status.LastTransition = time.Now()
	t.mu.Unlock()
}

// follow repositions the strip against the target's top-right corner.
// Position updates are independent of visibility: they happen while the
// strip is hidden too, and a rect failure skips only this tick's move.
func (t *Tracker) follow() {
	rect, err := t.backend.WindowRect(t.target)
	if err != nil {
		t.logger.Debug("target rect unreadable", "error", err)
		return
	}

	x := rect.Right + t.offset.DX
	y := rect.Top + t.offset.DY

	if err := t.surface.MoveTo(x, y); err != nil {
		t.logger.Debug("overlay move failed", "x", x, "y", y, "error", err)
		return
	}

	t.mu.Lock()
	t.status.X = x
	t.status.Y = y
	t.status.Positioned = true
	t.mu.Unlock()
}
