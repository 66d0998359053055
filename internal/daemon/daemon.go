// Package daemon assembles the winpin runtime: platform backend, target
// lookup, overlay surface, tracker loop and the IPC control socket.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/winpin/winpin/internal/ipc"
	"github.com/winpin/winpin/internal/locator"
	"github.com/winpin/winpin/internal/overlay"
	"github.com/winpin/winpin/internal/platform"
	"github.com/winpin/winpin/internal/tracker"
)

// Config carries everything needed to bring up a daemon. The caller
// resolves config files and flag overrides before handing it over.
type Config struct {
	TargetTitle string
	Offset      platform.Offset
	Interval    time.Duration
	Overlay     overlay.Options
	Logger      *slog.Logger
}

// Daemon owns the wired components for one foreground run.
type Daemon struct {
	cfg     Config
	logger  *slog.Logger
	backend platform.Backend
	surface overlay.Surface
	tracker *tracker.Tracker
	server  *ipc.Server
	stop    chan struct{}
}

// New connects to the display, locates the target window and builds the
// overlay, tracker and control socket around it. A missing target fails
// here, before any overlay or socket exists, so callers can exit without
// cleanup. The returned error preserves locator.ErrNotFound for errors.Is.
func New(cfg Config) (*Daemon, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	backend, err := platform.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize platform backend: %w", err)
	}

	target, err := locator.Find(backend, cfg.TargetTitle)
	if err != nil {
		backend.Close()
		return nil, err
	}

	surface, err := overlay.New(backend, cfg.Overlay)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to create overlay surface: %w", err)
	}

	trk := tracker.New(backend, surface, tracker.Config{
		Target:   target,
		Offset:   cfg.Offset,
		Interval: cfg.Interval,
		Logger:   cfg.Logger.With("component", "tracker"),
	})

	stop := make(chan struct{}, 1)
	server, err := ipc.NewServer(trk, cfg.TargetTitle, stop, cfg.Logger.With("component", "ipc"))
	if err != nil {
		surface.Close()
		backend.Close()
		return nil, fmt.Errorf("failed to set up control socket: %w", err)
	}

	return &Daemon{
		cfg:     cfg,
		logger:  cfg.Logger,
		backend: backend,
		surface: surface,
		tracker: trk,
		server:  server,
		stop:    stop,
	}, nil
}

// Run starts the control socket, then drives the tracker loop until ctx is
// cancelled or a STOP command arrives over the socket. Teardown runs in
// dependency order: the tracker stops ticking first, then the surface is
// destroyed, then the socket and the display connection are closed, so no
// timer ever fires against a released surface.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.server.Start(); err != nil {
		d.surface.Close()
		d.backend.Close()
		return fmt.Errorf("failed to start control socket: %w", err)
	}

	d.logger.Info("winpin daemon started",
		"title", d.cfg.TargetTitle,
		"dx", d.cfg.Offset.DX,
		"dy", d.cfg.Offset.DY)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-d.stop:
			d.logger.Info("stop requested over control socket")
			cancel()
		case <-runCtx.Done():
		}
	}()

	err := d.tracker.Run(runCtx)

	if cerr := d.surface.Close(); cerr != nil {
		d.logger.Warn("failed to destroy overlay surface", "error", cerr)
	}
	d.server.Stop()
	if cerr := d.backend.Close(); cerr != nil {
		d.logger.Warn("failed to close platform backend", "error", cerr)
	}

	d.logger.Info("winpin daemon stopped")
	return err
}
