package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/winpin/winpin/internal/config"
	"github.com/winpin/winpin/internal/daemon"
	"github.com/winpin/winpin/internal/ipc"
	"github.com/winpin/winpin/internal/locator"
	"github.com/winpin/winpin/internal/overlay"
	"github.com/winpin/winpin/internal/platform"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "stop":
		os.Exit(runStop(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "version", "-v", "--version":
		fmt.Printf("winpin %s\n", version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winpin <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Pin the overlay to the target window (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  stop                Stop a running daemon")
	fmt.Fprintln(w, "  windows             List visible top-level windows")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config path         Print the config file path")
	fmt.Fprintln(w, "  config init         Write a default config file")
	fmt.Fprintln(w, "  config edit         Edit the config interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp                 Start MCP server (stdio transport)")
	fmt.Fprintln(w, "  version             Print version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winpin <command> --help' for command-specific options.")
}

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winpin run [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Locate the target window and keep the overlay pinned to it.")
		fmt.Fprintln(os.Stderr, "Runs in the foreground until interrupted or 'winpin stop' is called.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Config file path (default: ~/.config/winpin/config.yaml)")
	title := fs.String("title", "", "Target window title (overrides config)")
	interval := fs.Duration("interval", 0, "Poll interval, e.g. 10ms (overrides config)")
	dx := fs.Int("dx", 0, "Horizontal offset from the target's right edge (overrides config)")
	dy := fs.Int("dy", 0, "Vertical offset from the target's top edge (overrides config)")
	fg := fs.Bool("fg", true, "Stay in the foreground (the only mode; winpin never forks)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}
	_ = *fg // foreground is the only mode

	var cfg *config.Config
	var err error
	if *configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(*configPath)
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			cfg.TargetTitle = *title
		case "interval":
			cfg.PollIntervalMs = int(interval.Milliseconds())
		case "dx":
			cfg.Offset.DX = *dx
		case "dy":
			cfg.Offset.DY = *dy
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	d, err := daemon.New(daemon.Config{
		TargetTitle: cfg.TargetTitle,
		Offset:      platform.Offset{DX: cfg.Offset.DX, DY: cfg.Offset.DY},
		Interval:    cfg.Interval(),
		Overlay: overlay.Options{
			Width:  cfg.Overlay.Width,
			Height: cfg.Overlay.Height,
			Color:  cfg.OverlayColor(),
		},
		Logger: logger,
	})
	if err != nil {
		if errors.Is(err, locator.ErrNotFound) {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		log.Fatalf("Failed to start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := d.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winpin status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	line := statusLine(status)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1).
			Render("winpin")
		fmt.Println(header + " " + line)
	} else {
		fmt.Println(line)
	}
	return 0
}

// statusLine renders the daemon status as a single line.
func statusLine(status *ipc.StatusData) string {
	overlayState := "hidden"
	if status.OverlayVisible {
		overlayState = "visible"
	}

	line := fmt.Sprintf("pinned to %q (window 0x%x), overlay %s",
		status.TargetTitle, status.TargetID, overlayState)
	if status.Positioned {
		line += fmt.Sprintf(" at (%d, %d)", status.X, status.Y)
	}
	line += fmt.Sprintf(", %d ticks, up %s", status.Ticks, formatUptime(status.UptimeSeconds))
	return line
}

func formatUptime(seconds int64) string {
	return (time.Duration(seconds) * time.Second).String()
}

func runStop(args []string) int {
	fs := flag.NewFlagSet("stop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winpin stop")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask a running daemon to shut down.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "stop takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winpin windows")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List visible top-level windows with their handles, as the")
		fmt.Fprintln(os.Stderr, "target lookup sees them. Useful for picking a target title.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "windows takes no arguments")
		fs.Usage()
		return 2
	}

	backend, err := platform.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Close()

	ids, err := backend.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	windows := make([]platform.Window, 0, len(ids))
	for _, id := range ids {
		visible, err := backend.IsVisible(id)
		if err != nil || !visible {
			continue
		}
		title, err := backend.Title(id)
		if err != nil {
			continue
		}
		windows = append(windows, platform.Window{ID: id, Title: strings.TrimSpace(title)})
	}

	for _, w := range windows {
		fmt.Printf("0x%08x  %s\n", uint64(w.ID), w.Title)
	}
	return 0
}
