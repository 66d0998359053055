// Package tui implements the interactive config editor behind
// `winpin config edit`.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/winpin/winpin/internal/config"
)

// Run opens the config editor. configPath may be empty, in which case the
// default path is used. The edited config is written back only when the
// user confirms a save.
func Run(configPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("config edit requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	if configPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = path
	}

	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := tea.NewProgram(newModel(configPath, cfg), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("config editor failed: %w", err)
	}
	return nil
}
