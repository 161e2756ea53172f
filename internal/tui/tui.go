// Package tui is an interactive sandbox for the tiling engine. It drives a
// real Tiler against an in-memory desktop so layouts and bindings can be
// tried without an X server.
package tui

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/tiling"
)

// SandboxDisplay is the desktop the sandbox lays frames out on.
var SandboxDisplay = platform.Display{
	ID:     0,
	Name:   "sandbox",
	Bounds: platform.Rect{Width: 1920, Height: 1080},
}

// Run starts the sandbox with cfg's tiling options.
func Run(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("sandbox requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	m, err := newSandbox(cfg)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newSandbox(cfg *config.Config) (model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	backend := platform.NewMemoryBackend(SandboxDisplay)
	tiler := tiling.NewTiler(backend, cfg, slog.New(slog.DiscardHandler))
	if err := tiler.Reconcile(); err != nil {
		return model{}, err
	}
	return newModel(tiler, backend), nil
}
