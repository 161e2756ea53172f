// Package daemon runs the long-lived frametile process: the tiler, its
// reconcile loop, the hotkeys, the IPC server and config reloads.
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/hotkeys"
	"github.com/1broseidon/frametile/internal/ipc"
	"github.com/1broseidon/frametile/internal/logging"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/tiling"
)

// eventLooper is implemented by backends with their own event loop.
type eventLooper interface {
	EventLoop()
	StopEventLoop()
}

// changeWatcher is implemented by backends that report window changes.
type changeWatcher interface {
	WatchChanges(fn func()) error
}

// Options configures Run.
type Options struct {
	Config *config.Config
	// ConfigPath is reread on RELOAD and SIGHUP; empty means the default
	// lookup.
	ConfigPath string
	Backend    platform.Backend
	Logger     *logging.Leveled
}

// Run manages the backend's windows until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := opts.Config
	logger := opts.Logger.Logger

	tiler := tiling.NewTiler(opts.Backend, cfg, logger.With("component", "tiler"))
	if err := tiler.Reconcile(); err != nil {
		return fmt.Errorf("initial reconcile failed: %w", err)
	}

	handler := hotkeys.NewHandler(opts.Backend, tiler, logger.With("component", "hotkeys"))
	registerHotkeys(handler, cfg, opts.Logger)

	reloadChan := make(chan struct{}, 1)
	server, err := ipc.NewServer(cfg, opts.ConfigPath, tiler, opts.Backend, reloadChan, logger)
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer server.Stop()

	reconciler := NewReconciler(ReconcilerConfig{
		Interval: cfg.ReconcileEvery(),
		Logger:   logger.With("component", "reconciler"),
	}, tiler.Reconcile)
	go reconciler.Run(ctx)

	if watcher, ok := opts.Backend.(changeWatcher); ok {
		if err := watcher.WatchChanges(reconciler.Trigger); err != nil {
			logger.Warn("window change events unavailable, relying on the reconcile interval", "error", err)
		}
	}

	apply := func(newCfg *config.Config) {
		tiler.UpdateConfig(newCfg)
		opts.Logger.SetLevel(newCfg.LogLevel)
		reconciler.SetInterval(newCfg.ReconcileEvery())
		if handler.Available() {
			handler.UnregisterAll()
			registerHotkeys(handler, newCfg, opts.Logger)
		}
		logger.Info("config applied")
	}

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-sighup:
				logger.Info("received SIGHUP, reloading config")
				newCfg, err := loadConfig(opts.ConfigPath)
				if err != nil {
					logger.Error("config reload failed", "error", err)
					continue
				}
				server.UpdateConfig(newCfg)
				apply(newCfg)
			case <-reloadChan:
				// Config was reloaded via IPC
				apply(server.GetConfig())
			}
		}
	}()

	logger.Info("frametile daemon started", "displays", len(tiler.Displays()), "socket", server.SocketPath())

	if looper, ok := opts.Backend.(eventLooper); ok {
		go func() {
			<-ctx.Done()
			looper.StopEventLoop()
		}()
		looper.EventLoop()
	} else {
		<-ctx.Done()
	}

	logger.Info("shutting down frametile daemon")
	return nil
}

func registerHotkeys(handler *hotkeys.Handler, cfg *config.Config, logger *logging.Leveled) {
	if !handler.Available() {
		logger.Info("hotkeys disabled: backend has no X11 connection")
		return
	}
	n, err := handler.RegisterBindings(cfg.Bindings)
	if err != nil {
		logger.Warn("some hotkeys could not be registered", "error", err)
	}
	logger.Info("hotkeys registered", "count", n)
}

func loadConfig(path string) (*config.Config, error) {
	var (
		res *config.LoadResult
		err error
	)
	if path != "" {
		res, err = config.LoadFromPath(path)
	} else {
		res, err = config.LoadWithSource()
	}
	if err != nil {
		return nil, err
	}
	if err := tiling.ValidateBindings(res.Config.Bindings); err != nil {
		return nil, err
	}
	return res.Config, nil
}
