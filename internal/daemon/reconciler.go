package daemon

import (
	"context"
	"log/slog"
	"time"
)

// ReconcileFunc brings the layout in line with the window system.
type ReconcileFunc func() error

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks for state drift and corrects it.
type Reconciler struct {
	interval  time.Duration
	reconcile ReconcileFunc
	reset     chan time.Duration
	kick      chan struct{}
	logger    *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, reconcile ReconcileFunc) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	return &Reconciler{
		interval:  interval,
		reconcile: reconcile,
		reset:     make(chan time.Duration, 1),
		kick:      make(chan struct{}, 1),
		logger:    cfg.Logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case d := <-r.reset:
			ticker.Reset(d)
			r.logger.Info("reconciler interval changed", "interval", d)
		case <-r.kick:
			r.ReconcileNow()
		case <-ticker.C:
			r.ReconcileNow()
		}
	}
}

// SetInterval changes the interval of a running loop.
func (r *Reconciler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-r.reset:
	default:
	}
	r.reset <- d
}

// Trigger asks a running loop for a pass without waiting for the ticker.
// Triggers that arrive while one is pending are merged.
func (r *Reconciler) Trigger() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// ReconcileNow performs a single reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	if err := r.reconcile(); err != nil {
		r.logger.Error("reconcile failed", "error", err)
	}
}
