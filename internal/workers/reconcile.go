package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/conduit-feed/domain"
)

// reconcileKinds are the relation kinds whose counters are re-derived.
// Bookmarks carry no counter.
var reconcileKinds = []domain.RelationKind{domain.Favorite, domain.Follow}

type reconcileWorker struct {
	Counter  domain.CounterUsecase
	interval time.Duration
	timeout  time.Duration
}

var _ domain.ReconcileWorker = (*reconcileWorker)(nil)

// NewReconcileWorker returns a worker that re-derives counters every interval.
// Each pass is bounded by timeout.
func NewReconcileWorker(c domain.CounterUsecase, interval, timeout time.Duration) *reconcileWorker {
	return &reconcileWorker{
		Counter:  c,
		interval: interval,
		timeout:  timeout,
	}
}

// Start blocks until ctx is done. A non-positive interval disables the worker.
func (w *reconcileWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		logrus.Info("reconcile worker disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.runWithTimeout(ctx); err != nil {
				logrus.Errorf("reconcile counters: %v", err)
			}
		case <-ctx.Done():
			logrus.Info("shutting down reconcile worker")
			return
		}
	}
}

func (w *reconcileWorker) runWithTimeout(ctx context.Context) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	return w.RunOnce(ctx)
}

// RunOnce reconciles every kind, continuing past failures.
func (w *reconcileWorker) RunOnce(ctx context.Context) error {
	var errs []error
	for _, kind := range reconcileKinds {
		if err := w.Counter.Reconcile(ctx, kind); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
		}
	}
	return errors.Join(errs...)
}
