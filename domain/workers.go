package domain

import "context"

// ReconcileWorker periodically re-derives the denormalized counters from the
// membership sets they summarize.
type ReconcileWorker interface {
	Start(ctx context.Context)

	// RunOnce reconciles every relation kind a single time.
	RunOnce(ctx context.Context) error
}
