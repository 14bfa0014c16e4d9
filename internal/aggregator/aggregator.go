// Package aggregator drives the recurring rename/reconcile cycle for a
// game entity. The loop reschedules itself after each completed run rather
// than ticking on a fixed clock, so a slow cycle never overlaps the next.
package aggregator

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/clicky-block/internal/metrics"
)

// Cycle is the slice of the game entity the aggregator drives.
type Cycle interface {
	RenameFullTeams(ctx context.Context) error
	ReconcileTotals(ctx context.Context) error
}

// Run executes the cycle every interval until ctx is cancelled. Failures
// inside a cycle are logged and swallowed; the next scheduled run is the
// retry mechanism.
func Run(ctx context.Context, cycle Cycle, interval time.Duration, metricsSvc metrics.Metrics) {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Aggregation cycle stopped")
			return
		case <-timer.C:
		}

		if err := cycle.RenameFullTeams(ctx); err != nil {
			log.Error("Rename sweep failed", "error", err)
		}
		if err := cycle.ReconcileTotals(ctx); err != nil {
			log.Error("Reconciliation sweep failed", "error", err)
		}
		metricsSvc.IncAggregatorRuns()

		timer.Reset(interval)
	}
}
