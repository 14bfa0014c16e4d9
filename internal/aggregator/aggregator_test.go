package aggregator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/clicky-block/internal/aggregator"
	"github.com/mauv0809/clicky-block/internal/game"
	"github.com/mauv0809/clicky-block/internal/metrics"
)

func TestRunExecutesCyclesUntilCancelled(t *testing.T) {
	mock := game.NewMock()
	m := metrics.NewMock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		aggregator.Run(ctx, mock, 5*time.Millisecond, m)
		close(done)
	}()

	// Wait for at least two full cycles.
	require.Eventually(t, func() bool {
		return mock.Reconciles() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("aggregator did not stop after cancel")
	}

	assert.GreaterOrEqual(t, mock.Renames(), 2)
	assert.GreaterOrEqual(t, m.AggregatorRuns(), 2)
}

func TestRunSurvivesCycleFailures(t *testing.T) {
	mock := game.NewMock()
	mock.RenameFullTeamsFunc = func(ctx context.Context) error {
		return context.DeadlineExceeded
	}
	m := metrics.NewMock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go aggregator.Run(ctx, mock, 5*time.Millisecond, m)

	// Reconciliation keeps running even though every rename sweep fails.
	require.Eventually(t, func() bool {
		return mock.Reconciles() >= 2 && mock.Renames() >= 2
	}, time.Second, time.Millisecond)
}
