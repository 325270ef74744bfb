package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gradovikov/storefront/internal/domain/model"
)

// InventoryFacade exposes the subset of application functionality required by the worker.
type InventoryFacade interface {
	PendingAdjustments(ctx context.Context, limit int) ([]model.StockAdjustment, error)
	ApplyAdjustment(ctx context.Context, adj model.StockAdjustment) error
}

// Reconciler retries journaled stock adjustments until the ledger accepts
// them, restoring counters that a failed compensating release left behind.
type Reconciler struct {
	facade       InventoryFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.StockAdjustment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the drift reconciler worker pool.
func NewReconciler(facade InventoryFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.StockAdjustment, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	adjustments, err := r.facade.PendingAdjustments(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch pending adjustments failed", slog.String("error", err.Error()))
		return
	}
	for _, adj := range adjustments {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- adj:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case adj, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleAdjustment(ctx, adj)
		}
	}
}

func (r *Reconciler) handleAdjustment(ctx context.Context, adj model.StockAdjustment) {
	if err := r.facade.ApplyAdjustment(ctx, adj); err != nil {
		// Left unsettled; the next poll picks it up again.
		r.logger.Error("stock adjustment failed",
			slog.Int64("adjustment_id", adj.ID),
			slog.String("product_id", adj.ProductID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	r.logger.Info("stock drift settled",
		slog.Int64("adjustment_id", adj.ID),
		slog.String("product_id", adj.ProductID.String()),
		slog.Int64("quantity", adj.Quantity),
	)
}
