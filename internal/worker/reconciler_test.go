package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/domain/model"
)

type facadeStub struct {
	mu       sync.Mutex
	pending  []model.StockAdjustment
	applied  []model.StockAdjustment
	applyErr error
}

func (s *facadeStub) PendingAdjustments(context.Context, int) ([]model.StockAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out, nil
}

func (s *facadeStub) ApplyAdjustment(_ context.Context, adj model.StockAdjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applyErr != nil {
		return s.applyErr
	}
	s.applied = append(s.applied, adj)
	return nil
}

func (s *facadeStub) appliedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applied)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewReconcilerDefaults(t *testing.T) {
	r := NewReconciler(&facadeStub{}, time.Second, 0, 0, testLogger())
	if r.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", r.batchSize)
	}
	if r.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", r.workers)
	}
}

func TestReconcilerSettlesPendingAdjustments(t *testing.T) {
	adj := model.StockAdjustment{ID: 7, ProductID: uuid.New(), Quantity: 3}
	facade := &facadeStub{pending: []model.StockAdjustment{adj}}
	r := NewReconciler(facade, 10*time.Millisecond, 4, 2, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for facade.appliedCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for adjustment to settle")
		case <-time.After(10 * time.Millisecond):
		}
	}

	r.Stop()
	facade.mu.Lock()
	defer facade.mu.Unlock()
	if len(facade.applied) != 1 || facade.applied[0].ID != adj.ID {
		t.Fatalf("expected adjustment %d applied, got %+v", adj.ID, facade.applied)
	}
}

func TestReconcilerKeepsFailedAdjustmentsUnsettled(t *testing.T) {
	adj := model.StockAdjustment{ID: 9, ProductID: uuid.New(), Quantity: 1}
	facade := &facadeStub{pending: []model.StockAdjustment{adj}, applyErr: errors.New("ledger down")}
	r := NewReconciler(facade, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	if facade.appliedCount() != 0 {
		t.Fatal("failed adjustment must not be recorded as applied")
	}
}

func TestReconcilerStopBeforeStart(t *testing.T) {
	r := NewReconciler(&facadeStub{}, time.Second, 1, 1, testLogger())
	// Stop without Start must not panic or block.
	r.Stop()
}
