package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/internal/repository"
	"github.com/yongkyu4803/2510-MCdata/internal/services/analytics"
	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

type fakeSource struct {
	orders []models.Order
	err    error
}

func (f *fakeSource) FetchOrders(ctx context.Context) ([]models.Order, error) {
	return f.orders, f.err
}

func (f *fakeSource) Close() error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordOrdersCollected(string, int) {}
func (nopMetrics) RecordError(string)                {}
func (nopMetrics) RecordSnapshotSize(int)            {}
func (nopMetrics) RecordLatency(string, float64)     {}

func newTestCollector(src *fakeSource, store *repository.MemorySnapshotStore) *Collector {
	return NewCollector(
		CollectorConfig{Interval: time.Minute, Timeout: time.Second},
		src,
		analytics.NewEngine(analytics.DefaultConfig()),
		store,
		nil,
		nil,
		nopMetrics{},
		logger.Nop(),
	)
}

func TestCollectOnceStoresComputedSnapshot(t *testing.T) {
	src := &fakeSource{orders: []models.Order{{
		OrderNo:          "1",
		SongName:         "곡A",
		OrderType:        models.OrderTypeBuy,
		OrderStatus:      models.OrderStatusWaiting,
		OrderPrice:       9000,
		RecentPrice:      10000,
		OrderRoyaltyRate: 0.08,
		OrderDate:        time.Now().Format("2006-01-02 15:04:05"),
	}}}
	store := repository.NewMemorySnapshotStore()

	c := newTestCollector(src, store)
	if err := c.CollectOnce(context.Background()); err != nil {
		t.Fatalf("CollectOnce: %v", err)
	}

	snap, ok := store.Latest()
	if !ok {
		t.Fatal("snapshot not stored")
	}
	if len(snap.Orders) != 1 {
		t.Fatalf("orders: got %d, want 1", len(snap.Orders))
	}
	if snap.Orders[0].Premium == nil || *snap.Orders[0].Premium != -10.0 {
		t.Errorf("premium not computed: %v", snap.Orders[0].Premium)
	}
	if snap.Orders[0].Signal == "" {
		t.Error("signal not assigned")
	}
}

func TestCollectOnceFailureKeepsPreviousSnapshot(t *testing.T) {
	store := repository.NewMemorySnapshotStore()
	previous := &models.Snapshot{CollectedAt: time.Now()}
	store.Replace(previous)

	src := &fakeSource{err: errors.New("feed down")}
	c := newTestCollector(src, store)

	if err := c.CollectOnce(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}

	snap, ok := store.Latest()
	if !ok || snap != previous {
		t.Fatal("previous snapshot replaced after a failed cycle")
	}
}

func TestDedupeOrdersLastWins(t *testing.T) {
	orders := []models.Order{
		{OrderNo: "1", OrderPrice: 100},
		{OrderNo: "2", OrderPrice: 200},
		{OrderNo: "1", OrderPrice: 150},
	}

	got := dedupeOrders(orders)
	if len(got) != 2 {
		t.Fatalf("length: got %d, want 2", len(got))
	}
	if got[0].OrderNo != "1" || got[0].OrderPrice != 150 {
		t.Errorf("first entry: %+v, want order 1 at 150", got[0])
	}
	if got[1].OrderNo != "2" {
		t.Errorf("second entry: %+v", got[1])
	}
}
