package repository

import (
	"context"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
)

// OrderSource fetches the raw order book from the upstream feed.
type OrderSource interface {
	FetchOrders(ctx context.Context) ([]models.Order, error)
	Close() error
}

// SnapshotStore holds the latest computed snapshot served by the API.
type SnapshotStore interface {
	Replace(snap *models.Snapshot)
	Latest() (*models.Snapshot, bool)
}

// Archive persists computed orders for offline analysis.
type Archive interface {
	StoreBatch(ctx context.Context, orders []models.Order) error
	Health(ctx context.Context) error
	Close() error
}

// Publisher emits computed orders to a message broker.
type Publisher interface {
	PublishBatch(ctx context.Context, orders []models.Order) error
	Close() error
}

// Metrics records collector instrumentation.
type Metrics interface {
	RecordOrdersCollected(result string, n int)
	RecordError(kind string)
	RecordSnapshotSize(n int)
	RecordLatency(op string, seconds float64)
}
