package usecase

import (
	"context"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/internal/domain/repository"
	"github.com/yongkyu4803/2510-MCdata/internal/services/analytics"
	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

// Notifier receives the computed snapshot after every successful collection.
type Notifier interface {
	Notify(ctx context.Context, snap *models.Snapshot)
}

// CollectorConfig controls the collection loop.
type CollectorConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Collector periodically pulls the order book, runs the analytics engine over
// it, and publishes the result as the new snapshot. A failed cycle leaves the
// previous snapshot in place.
type Collector struct {
	cfg       CollectorConfig
	source    repository.OrderSource
	engine    *analytics.Engine
	store     repository.SnapshotStore
	processor *SnapshotProcessor
	notifier  Notifier
	metrics   repository.Metrics
	log       *logger.Logger
}

func NewCollector(
	cfg CollectorConfig,
	source repository.OrderSource,
	engine *analytics.Engine,
	store repository.SnapshotStore,
	processor *SnapshotProcessor,
	notifier Notifier,
	metrics repository.Metrics,
	log *logger.Logger,
) *Collector {
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Minute
	}
	return &Collector{
		cfg:       cfg,
		source:    source,
		engine:    engine,
		store:     store,
		processor: processor,
		notifier:  notifier,
		metrics:   metrics,
		log:       log,
	}
}

// Run collects once immediately, then on every interval tick until the
// context is canceled.
func (c *Collector) Run(ctx context.Context) {
	c.log.Info("collector started",
		logger.Duration("interval", c.cfg.Interval))

	if err := c.CollectOnce(ctx); err != nil {
		c.log.Error("데이터 수집 실패", logger.Error(err))
	}

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("collector stopped")
			return
		case <-ticker.C:
			if err := c.CollectOnce(ctx); err != nil {
				c.log.Error("데이터 수집 실패", logger.Error(err))
			}
		}
	}
}

// CollectOnce runs a single fetch-compute-store cycle.
func (c *Collector) CollectOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	started := time.Now()

	orders, err := c.source.FetchOrders(ctx)
	if err != nil {
		c.metrics.RecordError("fetch")
		return err
	}
	c.metrics.RecordOrdersCollected("accepted", len(orders))

	orders = dedupeOrders(orders)

	now := time.Now()
	computed := c.engine.ComputeBatch(orders, now)

	snap := &models.Snapshot{Orders: computed, CollectedAt: now}
	c.store.Replace(snap)
	c.metrics.RecordSnapshotSize(len(computed))
	c.metrics.RecordLatency("collect", time.Since(started).Seconds())

	c.log.Info("snapshot updated",
		logger.Int("orders", len(computed)),
		logger.Duration("elapsed", time.Since(started)))

	if c.processor != nil {
		if err := c.processor.Process(ctx, computed); err != nil {
			// Backend failures do not invalidate the snapshot already served.
			c.metrics.RecordError("backend")
			c.log.Error("snapshot backend failed", logger.Error(err))
		}
	}

	if c.notifier != nil {
		c.notifier.Notify(ctx, snap)
	}

	return nil
}

// dedupeOrders keeps one entry per order_no, the last one wins, preserving
// first-seen order.
func dedupeOrders(orders []models.Order) []models.Order {
	idx := make(map[string]int, len(orders))
	out := make([]models.Order, 0, len(orders))

	for i := range orders {
		no := orders[i].OrderNo
		if j, ok := idx[no]; ok {
			out[j] = orders[i]
			continue
		}
		idx[no] = len(out)
		out = append(out, orders[i])
	}
	return out
}
