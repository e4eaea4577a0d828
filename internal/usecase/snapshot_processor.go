package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/internal/domain/repository"
	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

// Backend selects where computed snapshots are routed after serving.
const (
	BackendNone       = "none"
	BackendClickHouse = "clickhouse"
	BackendKafka      = "kafka"
)

// ProcessorConfig controls snapshot routing.
type ProcessorConfig struct {
	Backend   string
	BatchSize int
}

// SnapshotProcessor routes every computed snapshot to the configured storage
// backend in batches. With the "none" backend it is a no-op.
type SnapshotProcessor struct {
	cfg       ProcessorConfig
	archive   repository.Archive
	publisher repository.Publisher
	metrics   repository.Metrics
	log       *logger.Logger
}

func NewSnapshotProcessor(
	cfg ProcessorConfig,
	archive repository.Archive,
	publisher repository.Publisher,
	metrics repository.Metrics,
	log *logger.Logger,
) (*SnapshotProcessor, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 2000
	}
	switch cfg.Backend {
	case BackendNone, "":
		cfg.Backend = BackendNone
	case BackendClickHouse:
		if archive == nil {
			return nil, fmt.Errorf("clickhouse backend selected but no archive configured")
		}
	case BackendKafka:
		if publisher == nil {
			return nil, fmt.Errorf("kafka backend selected but no publisher configured")
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return &SnapshotProcessor{
		cfg:       cfg,
		archive:   archive,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}, nil
}

// Process sends the computed orders to the configured backend.
func (p *SnapshotProcessor) Process(ctx context.Context, orders []models.Order) error {
	if p.cfg.Backend == BackendNone || len(orders) == 0 {
		return nil
	}

	started := time.Now()

	for start := 0; start < len(orders); start += p.cfg.BatchSize {
		end := start + p.cfg.BatchSize
		if end > len(orders) {
			end = len(orders)
		}
		batch := orders[start:end]

		var err error
		switch p.cfg.Backend {
		case BackendClickHouse:
			err = p.archive.StoreBatch(ctx, batch)
		case BackendKafka:
			err = p.publisher.PublishBatch(ctx, batch)
		}
		if err != nil {
			return fmt.Errorf("%s backend: %w", p.cfg.Backend, err)
		}
	}

	p.metrics.RecordLatency("backend_"+p.cfg.Backend, time.Since(started).Seconds())
	p.log.Debug("snapshot routed",
		logger.String("backend", p.cfg.Backend),
		logger.Int("orders", len(orders)))
	return nil
}

// Close releases whichever backend is active.
func (p *SnapshotProcessor) Close() error {
	switch p.cfg.Backend {
	case BackendClickHouse:
		return p.archive.Close()
	case BackendKafka:
		return p.publisher.Close()
	}
	return nil
}
