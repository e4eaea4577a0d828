package di

import (
	"context"
	"fmt"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/repository"
	"github.com/yongkyu4803/2510-MCdata/internal/handler/api"
	internalrepo "github.com/yongkyu4803/2510-MCdata/internal/repository"
	"github.com/yongkyu4803/2510-MCdata/internal/service/alert"
	"github.com/yongkyu4803/2510-MCdata/internal/service/musicow"
	"github.com/yongkyu4803/2510-MCdata/internal/services/analytics"
	"github.com/yongkyu4803/2510-MCdata/internal/usecase"
	"github.com/yongkyu4803/2510-MCdata/pkg/cache"
	pkgch "github.com/yongkyu4803/2510-MCdata/pkg/clickhouse"
	"github.com/yongkyu4803/2510-MCdata/pkg/config"
	xhttp "github.com/yongkyu4803/2510-MCdata/pkg/http"
	pkgkafka "github.com/yongkyu4803/2510-MCdata/pkg/kafka"
	applogger "github.com/yongkyu4803/2510-MCdata/pkg/logger"
	"github.com/yongkyu4803/2510-MCdata/pkg/metrics"
	"github.com/yongkyu4803/2510-MCdata/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEngine creates the analytics engine from configured thresholds.
func ProvideEngine(cfg *config.Config) *analytics.Engine {
	return analytics.NewEngine(analytics.Config{
		PremiumHigh:    cfg.Analysis.PremiumHigh,
		PremiumLow:     cfg.Analysis.PremiumLow,
		LiquidityHigh:  cfg.Analysis.LiquidityHigh,
		LiquidityLow:   cfg.Analysis.LiquidityLow,
		ReferencePrice: cfg.Analysis.ReferencePrice,
	})
}

// ProvideOrderSource creates the upstream feed client.
func ProvideOrderSource(cfg *config.Config, log *applogger.Logger) repository.OrderSource {
	return musicow.NewClient(musicow.ClientConfig{
		APIURL:     cfg.Collector.APIURL,
		Timeout:    cfg.Collector.Timeout,
		RetryCount: cfg.Collector.RetryCount,
		RetryDelay: cfg.Collector.RetryDelay,
		UserAgent:  cfg.Collector.UserAgent,
	}, log)
}

// ProvideSnapshotStore creates the in-memory snapshot store.
func ProvideSnapshotStore() repository.SnapshotStore {
	return internalrepo.NewMemorySnapshotStore()
}

// Backends bundles the optional storage sinks. Only the one matching the
// configured backend is non-nil.
type Backends struct {
	Archive   repository.Archive
	Publisher repository.Publisher
}

// ProvideBackends creates the backend matching cfg.Backend.Type.
func ProvideBackends(cfg *config.Config) (Backends, error) {
	switch cfg.Backend.Type {
	case usecase.BackendClickHouse:
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		)
		if err != nil {
			return Backends{}, fmt.Errorf("clickhouse client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		archive, err := internalrepo.NewCHOrderArchive(ctx, client, cfg.ClickHouse.Table)
		if err != nil {
			_ = client.Close()
			return Backends{}, fmt.Errorf("clickhouse archive: %w", err)
		}
		return Backends{Archive: archive}, nil

	case usecase.BackendKafka:
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
			pkgkafka.WithBatch(cfg.Kafka.BatchSize, cfg.Kafka.BatchTimeout),
			pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
			pkgkafka.WithHashByKey(true),
		)
		if err != nil {
			return Backends{}, fmt.Errorf("kafka producer: %w", err)
		}
		return Backends{Publisher: internalrepo.NewKafkaOrderPublisher(producer, cfg.Kafka.Topic)}, nil
	}

	return Backends{}, nil
}

// ProvideSnapshotProcessor routes snapshots to the configured backend.
func ProvideSnapshotProcessor(
	cfg *config.Config,
	backends Backends,
	m repository.Metrics,
	log *applogger.Logger,
) (*usecase.SnapshotProcessor, error) {
	return usecase.NewSnapshotProcessor(usecase.ProcessorConfig{
		Backend:   cfg.Backend.Type,
		BatchSize: cfg.Backend.BatchSize,
	}, backends.Archive, backends.Publisher, m, log)
}

// ProvideNotifier creates the premium alert notifier. Without a webhook URL
// it stays disabled.
func ProvideNotifier(cfg *config.Config, log *applogger.Logger) usecase.Notifier {
	return alert.NewNotifier(alert.Config{
		WebhookURL:       cfg.Alert.WebhookURL,
		PremiumThreshold: cfg.Alert.PremiumThreshold,
		TopN:             cfg.Alert.TopN,
	}, log)
}

// ProvideCache creates the response cache, Redis-backed when enabled.
func ProvideCache(cfg *config.Config) cache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideMarketStats creates the payload builder.
func ProvideMarketStats() *usecase.MarketStats {
	return usecase.NewMarketStats()
}

// ProvideDashboardHandler creates the API handler with its response cache.
func ProvideDashboardHandler(
	cfg *config.Config,
	stats *usecase.MarketStats,
	store repository.SnapshotStore,
	c cache.BytesCache,
	log *applogger.Logger,
) xhttp.Handler {
	h := api.NewDashboardHandler(stats, store, log)
	h.SetCache(c, cfg.Cache.TTL)
	return h
}

// ProvideCollector creates the collection loop.
func ProvideCollector(
	cfg *config.Config,
	source repository.OrderSource,
	engine *analytics.Engine,
	store repository.SnapshotStore,
	processor *usecase.SnapshotProcessor,
	notifier usecase.Notifier,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.Collector {
	// The cycle budget is the poll interval: retries inside the feed client
	// must finish before the next tick.
	return usecase.NewCollector(usecase.CollectorConfig{
		Interval: cfg.Collector.Interval,
		Timeout:  cfg.Collector.Interval,
	}, source, engine, store, processor, notifier, m, log)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.Collector,
	processor *usecase.SnapshotProcessor,
	source repository.OrderSource,
	handler xhttp.Handler,
	log *applogger.Logger,
) *server.App {
	return server.New(cfg, collector, processor, source, handler, log)
}
