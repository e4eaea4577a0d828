//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/yongkyu4803/2510-MCdata/pkg/config"
	"github.com/yongkyu4803/2510-MCdata/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Domain services
		ProvideEngine,
		ProvideOrderSource,
		ProvideSnapshotStore,
		ProvideCache,
		ProvideMarketStats,

		// Storage backends
		ProvideBackends,
		ProvideSnapshotProcessor,

		// Alerting
		ProvideNotifier,

		// Use cases and HTTP
		ProvideCollector,
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
