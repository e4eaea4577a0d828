package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/repository"
	"github.com/yongkyu4803/2510-MCdata/internal/usecase"
	"github.com/yongkyu4803/2510-MCdata/pkg/config"
	xhttp "github.com/yongkyu4803/2510-MCdata/pkg/http"
	applogger "github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

// App encapsulates the provider's lifecycle: the collection loop, the HTTP
// API, and an orderly shutdown of both.
type App struct {
	cfg        *config.Config
	collector  *usecase.Collector
	processor  *usecase.SnapshotProcessor
	source     repository.OrderSource
	handler    xhttp.Handler
	httpServer *xhttp.Server
	log        *applogger.Logger
}

func New(
	cfg *config.Config,
	collector *usecase.Collector,
	processor *usecase.SnapshotProcessor,
	source repository.OrderSource,
	handler xhttp.Handler,
	log *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		processor: processor,
		source:    source,
		handler:   handler,
		log:       log,
	}
}

// Run starts the collector and HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	go a.collector.Run(ctx)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	if a.processor != nil {
		if err := a.processor.Close(); err != nil {
			a.log.Error("backend close error", applogger.Error(err))
		}
	}
	if a.source != nil {
		if err := a.source.Close(); err != nil {
			a.log.Error("source close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
