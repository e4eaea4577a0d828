package dashboard

import (
	"context"
	"time"

	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

// Poller runs the six pipelines once immediately and then on a fixed period.
// Ticks do not wait for each other: a slow pipeline from one tick may finish
// after the next tick has started, and its render simply lands last.
type Poller struct {
	pipelines *Pipelines
	interval  time.Duration
	log       *logger.Logger
}

func NewPoller(pipelines *Pipelines, interval time.Duration, log *logger.Logger) *Poller {
	if interval == 0 {
		interval = 30 * time.Second
	}
	return &Poller{pipelines: pipelines, interval: interval, log: log}
}

// Run blocks until the context is canceled. In-flight requests are not
// canceled between ticks.
func (p *Poller) Run(ctx context.Context) {
	p.log.Info("dashboard poller started", logger.Duration("interval", p.interval))

	go p.pipelines.RefreshAll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("dashboard poller stopped")
			return
		case <-ticker.C:
			go p.pipelines.RefreshAll(ctx)
		}
	}
}
