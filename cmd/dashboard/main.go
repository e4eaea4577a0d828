package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/dashboard"
	"github.com/yongkyu4803/2510-MCdata/pkg/config"
	applogger "github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stderr",
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	view := dashboard.NewView()
	client := dashboard.NewClient(cfg.Dashboard.BaseURL)
	pipelines := dashboard.NewPipelines(client, view, l)
	poller := dashboard.NewPoller(pipelines, cfg.Dashboard.PollInterval, l)

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Run(ctx)

	// Repaint at the poll cadence; regions a pipeline failed to refresh keep
	// their previous content.
	paint := time.NewTicker(cfg.Dashboard.PollInterval)
	defer paint.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sigCh:
			cancel()
			return
		case <-paint.C:
			render(view)
		}
	}
}

func render(v *dashboard.View) {
	fmt.Println("=== 시장 요약 ===")
	fmt.Print(v.Summary.Content())
	fmt.Println("=== 수익률 상위 ===")
	fmt.Print(v.TopYield.Content())
	fmt.Println("=== 저평가 ===")
	fmt.Print(v.Undervalued.Content())
	fmt.Println("=== 유동성 상위 ===")
	fmt.Print(v.HighLiquidity.Content())

	if c := v.SignalChart.Current(); c != nil {
		fmt.Println("=== 시그널 분포 ===")
		for _, tip := range c.Tooltips {
			fmt.Println(tip)
		}
	}
	if c := v.PremiumChart.Current(); c != nil {
		fmt.Println("=== 프리미엄 분포 ===")
		for _, tip := range c.Tooltips {
			fmt.Println(tip)
		}
	}
}
