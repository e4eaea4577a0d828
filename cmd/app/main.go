package main

import (
	"flag"
	"log"
	"os"

	"github.com/yongkyu4803/2510-MCdata/internal/di"
	"github.com/yongkyu4803/2510-MCdata/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s backend=%s interval=%s", cfg.Environment, cfg.Backend.Type, cfg.Collector.Interval)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
