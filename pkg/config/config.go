package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Log         struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Collector struct {
		APIURL     string        `yaml:"api_url"`
		Interval   time.Duration `yaml:"interval"`
		Timeout    time.Duration `yaml:"timeout"`
		RetryCount int           `yaml:"retry_count"`
		RetryDelay time.Duration `yaml:"retry_delay"`
		UserAgent  string        `yaml:"user_agent"`
	} `yaml:"collector"`
	Analysis struct {
		PremiumHigh    float64 `yaml:"premium_high"`
		PremiumLow     float64 `yaml:"premium_low"`
		LiquidityHigh  float64 `yaml:"liquidity_high"`
		LiquidityLow   float64 `yaml:"liquidity_low"`
		ReferencePrice float64 `yaml:"reference_price"`
	} `yaml:"analysis"`
	Backend struct {
		Type      string `yaml:"type"` // none, clickhouse, kafka
		BatchSize int    `yaml:"batch_size"`
	} `yaml:"backend"`
	ClickHouse struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		Table        string        `yaml:"table"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"kafka"`
	Cache struct {
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Alert struct {
		WebhookURL       string  `yaml:"webhook_url"`
		PremiumThreshold float64 `yaml:"premium_threshold"`
		TopN             int     `yaml:"top_n"`
	} `yaml:"alert"`
	Dashboard struct {
		BaseURL      string        `yaml:"base_url"`
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"dashboard"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MUSICOW_API_URL"); v != "" {
		c.Collector.APIURL = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("ALERT_WEBHOOK_URL"); v != "" {
		c.Alert.WebhookURL = v
	}
	if v := os.Getenv("DASHBOARD_BASE_URL"); v != "" {
		c.Dashboard.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Collector.APIURL == "" {
		c.Collector.APIURL = "https://data.musicow.com/files/v1/market/orders.json"
	}
	if c.Collector.Interval == 0 {
		c.Collector.Interval = 5 * time.Minute
	}
	if c.Collector.Timeout == 0 {
		c.Collector.Timeout = 30 * time.Second
	}
	if c.Collector.RetryCount == 0 {
		c.Collector.RetryCount = 3
	}
	if c.Collector.RetryDelay == 0 {
		c.Collector.RetryDelay = 5 * time.Second
	}
	if c.Analysis.PremiumHigh == 0 {
		c.Analysis.PremiumHigh = 10.0
	}
	if c.Analysis.PremiumLow == 0 {
		c.Analysis.PremiumLow = -10.0
	}
	if c.Analysis.LiquidityHigh == 0 {
		c.Analysis.LiquidityHigh = 80
	}
	if c.Analysis.LiquidityLow == 0 {
		c.Analysis.LiquidityLow = 30
	}
	if c.Analysis.ReferencePrice == 0 {
		c.Analysis.ReferencePrice = 10000
	}
	if c.Backend.Type == "" {
		c.Backend.Type = "none"
	}
	if c.Backend.BatchSize == 0 {
		c.Backend.BatchSize = 2000
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * time.Second
	}
	if c.Alert.PremiumThreshold == 0 {
		c.Alert.PremiumThreshold = 3.0
	}
	if c.Alert.TopN == 0 {
		c.Alert.TopN = 3
	}
	if c.Dashboard.BaseURL == "" {
		c.Dashboard.BaseURL = "http://localhost:5000"
	}
	if c.Dashboard.PollInterval == 0 {
		c.Dashboard.PollInterval = 30 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Backend.Type {
	case "none", "clickhouse", "kafka":
	default:
		return fmt.Errorf("backend.type must be 'none', 'clickhouse' or 'kafka', got '%s'", c.Backend.Type)
	}
	if c.Backend.Type == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for clickhouse backend")
	}
	if c.Backend.Type == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty for kafka backend")
	}
	if c.Analysis.PremiumLow >= c.Analysis.PremiumHigh {
		return fmt.Errorf("analysis.premium_low must be below analysis.premium_high")
	}
	return nil
}
