package musicow

import (
	"context"
	"fmt"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/http"
	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// ClientConfig configures the public order book client.
type ClientConfig struct {
	APIURL     string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	UserAgent  string
}

// Client pulls the public order book feed. It implements
// repository.OrderSource: fetch with retries, then drop entries that break
// the feed contract.
type Client struct {
	cfg  ClientConfig
	http *http.Client
	log  *logger.Logger
}

func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryCount == 0 {
		cfg.RetryCount = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{
		cfg: cfg,
		http: http.NewClient(
			http.WithTimeout(cfg.Timeout),
			http.WithHeader("User-Agent", cfg.UserAgent),
		),
		log: log,
	}
}

// FetchOrders downloads and validates the order book. Each attempt failure is
// retried after a fixed delay; only when every attempt fails is the error
// surfaced.
func (c *Client) FetchOrders(ctx context.Context) ([]models.Order, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.RetryCount; attempt++ {
		orders, err := c.fetchOnce(ctx)
		if err == nil {
			return c.validate(orders), nil
		}
		lastErr = err
		c.log.Warn("API 호출 실패",
			logger.Int("attempt", attempt),
			logger.Int("max_attempts", c.cfg.RetryCount),
			logger.Error(err))

		if attempt < c.cfg.RetryCount {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.RetryDelay):
			}
		}
	}

	return nil, fmt.Errorf("fetch orders after %d attempts: %w", c.cfg.RetryCount, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.http.GetJSON(ctx, c.cfg.APIURL, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) validate(orders []models.Order) []models.Order {
	valid, rejected, samples := FilterValid(orders)
	if rejected > 0 {
		c.log.Warn("유효하지 않은 주문 제외",
			logger.Int("rejected", rejected),
			logger.Strings("samples", samples))
	}
	c.log.Info("주문 데이터 수신",
		logger.Int("valid", len(valid)),
		logger.Int("total", len(orders)))
	return valid
}

// Close satisfies repository.OrderSource. The underlying HTTP client keeps no
// connection state worth releasing.
func (c *Client) Close() error { return nil }
