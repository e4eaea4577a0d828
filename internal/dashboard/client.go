package dashboard

import (
	"context"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/http"
)

// Client fetches the six metric payloads from the provider API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, opts ...http.ClientOption) *Client {
	return &Client{baseURL: baseURL, http: http.NewClient(opts...)}
}

func (c *Client) Summary(ctx context.Context) (models.SummaryStats, error) {
	var s models.SummaryStats
	err := c.http.GetJSON(ctx, c.baseURL+"/api/summary", &s)
	return s, err
}

func (c *Client) TopYield(ctx context.Context) ([]models.RankedOrder, error) {
	var rows []models.RankedOrder
	err := c.http.GetJSON(ctx, c.baseURL+"/api/top-yield", &rows)
	return rows, err
}

func (c *Client) Undervalued(ctx context.Context) ([]models.RankedOrder, error) {
	var rows []models.RankedOrder
	err := c.http.GetJSON(ctx, c.baseURL+"/api/undervalued", &rows)
	return rows, err
}

func (c *Client) HighLiquidity(ctx context.Context) ([]models.RankedOrder, error) {
	var rows []models.RankedOrder
	err := c.http.GetJSON(ctx, c.baseURL+"/api/high-liquidity", &rows)
	return rows, err
}

func (c *Client) Signals(ctx context.Context) ([]models.SignalCount, error) {
	var rows []models.SignalCount
	err := c.http.GetJSON(ctx, c.baseURL+"/api/signals", &rows)
	return rows, err
}

func (c *Client) PremiumDistribution(ctx context.Context) ([]models.PremiumBucket, error) {
	var rows []models.PremiumBucket
	err := c.http.GetJSON(ctx, c.baseURL+"/api/premium-distribution", &rows)
	return rows, err
}
