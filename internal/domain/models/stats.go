package models

import "time"

// Snapshot is one computed view of the whole order book. Snapshots are
// replaced atomically on every collection; nothing mutates them afterwards.
type Snapshot struct {
	Orders      []Order
	CollectedAt time.Time
}

// SummaryStats is the /api/summary payload.
type SummaryStats struct {
	TotalOrders   int       `json:"total_orders"`
	BuyOrders     int       `json:"buy_orders"`
	SellOrders    int       `json:"sell_orders"`
	WaitingOrders int       `json:"waiting_orders"`
	AvgPremium    float64   `json:"avg_premium"`
	AvgYield      float64   `json:"avg_yield"`
	AvgLiquidity  float64   `json:"avg_liquidity"`
	BuyRatio      float64   `json:"buy_ratio"`
	SellRatio     float64   `json:"sell_ratio"`
	DataCount     int       `json:"data_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// RankedOrder is one row of the top-yield, undervalued, and high-liquidity
// payloads. The three lists share this shape; optional metrics stay nil when
// the engine could not compute them.
type RankedOrder struct {
	SongName        string   `json:"song_name"`
	SongArtist      string   `json:"song_artist"`
	OrderType       string   `json:"order_type,omitempty"`
	OrderPrice      float64  `json:"order_price,omitempty"`
	NormalizedYield *float64 `json:"normalized_yield,omitempty"`
	Premium         *float64 `json:"premium,omitempty"`
	LiquidityScore  *float64 `json:"liquidity_score,omitempty"`
	Signal          string   `json:"signal,omitempty"`
}

// SignalCount is one slice of the /api/signals payload.
type SignalCount struct {
	Signal     string  `json:"signal"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PremiumBucket is one bar of the /api/premium-distribution payload.
type PremiumBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// Premium distribution bucket labels, in the fixed rendering order.
const (
	BucketVeryUndervalued = "매우 저평가 (< -20%)"
	BucketUndervalued     = "저평가 (-20% ~ -10%)"
	BucketFair            = "적정 (-10% ~ 10%)"
	BucketOvervalued      = "고평가 (10% ~ 20%)"
	BucketVeryOvervalued  = "매우 고평가 (> 20%)"
)

// PremiumBucketOrder fixes the left-to-right bar order.
var PremiumBucketOrder = []string{
	BucketVeryUndervalued,
	BucketUndervalued,
	BucketFair,
	BucketOvervalued,
	BucketVeryOvervalued,
}
