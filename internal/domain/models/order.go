package models

// Order type, status, and category labels as they appear in the Musicow feed.
const (
	OrderTypeBuy  = "구매"
	OrderTypeSell = "판매"

	OrderStatusWaiting  = "대기"
	OrderStatusDone     = "완료"
	OrderStatusCanceled = "취소"
	OrderStatusFilled   = "체결"
)

// Signal labels assigned by the analytics engine.
const (
	SignalUndervalued   = "저평가"
	SignalOvervalued    = "고평가"
	SignalLiquidityUp   = "유동성↑"
	SignalLiquidityDown = "유동성↓"
	SignalCaution       = "주의"
	SignalNormal        = "보통"
)

// Order is one entry of the public order book, raw feed fields plus the
// metrics computed by the analytics engine. Computed numerics are pointers:
// a nil value marshals as absent, which the dashboard renders as an empty
// cell rather than failing.
type Order struct {
	OrderNo          string  `json:"order_no"`
	SongName         string  `json:"song_name"`
	SongArtist       string  `json:"song_artist"`
	SongCategory     string  `json:"song_category,omitempty"`
	OrderType        string  `json:"order_type"`
	OrderPrice       float64 `json:"order_price"`
	OrderCount       float64 `json:"order_count,omitempty"`
	LeavesCount      float64 `json:"leaves_count,omitempty"`
	OrderStatus      string  `json:"order_status"`
	OrderRoyaltyRate float64 `json:"order_royalty_rate"`
	OrderDate        string  `json:"order_date"`
	RecentPrice      float64 `json:"recent_price"`
	URLLink          string  `json:"url_link,omitempty"`

	Premium         *float64 `json:"premium,omitempty"`
	NormalizedYield *float64 `json:"normalized_yield,omitempty"`
	LiquidityScore  float64  `json:"liquidity_score"`
	Signal          string   `json:"signal,omitempty"`
}

// IsBuy reports whether this is a buy-side order.
func (o *Order) IsBuy() bool { return o.OrderType == OrderTypeBuy }

// IsWaiting reports whether the order is still open.
func (o *Order) IsWaiting() bool { return o.OrderStatus == OrderStatusWaiting }
