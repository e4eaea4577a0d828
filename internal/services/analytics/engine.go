package analytics

import (
	"strings"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/util"
)

// Config holds the signal thresholds and the reference price used to
// normalize yields across songs.
type Config struct {
	PremiumHigh    float64
	PremiumLow     float64
	LiquidityHigh  float64
	LiquidityLow   float64
	ReferencePrice float64
}

// DefaultConfig returns the stock thresholds: ±10% premium, 80/30 liquidity,
// 10000 KRW reference price.
func DefaultConfig() Config {
	return Config{
		PremiumHigh:    10.0,
		PremiumLow:     -10.0,
		LiquidityHigh:  80,
		LiquidityLow:   30,
		ReferencePrice: 10000,
	}
}

// Engine computes per-order market metrics: premium, normalized yield,
// liquidity score, and the resulting signal label.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.PremiumHigh == 0 {
		cfg.PremiumHigh = def.PremiumHigh
	}
	if cfg.PremiumLow == 0 {
		cfg.PremiumLow = def.PremiumLow
	}
	if cfg.LiquidityHigh == 0 {
		cfg.LiquidityHigh = def.LiquidityHigh
	}
	if cfg.LiquidityLow == 0 {
		cfg.LiquidityLow = def.LiquidityLow
	}
	if cfg.ReferencePrice == 0 {
		cfg.ReferencePrice = def.ReferencePrice
	}
	return &Engine{cfg: cfg}
}

// Premium returns the signed percentage deviation of the order price from
// the most recent fill price, rounded to 2 decimals. Nil when there is no
// reference fill to compare against.
func (e *Engine) Premium(orderPrice, recentPrice float64) *float64 {
	if recentPrice == 0 {
		return nil
	}
	v := util.Round((orderPrice-recentPrice)/recentPrice*100, 2)
	return &v
}

// NormalizedYield scales the annual royalty rate to the reference price so
// yields are comparable across songs, rounded to 2 decimals. Nil when the
// order price is zero.
func (e *Engine) NormalizedYield(royaltyRate, orderPrice float64) *float64 {
	if orderPrice == 0 {
		return nil
	}
	v := util.Round(royaltyRate*e.cfg.ReferencePrice/orderPrice*100, 2)
	return &v
}

// LiquidityScore rates how actively a song trades on a 0-100 scale:
// 40% bid/ask spread, 30% order depth, 30% recent order frequency.
func (e *Engine) LiquidityScore(songOrders []models.Order, now time.Time) float64 {
	if len(songOrders) == 0 {
		return 0
	}
	total := spreadScore(songOrders)*0.4 +
		depthScore(songOrders)*0.3 +
		frequencyScore(songOrders, now)*0.3
	return util.Round(total, 1)
}

// spreadScore rewards a tight gap between the best waiting bid and the best
// waiting ask. 50 when one side of the book is empty.
func spreadScore(songOrders []models.Order) float64 {
	var maxBuy, minSell float64
	haveBuy, haveSell := false, false

	for i := range songOrders {
		o := &songOrders[i]
		if !o.IsWaiting() {
			continue
		}
		switch o.OrderType {
		case models.OrderTypeBuy:
			if !haveBuy || o.OrderPrice > maxBuy {
				maxBuy = o.OrderPrice
				haveBuy = true
			}
		case models.OrderTypeSell:
			if !haveSell || o.OrderPrice < minSell {
				minSell = o.OrderPrice
				haveSell = true
			}
		}
	}

	if !haveBuy || !haveSell || maxBuy == 0 {
		return 50
	}

	spreadRate := (minSell - maxBuy) / maxBuy * 100

	var score float64
	switch {
	case spreadRate <= 0:
		score = 100
	case spreadRate <= 5:
		score = 100 - spreadRate*5
	case spreadRate <= 10:
		score = 75 - (spreadRate-5)*5
	case spreadRate <= 20:
		score = 50 - (spreadRate-10)*5
	default:
		score = 0
	}
	return clamp(score)
}

// depthScore rewards a deep book of waiting orders.
func depthScore(songOrders []models.Order) float64 {
	waiting := 0
	for i := range songOrders {
		if songOrders[i].IsWaiting() {
			waiting++
		}
	}

	var score float64
	switch {
	case waiting == 0:
		score = 0
	case waiting <= 5:
		score = float64(waiting) * 10
	case waiting <= 10:
		score = 50 + float64(waiting-5)*5
	case waiting <= 20:
		score = 75 + float64(waiting-10)*2.5
	default:
		score = 100
	}
	return clamp(score)
}

// frequencyScore rewards orders placed within the last 30 minutes.
func frequencyScore(songOrders []models.Order, now time.Time) float64 {
	threshold := now.Add(-30 * time.Minute)

	recent := 0
	for i := range songOrders {
		t, ok := util.ParseOrderDate(songOrders[i].OrderDate)
		if ok && !t.Before(threshold) {
			recent++
		}
	}

	var score float64
	switch {
	case recent == 0:
		score = 0
	case recent <= 3:
		score = float64(recent) * 16.7
	case recent <= 10:
		score = 50 + float64(recent-3)*7.1
	default:
		score = 100
	}
	return clamp(score)
}

// Signal derives the label for one order from its premium and liquidity.
// 주의 (caution) dominates: overpriced and hard to exit.
func (e *Engine) Signal(premium *float64, liquidityScore float64) string {
	if premium != nil && *premium > e.cfg.PremiumHigh && liquidityScore < e.cfg.LiquidityLow {
		return models.SignalCaution
	}

	var signals []string
	if premium != nil {
		if *premium < e.cfg.PremiumLow {
			signals = append(signals, models.SignalUndervalued)
		} else if *premium > e.cfg.PremiumHigh {
			signals = append(signals, models.SignalOvervalued)
		}
	}
	if liquidityScore > e.cfg.LiquidityHigh {
		signals = append(signals, models.SignalLiquidityUp)
	} else if liquidityScore < e.cfg.LiquidityLow {
		signals = append(signals, models.SignalLiquidityDown)
	}

	if len(signals) == 0 {
		return models.SignalNormal
	}
	return strings.Join(signals, ", ")
}

// ComputeBatch fills in the computed fields for every order. Liquidity is
// scored once per song, not once per order.
func (e *Engine) ComputeBatch(orders []models.Order, now time.Time) []models.Order {
	bySong := make(map[string][]models.Order)
	for i := range orders {
		bySong[orders[i].SongName] = append(bySong[orders[i].SongName], orders[i])
	}

	liquidity := make(map[string]float64, len(bySong))
	for song, songOrders := range bySong {
		liquidity[song] = e.LiquidityScore(songOrders, now)
	}

	out := make([]models.Order, len(orders))
	for i := range orders {
		o := orders[i]
		o.Premium = e.Premium(o.OrderPrice, o.RecentPrice)
		o.NormalizedYield = e.NormalizedYield(o.OrderRoyaltyRate, o.OrderPrice)
		o.LiquidityScore = liquidity[o.SongName]
		o.Signal = e.Signal(o.Premium, o.LiquidityScore)
		out[i] = o
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
