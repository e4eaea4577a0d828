package usecase

import (
	"sort"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/util"
)

// SignalUnknown labels orders the engine never tagged.
const SignalUnknown = "알 수 없음"

// MarketStats builds the dashboard API payloads from a snapshot. All methods
// are pure: they read the snapshot and never mutate it.
type MarketStats struct{}

func NewMarketStats() *MarketStats {
	return &MarketStats{}
}

// Summary aggregates the whole order book into the /api/summary payload.
func (s *MarketStats) Summary(snap *models.Snapshot) models.SummaryStats {
	orders := snap.Orders

	var (
		buys, sells, waiting               int
		premiumSum, yieldSum, liquiditySum float64
		premiumCnt, yieldCnt, liquidityCnt int
	)

	for i := range orders {
		o := &orders[i]
		switch o.OrderType {
		case models.OrderTypeBuy:
			buys++
		case models.OrderTypeSell:
			sells++
		}
		if o.IsWaiting() {
			waiting++
		}
		if o.Premium != nil {
			premiumSum += *o.Premium
			premiumCnt++
		}
		if o.NormalizedYield != nil {
			yieldSum += *o.NormalizedYield
			yieldCnt++
		}
		liquiditySum += o.LiquidityScore
		liquidityCnt++
	}

	stats := models.SummaryStats{
		TotalOrders:   len(orders),
		BuyOrders:     buys,
		SellOrders:    sells,
		WaitingOrders: waiting,
		DataCount:     len(orders),
		Timestamp:     snap.CollectedAt,
	}
	if premiumCnt > 0 {
		stats.AvgPremium = util.Round(premiumSum/float64(premiumCnt), 2)
	}
	if yieldCnt > 0 {
		stats.AvgYield = util.Round(yieldSum/float64(yieldCnt), 2)
	}
	if liquidityCnt > 0 {
		stats.AvgLiquidity = util.Round(liquiditySum/float64(liquidityCnt), 1)
	}
	if len(orders) > 0 {
		stats.BuyRatio = util.Round(float64(buys)/float64(len(orders))*100, 1)
		stats.SellRatio = util.Round(float64(sells)/float64(len(orders))*100, 1)
	}
	return stats
}

// TopYield returns the buy orders with the highest normalized yield.
func (s *MarketStats) TopYield(snap *models.Snapshot, limit int) []models.RankedOrder {
	buys := filterOrders(snap.Orders, func(o *models.Order) bool { return o.IsBuy() })
	sort.SliceStable(buys, func(i, j int) bool {
		return deref(buys[i].NormalizedYield) > deref(buys[j].NormalizedYield)
	})
	return toRanked(buys, limit)
}

// Undervalued returns the buy orders with the lowest premium.
func (s *MarketStats) Undervalued(snap *models.Snapshot, limit int) []models.RankedOrder {
	buys := filterOrders(snap.Orders, func(o *models.Order) bool { return o.IsBuy() })
	sort.SliceStable(buys, func(i, j int) bool {
		return deref(buys[i].Premium) < deref(buys[j].Premium)
	})
	return toRanked(buys, limit)
}

// HighLiquidity returns the most liquid orders across both sides of the book.
func (s *MarketStats) HighLiquidity(snap *models.Snapshot, limit int) []models.RankedOrder {
	all := filterOrders(snap.Orders, func(*models.Order) bool { return true })
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].LiquidityScore > all[j].LiquidityScore
	})
	return toRanked(all, limit)
}

// Signals counts orders per signal label, most frequent first, with each
// label's share of the total at one decimal place.
func (s *MarketStats) Signals(snap *models.Snapshot) []models.SignalCount {
	counts := make(map[string]int)
	for i := range snap.Orders {
		sig := snap.Orders[i].Signal
		if sig == "" {
			sig = SignalUnknown
		}
		counts[sig]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	out := make([]models.SignalCount, 0, len(counts))
	for sig, n := range counts {
		sc := models.SignalCount{Signal: sig, Count: n}
		if total > 0 {
			sc.Percentage = util.Round(float64(n)/float64(total)*100, 1)
		}
		out = append(out, sc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Signal < out[j].Signal
	})
	return out
}

// PremiumDistribution buckets orders by premium into the five fixed ranges,
// always in the fixed order. Orders without a premium are excluded.
func (s *MarketStats) PremiumDistribution(snap *models.Snapshot) []models.PremiumBucket {
	counts := make(map[string]int, len(models.PremiumBucketOrder))

	for i := range snap.Orders {
		p := snap.Orders[i].Premium
		if p == nil {
			continue
		}
		counts[premiumBucket(*p)]++
	}

	out := make([]models.PremiumBucket, 0, len(models.PremiumBucketOrder))
	for _, name := range models.PremiumBucketOrder {
		out = append(out, models.PremiumBucket{Range: name, Count: counts[name]})
	}
	return out
}

func premiumBucket(p float64) string {
	switch {
	case p < -20:
		return models.BucketVeryUndervalued
	case p < -10:
		return models.BucketUndervalued
	case p <= 10:
		return models.BucketFair
	case p <= 20:
		return models.BucketOvervalued
	default:
		return models.BucketVeryOvervalued
	}
}

func filterOrders(orders []models.Order, keep func(*models.Order) bool) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for i := range orders {
		if keep(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}

func toRanked(orders []models.Order, limit int) []models.RankedOrder {
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	out := make([]models.RankedOrder, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		liq := o.LiquidityScore
		out = append(out, models.RankedOrder{
			SongName:        o.SongName,
			SongArtist:      o.SongArtist,
			OrderType:       o.OrderType,
			OrderPrice:      o.OrderPrice,
			NormalizedYield: o.NormalizedYield,
			Premium:         o.Premium,
			LiquidityScore:  &liq,
			Signal:          o.Signal,
		})
	}
	return out
}

// Absent metrics rank as zero, matching how the provider has always sorted.
func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
