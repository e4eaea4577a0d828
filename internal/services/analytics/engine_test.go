package analytics

import (
	"testing"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/util"
)

func TestPremium(t *testing.T) {
	e := NewEngine(DefaultConfig())

	p := e.Premium(11000, 10000)
	if p == nil || *p != 10.0 {
		t.Fatalf("Premium(11000, 10000): got %v, want 10.0", p)
	}

	p = e.Premium(9000, 10000)
	if p == nil || *p != -10.0 {
		t.Fatalf("Premium(9000, 10000): got %v, want -10.0", p)
	}

	if p := e.Premium(10000, 0); p != nil {
		t.Fatalf("Premium with zero recent price: got %v, want nil", p)
	}
}

func TestNormalizedYield(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// 8% royalty at the reference price is an 8% normalized yield.
	y := e.NormalizedYield(0.08, 10000)
	if y == nil || *y != 8.0 {
		t.Fatalf("NormalizedYield(0.08, 10000): got %v, want 8.0", y)
	}

	// Same royalty bought at double the price yields half.
	y = e.NormalizedYield(0.08, 20000)
	if y == nil || *y != 4.0 {
		t.Fatalf("NormalizedYield(0.08, 20000): got %v, want 4.0", y)
	}

	if y := e.NormalizedYield(0.08, 0); y != nil {
		t.Fatalf("NormalizedYield with zero price: got %v, want nil", y)
	}
}

func TestSignal(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p := func(v float64) *float64 { return &v }

	cases := []struct {
		name      string
		premium   *float64
		liquidity float64
		want      string
	}{
		{"undervalued", p(-15), 50, models.SignalUndervalued},
		{"overvalued", p(15), 50, models.SignalOvervalued},
		{"liquidity up", p(0), 90, models.SignalLiquidityUp},
		{"liquidity down", p(0), 20, models.SignalLiquidityDown},
		{"caution dominates", p(15), 20, models.SignalCaution},
		{"normal", p(5), 50, models.SignalNormal},
		{"nil premium normal", nil, 50, models.SignalNormal},
		{"combined", p(-15), 20, "저평가, 유동성↓"},
	}

	for _, c := range cases {
		if got := e.Signal(c.premium, c.liquidity); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestLiquidityScoreEmpty(t *testing.T) {
	e := NewEngine(DefaultConfig())
	if got := e.LiquidityScore(nil, time.Now()); got != 0 {
		t.Fatalf("empty orders: got %v, want 0", got)
	}
}

func TestLiquidityScoreBounds(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Now()
	recent := now.Add(-5 * time.Minute).Format(util.OrderDateLayout)

	// Tight spread, deep book, busy song: should score near the top.
	var orders []models.Order
	for i := 0; i < 15; i++ {
		orders = append(orders, models.Order{
			SongName:    "곡A",
			OrderType:   models.OrderTypeBuy,
			OrderStatus: models.OrderStatusWaiting,
			OrderPrice:  10000,
			OrderDate:   recent,
		})
	}
	for i := 0; i < 15; i++ {
		orders = append(orders, models.Order{
			SongName:    "곡A",
			OrderType:   models.OrderTypeSell,
			OrderStatus: models.OrderStatusWaiting,
			OrderPrice:  10000,
			OrderDate:   recent,
		})
	}

	got := e.LiquidityScore(orders, now)
	if got < 90 || got > 100 {
		t.Fatalf("active song: got %v, want in [90,100]", got)
	}

	// One stale non-waiting order: only the default spread contributes.
	stale := []models.Order{{
		SongName:    "곡B",
		OrderType:   models.OrderTypeBuy,
		OrderStatus: models.OrderStatusDone,
		OrderPrice:  10000,
		OrderDate:   "2020-01-01 00:00:00",
	}}
	got = e.LiquidityScore(stale, now)
	if got != 20 {
		t.Fatalf("stale song: got %v, want 20 (0.4*50)", got)
	}
}

func TestComputeBatch(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Now()

	orders := []models.Order{
		{
			OrderNo:          "1",
			SongName:         "곡A",
			OrderType:        models.OrderTypeBuy,
			OrderStatus:      models.OrderStatusWaiting,
			OrderPrice:       8000,
			RecentPrice:      10000,
			OrderRoyaltyRate: 0.08,
			OrderDate:        now.Format(util.OrderDateLayout),
		},
		{
			OrderNo:     "2",
			SongName:    "곡A",
			OrderType:   models.OrderTypeSell,
			OrderStatus: models.OrderStatusWaiting,
			OrderPrice:  8100,
			RecentPrice: 0, // no reference fill
			OrderDate:   now.Format(util.OrderDateLayout),
		},
	}

	got := e.ComputeBatch(orders, now)
	if len(got) != 2 {
		t.Fatalf("length: got %d, want 2", len(got))
	}

	if got[0].Premium == nil || *got[0].Premium != -20.0 {
		t.Errorf("premium: got %v, want -20.0", got[0].Premium)
	}
	if got[0].NormalizedYield == nil || *got[0].NormalizedYield != 10.0 {
		t.Errorf("yield: got %v, want 10.0", got[0].NormalizedYield)
	}
	if got[0].Signal == "" {
		t.Errorf("signal: expected non-empty")
	}

	// Missing reference price keeps premium absent, not zero.
	if got[1].Premium != nil {
		t.Errorf("premium without recent price: got %v, want nil", got[1].Premium)
	}

	// Same song shares one liquidity score.
	if got[0].LiquidityScore != got[1].LiquidityScore {
		t.Errorf("liquidity differs within song: %v vs %v", got[0].LiquidityScore, got[1].LiquidityScore)
	}

	// Input must stay untouched.
	if orders[0].Premium != nil {
		t.Errorf("input mutated")
	}
}
