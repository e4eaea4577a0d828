package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/internal/repository"
	"github.com/yongkyu4803/2510-MCdata/internal/usecase"
	"github.com/yongkyu4803/2510-MCdata/pkg/cache"
	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

func fp(v float64) *float64 { return &v }

func newHandler(snap *models.Snapshot) (*DashboardHandler, *echo.Echo) {
	store := repository.NewMemorySnapshotStore()
	if snap != nil {
		store.Replace(snap)
	}
	h := NewDashboardHandler(usecase.NewMarketStats(), store, logger.Nop())
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func doGET(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEndpointsBeforeFirstCollection(t *testing.T) {
	_, e := newHandler(nil)

	paths := []string{
		"/api/summary",
		"/api/top-yield",
		"/api/undervalued",
		"/api/high-liquidity",
		"/api/signals",
		"/api/premium-distribution",
	}
	for _, p := range paths {
		rec := doGET(e, p)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status %d, want 404", p, rec.Code)
			continue
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: bad body: %v", p, err)
			continue
		}
		if body["error"] != "데이터를 찾을 수 없습니다" {
			t.Errorf("%s: error %q", p, body["error"])
		}
	}
}

func TestSummaryEndpoint(t *testing.T) {
	orders := make([]models.Order, 0, 1234)
	for i := 0; i < 1234; i++ {
		o := models.Order{
			OrderType:       models.OrderTypeBuy,
			OrderStatus:     models.OrderStatusWaiting,
			Premium:         fp(-3.5),
			NormalizedYield: fp(8.2),
			LiquidityScore:  72.4,
		}
		orders = append(orders, o)
	}
	_, e := newHandler(&models.Snapshot{Orders: orders, CollectedAt: time.Now()})

	rec := doGET(e, "/api/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var got models.SummaryStats
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalOrders != 1234 {
		t.Errorf("total_orders: got %d, want 1234", got.TotalOrders)
	}
	if got.AvgPremium != -3.5 {
		t.Errorf("avg_premium: got %v, want -3.5", got.AvgPremium)
	}
	if got.AvgYield != 8.2 {
		t.Errorf("avg_yield: got %v, want 8.2", got.AvgYield)
	}
	if got.AvgLiquidity != 72.4 {
		t.Errorf("avg_liquidity: got %v, want 72.4", got.AvgLiquidity)
	}
}

func TestRankedEndpointLimit(t *testing.T) {
	orders := make([]models.Order, 0, 30)
	for i := 0; i < 30; i++ {
		orders = append(orders, models.Order{
			SongName:        "곡",
			OrderType:       models.OrderTypeBuy,
			NormalizedYield: fp(float64(i)),
		})
	}
	_, e := newHandler(&models.Snapshot{Orders: orders, CollectedAt: time.Now()})

	// Default limit is 10.
	rec := doGET(e, "/api/top-yield")
	var rows []models.RankedOrder
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("default limit: got %d rows, want 10", len(rows))
	}
	if *rows[0].NormalizedYield != 29 {
		t.Errorf("first row yield: got %v, want 29", *rows[0].NormalizedYield)
	}

	rec = doGET(e, "/api/top-yield?limit=5")
	rows = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("limit=5: got %d rows, want 5", len(rows))
	}
}

func TestRankedEndpointRejectsBadLimit(t *testing.T) {
	_, e := newHandler(&models.Snapshot{Orders: []models.Order{{SongName: "곡"}}, CollectedAt: time.Now()})

	for _, q := range []string{"limit=-1", "limit=51"} {
		rec := doGET(e, "/api/undervalued?"+q)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", q, rec.Code)
		}
	}
}

func TestSignalsEndpoint(t *testing.T) {
	_, e := newHandler(&models.Snapshot{Orders: []models.Order{
		{Signal: models.SignalUndervalued},
		{Signal: models.SignalUndervalued},
		{Signal: models.SignalNormal},
		{Signal: models.SignalOvervalued},
	}, CollectedAt: time.Now()})

	rec := doGET(e, "/api/signals")
	var rows []models.SignalCount
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if rows[0].Signal != models.SignalUndervalued || rows[0].Count != 2 || rows[0].Percentage != 50.0 {
		t.Errorf("first row: %+v", rows[0])
	}
}

func TestPremiumDistributionEndpoint(t *testing.T) {
	_, e := newHandler(&models.Snapshot{Orders: []models.Order{
		{Premium: fp(-30)},
		{Premium: fp(0)},
		{Premium: fp(30)},
	}, CollectedAt: time.Now()})

	rec := doGET(e, "/api/premium-distribution")
	var rows []models.PremiumBucket
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("rows: got %d, want 5", len(rows))
	}
	for i, name := range models.PremiumBucketOrder {
		if rows[i].Range != name {
			t.Errorf("bucket %d: got %q, want %q", i, rows[i].Range, name)
		}
	}
}

func TestResponseCache(t *testing.T) {
	store := repository.NewMemorySnapshotStore()
	store.Replace(&models.Snapshot{Orders: []models.Order{{Signal: models.SignalNormal}}, CollectedAt: time.Now()})

	h := NewDashboardHandler(usecase.NewMarketStats(), store, logger.Nop())
	h.SetCache(cache.NewTTLCache(), 30*time.Second)
	e := echo.New()
	h.RegisterRoutes(e)

	first := doGET(e, "/api/signals")

	// A snapshot swap within the TTL still serves the cached payload.
	store.Replace(&models.Snapshot{Orders: []models.Order{
		{Signal: models.SignalNormal}, {Signal: models.SignalCaution},
	}, CollectedAt: time.Now()})

	second := doGET(e, "/api/signals")
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cached response changed:\n%s\nvs\n%s", first.Body.String(), second.Body.String())
	}
}
