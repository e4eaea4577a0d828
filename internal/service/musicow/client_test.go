package musicow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

const feedBody = `[
	{
		"order_no": "1", "song_name": "곡A", "song_artist": "가수A",
		"song_category": "저작재산권", "order_type": "구매",
		"order_price": 10000, "order_count": 1, "order_status": "대기",
		"order_royalty_rate": 0.08, "order_date": "2025-10-06 12:00:00",
		"recent_price": 9800
	},
	{
		"order_no": "2", "song_name": "곡B", "song_artist": "가수B",
		"song_category": "저작재산권", "order_type": "환불",
		"order_price": 10000, "order_count": 1, "order_status": "대기",
		"order_royalty_rate": 0.08, "order_date": "2025-10-06 12:00:00",
		"recent_price": 9800
	}
]`

func TestFetchOrdersFiltersInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(feedBody))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{APIURL: srv.URL}, logger.Nop())

	orders, err := c.FetchOrders(context.Background())
	if err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("length: got %d, want 1 (invalid order type dropped)", len(orders))
	}
	if orders[0].OrderNo != "1" {
		t.Errorf("kept order: got %s, want 1", orders[0].OrderNo)
	}
}

func TestFetchOrdersRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		APIURL:     srv.URL,
		RetryCount: 3,
		RetryDelay: time.Millisecond,
	}, logger.Nop())

	if _, err := c.FetchOrders(context.Background()); err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls: got %d, want 3", n)
	}
}

func TestFetchOrdersExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		APIURL:     srv.URL,
		RetryCount: 2,
		RetryDelay: time.Millisecond,
	}, logger.Nop())

	if _, err := c.FetchOrders(context.Background()); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestValidateOrder(t *testing.T) {
	good := models.Order{
		OrderNo:          "1",
		SongName:         "곡A",
		SongArtist:       "가수A",
		OrderType:        models.OrderTypeBuy,
		OrderStatus:      models.OrderStatusWaiting,
		OrderPrice:       10000,
		OrderRoyaltyRate: 0.08,
		OrderDate:        "2025-10-06 12:00:00",
	}

	if errs := ValidateOrder(&good); len(errs) != 0 {
		t.Fatalf("valid order rejected: %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*models.Order)
	}{
		{"missing order_no", func(o *models.Order) { o.OrderNo = "" }},
		{"missing song_name", func(o *models.Order) { o.SongName = "" }},
		{"zero price", func(o *models.Order) { o.OrderPrice = 0 }},
		{"negative royalty", func(o *models.Order) { o.OrderRoyaltyRate = -0.01 }},
		{"bad order type", func(o *models.Order) { o.OrderType = "환불" }},
		{"bad status", func(o *models.Order) { o.OrderStatus = "보류" }},
		{"bad date", func(o *models.Order) { o.OrderDate = "2025/10/06" }},
	}

	for _, c := range cases {
		o := good
		c.mutate(&o)
		if errs := ValidateOrder(&o); len(errs) == 0 {
			t.Errorf("%s: expected rejection", c.name)
		}
	}
}

func TestFilterValid(t *testing.T) {
	good := models.Order{
		OrderNo: "1", SongName: "곡A", SongArtist: "가수A",
		OrderType: models.OrderTypeBuy, OrderStatus: models.OrderStatusFilled,
		OrderPrice: 10000, OrderRoyaltyRate: 0.08,
		OrderDate: "2025-10-06 12:00:00",
	}
	bad := good
	bad.OrderPrice = -1

	valid, rejected, samples := FilterValid([]models.Order{good, bad, bad, bad, bad})
	if len(valid) != 1 || rejected != 4 {
		t.Fatalf("got %d valid, %d rejected; want 1/4", len(valid), rejected)
	}
	if len(samples) != 3 {
		t.Errorf("samples capped at 3, got %d", len(samples))
	}
}
