package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/internal/domain/repository"
	"github.com/yongkyu4803/2510-MCdata/internal/usecase"
	"github.com/yongkyu4803/2510-MCdata/pkg/cache"
	xhttp "github.com/yongkyu4803/2510-MCdata/pkg/http"
	xlogger "github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

const errNoData = "데이터를 찾을 수 없습니다"

// DashboardHandler serves the six read-only market metric endpoints. Every
// payload is derived from the latest snapshot; before the first collection
// all endpoints answer 404 with a Korean error body.
type DashboardHandler struct {
	stats    *usecase.MarketStats
	store    repository.SnapshotStore
	cache    cache.BytesCache
	cacheTTL time.Duration
	logger   *xlogger.Logger
}

func NewDashboardHandler(stats *usecase.MarketStats, store repository.SnapshotStore, logger *xlogger.Logger) *DashboardHandler {
	return &DashboardHandler{stats: stats, store: store, logger: logger}
}

// SetCache fronts responses with a short-lived byte cache.
func (h *DashboardHandler) SetCache(c cache.BytesCache, ttl time.Duration) {
	h.cache = c
	h.cacheTTL = ttl
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/summary", h.Summary)
	g.GET("/top-yield", h.TopYield)
	g.GET("/undervalued", h.Undervalued)
	g.GET("/high-liquidity", h.HighLiquidity)
	g.GET("/signals", h.Signals)
	g.GET("/premium-distribution", h.PremiumDistribution)
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	snap, ok := h.snapshot(c)
	if !ok {
		return h.notFound(c)
	}
	return h.respond(c, "summary", func() interface{} {
		return h.stats.Summary(snap)
	})
}

func (h *DashboardHandler) TopYield(c echo.Context) error {
	return h.ranked(c, "top-yield", h.stats.TopYield)
}

func (h *DashboardHandler) Undervalued(c echo.Context) error {
	return h.ranked(c, "undervalued", h.stats.Undervalued)
}

func (h *DashboardHandler) HighLiquidity(c echo.Context) error {
	return h.ranked(c, "high-liquidity", h.stats.HighLiquidity)
}

func (h *DashboardHandler) Signals(c echo.Context) error {
	snap, ok := h.snapshot(c)
	if !ok {
		return h.notFound(c)
	}
	return h.respond(c, "signals", func() interface{} {
		return h.stats.Signals(snap)
	})
}

func (h *DashboardHandler) PremiumDistribution(c echo.Context) error {
	snap, ok := h.snapshot(c)
	if !ok {
		return h.notFound(c)
	}
	return h.respond(c, "premium-distribution", func() interface{} {
		return h.stats.PremiumDistribution(snap)
	})
}

func (h *DashboardHandler) ranked(c echo.Context, name string, build func(*models.Snapshot, int) []models.RankedOrder) error {
	req := &models.RankedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.logger.Warn("invalid request",
			xlogger.String("endpoint", name),
			xlogger.Any("errors", verr))
		return xhttp.ValidationFailed(c, verr)
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return h.notFound(c)
	}
	return h.respond(c, name+":"+strconv.Itoa(req.Limit), func() interface{} {
		return build(snap, req.Limit)
	})
}

func (h *DashboardHandler) snapshot(c echo.Context) (*models.Snapshot, bool) {
	snap, ok := h.store.Latest()
	if !ok {
		h.logger.Warn("snapshot not ready", xlogger.String("path", c.Path()))
	}
	return snap, ok
}

func (h *DashboardHandler) notFound(c echo.Context) error {
	return xhttp.ErrorJSON(c, http.StatusNotFound, errNoData)
}

// respond serves the payload, going through the byte cache when configured.
// Cache failures fall back to a fresh build.
func (h *DashboardHandler) respond(c echo.Context, key string, build func() interface{}) error {
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(key); err == nil && ok {
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	payload := build()

	if h.cache != nil {
		if b, err := json.Marshal(payload); err == nil {
			if err := h.cache.SetBytes(key, b, h.cacheTTL); err != nil {
				h.logger.Warn("cache set failed",
					xlogger.String("key", key),
					xlogger.Error(err))
			}
		}
	}
	return c.JSON(http.StatusOK, payload)
}
