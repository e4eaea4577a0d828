package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	pkgch "github.com/yongkyu4803/2510-MCdata/pkg/clickhouse"
	"github.com/yongkyu4803/2510-MCdata/pkg/util"
)

// OrderArchiveSchema creates the archive table, keyed for per-song time
// series queries.
var OrderArchiveSchema = []string{
	`CREATE TABLE IF NOT EXISTS %s (
		collected_at       DateTime,
		order_no           String,
		song_name          String,
		song_artist        String,
		order_type         String,
		order_price        Float64,
		order_status       String,
		order_royalty_rate Float64,
		order_date         DateTime,
		recent_price       Float64,
		premium            Nullable(Float64),
		normalized_yield   Nullable(Float64),
		liquidity_score    Float64,
		signal             String
	) ENGINE = MergeTree()
	ORDER BY (song_name, collected_at, order_no)`,
}

// CHOrderArchive persists computed orders to ClickHouse. Implements
// repository.Archive.
type CHOrderArchive struct {
	client *pkgch.Client
	db     *sql.DB
	table  string
}

func NewCHOrderArchive(ctx context.Context, client *pkgch.Client, table string) (*CHOrderArchive, error) {
	if table == "" {
		table = "market_orders"
	}

	stmts := make([]string, 0, len(OrderArchiveSchema))
	for _, s := range OrderArchiveSchema {
		stmts = append(stmts, fmt.Sprintf(s, table))
	}
	if err := client.InitSchema(ctx, stmts); err != nil {
		return nil, err
	}

	return &CHOrderArchive{client: client, db: client.DB(), table: table}, nil
}

// StoreBatch inserts computed orders as one multi-row VALUES statement.
func (a *CHOrderArchive) StoreBatch(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	now := time.Now()
	values := make([]string, 0, len(orders))
	args := make([]interface{}, 0, len(orders)*14)

	for i := range orders {
		o := &orders[i]
		if o.OrderNo == "" || o.SongName == "" {
			continue
		}
		orderDate, ok := util.ParseOrderDate(o.OrderDate)
		if !ok {
			orderDate = now
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			now,
			o.OrderNo,
			o.SongName,
			o.SongArtist,
			o.OrderType,
			o.OrderPrice,
			o.OrderStatus,
			o.OrderRoyaltyRate,
			orderDate,
			o.RecentPrice,
			o.Premium,
			o.NormalizedYield,
			o.LiquidityScore,
			o.Signal,
		)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (collected_at, order_no, song_name, song_artist, order_type, order_price, order_status, order_royalty_rate, order_date, recent_price, premium, normalized_yield, liquidity_score, signal) VALUES %s",
		a.table, strings.Join(values, ","))
	if _, err := a.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("archive orders: %w", err)
	}
	return nil
}

// Health pings the connection pool.
func (a *CHOrderArchive) Health(ctx context.Context) error {
	return a.client.Health(ctx)
}

func (a *CHOrderArchive) Close() error {
	return a.client.Close()
}
