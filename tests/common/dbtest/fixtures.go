//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestOption(t *testing.T, db DBLike, name string, dailyLimit int) uuid.UUID {
	t.Helper()

	optionID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO booking_options (id, name, daily_limit) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING",
		optionID, name, dailyLimit)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM booking_options WHERE name = $1", name).Scan(&optionID)
	}

	return optionID
}

// CreateTestCoupon inserts an active percentage coupon valid around now.
func CreateTestCoupon(t *testing.T, db DBLike, code string, percent float64, usageLimit *int) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	now := time.Now()
	_, err := db.Exec(context.Background(), `
		INSERT INTO coupons (id, code, discount_type, discount_value, usage_limit, valid_from, valid_until)
		VALUES ($1, $2, 'percentage', $3, $4, $5, $6)`,
		couponID, code, percent, usageLimit, now.Add(-24*time.Hour), now.Add(90*24*time.Hour))
	require.NoError(t, err)

	return couponID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO pricing_rules (id, base_price, weekend_surcharge, extra_guest_charge, max_included_guests, max_guests, cleaning_fee)
		VALUES (1, 18000, 3000, 2000, 6, 10, 5000)
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
