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

func CreateTestSlot(t *testing.T, db DBLike, tenantID uuid.UUID, capacity int32, startsAt time.Time) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO slots (id, tenant_id, original_capacity, available_capacity, booked_count, is_available, starts_at)
		VALUES ($1, $2, $3, $3, 0, true, $4)`,
		slotID, tenantID, capacity, startsAt)
	require.NoError(t, err)

	return slotID
}

func CloseTestSlot(t *testing.T, db DBLike, slotID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, "UPDATE slots SET is_available = false WHERE id = $1", slotID)
	require.NoError(t, err)
}

func CreateTestSubscription(t *testing.T, db DBLike, tenantID, customerID, serviceID uuid.UUID, remainingQty int32) uuid.UUID {
	t.Helper()

	subID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO package_subscriptions (id, tenant_id, customer_id, service_id, remaining_qty)
		VALUES ($1, $2, $3, $4, $5)`,
		subID, tenantID, customerID, serviceID, remainingQty)
	require.NoError(t, err)

	return subID
}

func SlotCounters(t *testing.T, db DBLike, slotID uuid.UUID) (available, booked int32) {
	t.Helper()

	ctx := context.Background()
	err := db.QueryRow(ctx,
		"SELECT available_capacity, booked_count FROM slots WHERE id = $1", slotID).
		Scan(&available, &booked)
	require.NoError(t, err)
	return available, booked
}

func RemainingQty(t *testing.T, db DBLike, subID uuid.UUID) int32 {
	t.Helper()

	var qty int32
	ctx := context.Background()
	err := db.QueryRow(ctx,
		"SELECT remaining_qty FROM package_subscriptions WHERE id = $1", subID).
		Scan(&qty)
	require.NoError(t, err)
	return qty
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
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

	return nil
}
