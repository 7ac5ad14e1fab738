package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/platform/db"
	"taxi-dispatch-service/internal/platform/obs"
	"taxi-dispatch-service/internal/ports"
	"time"
)

// SQLPlanCache is a SQL-backed cache for computed dispatch plans.
// Driver selects the placeholder dialect (see db.Rebind).
type SQLPlanCache struct {
	DB     *sql.DB
	Driver string
}

func NewSQLPlanCache(conn *sql.DB, driver string) *SQLPlanCache {
	return &SQLPlanCache{DB: conn, Driver: driver}
}

// Fetch the cached plan for key.
func (s *SQLPlanCache) Get(ctx context.Context, key ports.PlanKey) (_ *domain.DispatchPlan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("plan cache: db is nil")
	}

	var payload string
	q := db.Rebind(s.Driver, `SELECT payload FROM plan_cache WHERE cache_key = ?;`)
	err = s.DB.QueryRowContext(ctx, q, key.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	plan, err := decodePlan([]byte(payload))
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%s: %w", key, err)
	}
	return plan, true, nil
}

// Store plan under key, replacing any previous entry.
func (s *SQLPlanCache) Put(ctx context.Context, key ports.PlanKey, plan *domain.DispatchPlan) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("plan cache: db is nil")
	}

	payload, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("insert plan cache: %w", err)
	}

	q := db.Rebind(s.Driver, `
	INSERT INTO plan_cache (cache_key, instance_name, payload, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		created_at = EXCLUDED.created_at;
	`)
	if _, err := s.DB.ExecContext(ctx, q, key.String(), key.Instance, string(payload), time.Now().Unix()); err != nil {
		return fmt.Errorf("insert plan cache key=%s: %w", key, err)
	}

	return nil
}

// Delete every cached plan of one instance.
func (s *SQLPlanCache) Invalidate(ctx context.Context, instance string) (err error) {
	defer obs.Time(ctx, "plan.cache.Invalidate")(&err)

	if s.DB == nil {
		return errors.New("plan cache: db is nil")
	}

	q := db.Rebind(s.Driver, `DELETE FROM plan_cache WHERE instance_name = ?;`)
	if _, err := s.DB.ExecContext(ctx, q, instance); err != nil {
		return fmt.Errorf("invalidate plan cache instance=%q: %w", instance, err)
	}
	return nil
}
