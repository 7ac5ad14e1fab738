package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the database schema. The DDL is valid for both SQLite and PostgreSQL.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS instances (
		name TEXT PRIMARY KEY,
		speed DOUBLE PRECISION NOT NULL
	);
	`

	createCustomersQuery := `
	CREATE TABLE IF NOT EXISTS customers (
		instance_name TEXT NOT NULL REFERENCES instances(name) ON DELETE CASCADE,
		customer_id INTEGER NOT NULL,
		pickup_x DOUBLE PRECISION NOT NULL,
		pickup_y DOUBLE PRECISION NOT NULL,
		destination_x DOUBLE PRECISION NOT NULL,
		destination_y DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (instance_name, customer_id)
	);
	`

	createTaxisQuery := `
	CREATE TABLE IF NOT EXISTS taxis (
		instance_name TEXT NOT NULL REFERENCES instances(name) ON DELETE CASCADE,
		taxi_id INTEGER NOT NULL,
		start_x DOUBLE PRECISION NOT NULL,
		start_y DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (instance_name, taxi_id)
	);
	`

	createPlanCacheQuery := `
	CREATE TABLE IF NOT EXISTS plan_cache (
		cache_key TEXT PRIMARY KEY,
		instance_name TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at BIGINT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plan_cache_instance
	ON plan_cache(instance_name);
	`

	statements := []string{
		createInstancesQuery,
		createCustomersQuery,
		createTaxisQuery,
		createPlanCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
