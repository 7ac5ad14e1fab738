package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/platform/db"
	"taxi-dispatch-service/internal/platform/obs"
	"taxi-dispatch-service/internal/ports"
)

// SQL-backed implementation of the InstanceRepository port.
// Driver selects the placeholder dialect (see db.Rebind).
type SQLInstanceRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLInstanceRepository(conn *sql.DB, driver string) *SQLInstanceRepository {
	return &SQLInstanceRepository{DB: conn, Driver: driver}
}

func (r *SQLInstanceRepository) q(query string) string {
	return db.Rebind(r.Driver, query)
}

// Return a summary of every stored instance, ordered by name.
func (r *SQLInstanceRepository) ListInstances(ctx context.Context) (_ []ports.InstanceSummary, err error) {
	defer obs.Time(ctx, "instances.List")(&err)

	if r.DB == nil {
		return nil, errors.New("sql instance repository: DB is nil")
	}

	query := `
	SELECT
		i.name,
		i.speed,
		(SELECT COUNT(*) FROM customers c WHERE c.instance_name = i.name),
		(SELECT COUNT(*) FROM taxis t WHERE t.instance_name = i.name)
	FROM instances i
	ORDER BY i.name;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list instances: query instances table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.InstanceSummary, 0, 16)
	for rows.Next() {
		var s ports.InstanceSummary
		if err := rows.Scan(&s.Name, &s.Speed, &s.Customers, &s.Taxis); err != nil {
			return nil, fmt.Errorf("list instances: scan row: %w", err)
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instances: row iteration: %w", err)
	}

	return out, nil
}

// Return the named instance or ports.ErrInstanceNotFound.
func (r *SQLInstanceRepository) GetInstance(ctx context.Context, name string) (_ *domain.Instance, err error) {
	defer obs.Time(ctx, "instances.Get")(&err)

	if r.DB == nil {
		return nil, errors.New("sql instance repository: DB is nil")
	}

	var speed float64
	err = r.DB.QueryRowContext(ctx, r.q(`SELECT speed FROM instances WHERE name = ?;`), name).Scan(&speed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get instance %q: %w", name, ports.ErrInstanceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query instances table: %w", name, err)
	}

	customers, err := r.loadCustomers(ctx, name)
	if err != nil {
		return nil, err
	}
	taxis, err := r.loadTaxis(ctx, name)
	if err != nil {
		return nil, err
	}

	inst, err := domain.NewInstance(name, speed, customers, taxis)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: %w", name, err)
	}
	return inst, nil
}

func (r *SQLInstanceRepository) loadCustomers(ctx context.Context, name string) ([]domain.CustomerInput, error) {
	query := `
	SELECT customer_id, pickup_x, pickup_y, destination_x, destination_y
	FROM customers
	WHERE instance_name = ?
	ORDER BY customer_id;
	`
	rows, err := r.DB.QueryContext(ctx, r.q(query), name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query customers table: %w", name, err)
	}
	defer rows.Close()

	out := make([]domain.CustomerInput, 0, 16)
	for rows.Next() {
		var id int
		var c domain.CustomerInput
		if err := rows.Scan(&id, &c.Pickup.X, &c.Pickup.Y, &c.Destination.X, &c.Destination.Y); err != nil {
			return nil, fmt.Errorf("get instance %q: scan customer: %w", name, err)
		}
		if id != len(out) {
			return nil, fmt.Errorf("get instance %q: %w: customer ids are not contiguous at %d", name, domain.ErrInvalidInstance, id)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: customer row iteration: %w", name, err)
	}

	return out, nil
}

func (r *SQLInstanceRepository) loadTaxis(ctx context.Context, name string) ([]domain.Point, error) {
	query := `
	SELECT taxi_id, start_x, start_y
	FROM taxis
	WHERE instance_name = ?
	ORDER BY taxi_id;
	`
	rows, err := r.DB.QueryContext(ctx, r.q(query), name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query taxis table: %w", name, err)
	}
	defer rows.Close()

	out := make([]domain.Point, 0, 8)
	for rows.Next() {
		var id int
		var p domain.Point
		if err := rows.Scan(&id, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("get instance %q: scan taxi: %w", name, err)
		}
		if id != len(out) {
			return nil, fmt.Errorf("get instance %q: %w: taxi ids are not contiguous at %d", name, domain.ErrInvalidInstance, id)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: taxi row iteration: %w", name, err)
	}

	return out, nil
}

// Insert or replace inst, including its customers and taxis, in one transaction.
func (r *SQLInstanceRepository) SaveInstance(ctx context.Context, inst *domain.Instance) (err error) {
	defer obs.Time(ctx, "instances.Save")(&err)

	if r.DB == nil {
		return errors.New("sql instance repository: DB is nil")
	}
	if err := inst.Validate(); err != nil {
		return fmt.Errorf("save instance: %w", err)
	}
	if inst.Name == "" {
		return fmt.Errorf("save instance: %w: name must not be empty", domain.ErrInvalidInstance)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save instance %q: begin tx: %w", inst.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
	INSERT INTO instances (name, speed)
	VALUES (?, ?)
	ON CONFLICT (name) DO UPDATE
	SET speed = EXCLUDED.speed;
	`
	if _, err := tx.ExecContext(ctx, r.q(upsert), inst.Name, inst.Speed); err != nil {
		return fmt.Errorf("save instance %q: upsert instance: %w", inst.Name, err)
	}

	for _, table := range []string{"customers", "taxis"} {
		del := fmt.Sprintf(`DELETE FROM %s WHERE instance_name = ?;`, table)
		if _, err := tx.ExecContext(ctx, r.q(del), inst.Name); err != nil {
			return fmt.Errorf("save instance %q: clear %s: %w", inst.Name, table, err)
		}
	}

	customerStmt, err := tx.PrepareContext(ctx, r.q(`
	INSERT INTO customers (instance_name, customer_id, pickup_x, pickup_y, destination_x, destination_y)
	VALUES (?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save instance %q: prepare customer insert: %w", inst.Name, err)
	}
	defer customerStmt.Close()

	for _, c := range inst.Customers {
		if _, err := customerStmt.ExecContext(ctx, inst.Name, c.ID, c.Pickup.X, c.Pickup.Y, c.Destination.X, c.Destination.Y); err != nil {
			return fmt.Errorf("save instance %q: insert customer_id=%d: %w", inst.Name, c.ID, err)
		}
	}

	taxiStmt, err := tx.PrepareContext(ctx, r.q(`
	INSERT INTO taxis (instance_name, taxi_id, start_x, start_y)
	VALUES (?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save instance %q: prepare taxi insert: %w", inst.Name, err)
	}
	defer taxiStmt.Close()

	for _, t := range inst.Taxis {
		if _, err := taxiStmt.ExecContext(ctx, inst.Name, t.ID, t.Start.X, t.Start.Y); err != nil {
			return fmt.Errorf("save instance %q: insert taxi_id=%d: %w", inst.Name, t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save instance %q: commit tx: %w", inst.Name, err)
	}

	return nil
}
