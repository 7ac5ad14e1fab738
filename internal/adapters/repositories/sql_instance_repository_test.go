package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/platform/db"
	"taxi-dispatch-service/internal/ports"
	"testing"
)

func newTestRepo(t *testing.T) *SQLInstanceRepository {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSQLInstanceRepository(conn, db.DriverSQLite)
}

func testInstance(t *testing.T, name string, speed float64) *domain.Instance {
	t.Helper()

	inst, err := domain.NewInstance(name, speed,
		[]domain.CustomerInput{
			{Pickup: domain.Point{X: 0, Y: 0}, Destination: domain.Point{X: 1.5, Y: -2}},
			{Pickup: domain.Point{X: 10, Y: 0}, Destination: domain.Point{X: 11, Y: 0}},
		},
		[]domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: -3, Y: 7}},
	)
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	return inst
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	if err := InitSchema(repo.DB); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if err := InitSchema(nil); err == nil {
		t.Fatalf("expected error for nil DB")
	}
}

func TestSaveAndGetInstance(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	want := testInstance(t, "downtown", 0.75)

	if err := repo.SaveInstance(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetInstance(ctx, "downtown")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Name != want.Name || got.Fingerprint() != want.Fingerprint() {
		t.Fatalf("stored instance differs:\nwant %+v\ngot  %+v", want, got)
	}
	if got.Customers[0].TripDuration != want.Customers[0].TripDuration {
		t.Fatalf("trip duration not rebuilt: %v vs %v", got.Customers[0].TripDuration, want.Customers[0].TripDuration)
	}
}

func TestSaveInstanceReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveInstance(ctx, testInstance(t, "a", 1)); err != nil {
		t.Fatalf("save: %v", err)
	}

	smaller, err := domain.NewInstance("a", 0.5, nil, []domain.Point{{X: 1, Y: 1}})
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	if err := repo.SaveInstance(ctx, smaller); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := repo.GetInstance(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Speed != 0.5 || len(got.Customers) != 0 || len(got.Taxis) != 1 {
		t.Fatalf("expected replaced instance, got %+v", got)
	}
}

func TestGetInstanceNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetInstance(context.Background(), "missing")
	if !errors.Is(err, ports.ErrInstanceNotFound) {
		t.Fatalf("expected ErrInstanceNotFound, got %v", err)
	}
}

func TestListInstances(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha"} {
		if err := repo.SaveInstance(ctx, testInstance(t, name, 1)); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	list, err := repo.ListInstances(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "alpha" || list[1].Name != "zeta" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].Customers != 2 || list[0].Taxis != 3 || list[0].Speed != 1 {
		t.Fatalf("unexpected summary: %+v", list[0])
	}
}

func TestSaveInstanceRejectsUnnamed(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.SaveInstance(context.Background(), testInstance(t, "", 1))
	if !errors.Is(err, domain.ErrInvalidInstance) {
		t.Fatalf("expected ErrInvalidInstance, got %v", err)
	}
}

func TestNilDB(t *testing.T) {
	repo := NewSQLInstanceRepository((*sql.DB)(nil), db.DriverSQLite)
	if _, err := repo.ListInstances(context.Background()); err == nil {
		t.Fatalf("expected error for nil DB")
	}
}

func TestSeedFromDirectory(t *testing.T) {
	repo := newTestRepo(t)
	dir := t.TempDir()

	files := map[string]string{
		"north.json": `{"vehicles": [{"coordX": 0, "coordY": 0}], "customers": [{"coordX": 1, "coordY": 1, "destinationX": 2, "destinationY": 2}]}`,
		"south.yaml": "speed: 0.5\nvehicles:\n  - {coordX: 3, coordY: 3}\ncustomers: []\n",
		"README.md":  "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	names, err := SeedFromFile(context.Background(), repo, dir)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(names) != 2 || names[0] != "north" || names[1] != "south" {
		t.Fatalf("unexpected seeded names: %v", names)
	}

	south, err := repo.GetInstance(context.Background(), "south")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if south.Speed != 0.5 || len(south.Taxis) != 1 {
		t.Fatalf("unexpected seeded instance: %+v", south)
	}
}

func TestSeedFromFileRejectsMalformed(t *testing.T) {
	repo := newTestRepo(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"vehicles": [], "customers": [{"coordX": 1, "coordY": 1}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := SeedFromFile(context.Background(), repo, path)
	if !errors.Is(err, domain.ErrInvalidInstance) {
		t.Fatalf("expected ErrInvalidInstance, got %v", err)
	}
}
