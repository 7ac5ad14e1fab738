package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"taxi-dispatch-service/internal/adapters/cache"
	"taxi-dispatch-service/internal/adapters/repositories"
	"taxi-dispatch-service/internal/api"
	"taxi-dispatch-service/internal/config"
	"taxi-dispatch-service/internal/platform/db"
	"taxi-dispatch-service/internal/ports"
	"taxi-dispatch-service/internal/services"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, plan cache) behind ports and starts the HTTP server.
func main() {
	cfg := config.Load()

	conn, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	repo := repositories.NewSQLInstanceRepository(conn, cfg.DBDriver)

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(conn, repo, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	planCache, closeCache, err := openPlanCache(cfg, conn)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	planner := services.NewPlanner(repo, planCache, cfg.MaxExpansions)
	router := api.NewRouter(api.RouterConfig{
		Repo:          repo,
		Planner:       planner,
		DB:            conn,
		PlanLimiter:   api.NewPlanLimiter(cfg.RateLimit, cfg.RateBurst),
		MaxExpansions: cfg.MaxExpansions,
	})

	// Searches run synchronously inside the request, so the write timeout is generous.
	log.Printf("Server listening addr=:%s driver=%s max_expansions=%d", cfg.Port, cfg.DBDriver, cfg.MaxExpansions)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// Redis when REDIS_URL is set, otherwise the plan_cache table.
func openPlanCache(cfg config.Config, conn *sql.DB) (ports.PlanCache, func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewSQLPlanCache(conn, cfg.DBDriver), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rc, err := cache.NewRedisPlanCacheFromURL(ctx, cfg.RedisURL, cfg.PlanCacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("open plan cache: %w", err)
	}
	log.Printf("plan cache: redis ttl=%s", cfg.PlanCacheTTL)
	return rc, func() { _ = rc.Close() }, nil
}

func initAndSeed(conn *sql.DB, repo *repositories.SQLInstanceRepository, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	names, err := repositories.SeedFromFile(context.Background(), repo, seedPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("seed path %q not found, skipping seed", seedPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("seeded instances=%v", names)

	return nil
}
