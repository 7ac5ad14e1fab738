package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Runtime configuration read from the environment.
type Config struct {
	Port          string
	DBDriver      string
	DBDSN         string
	SeedPath      string
	RedisURL      string
	PlanCacheTTL  time.Duration
	MaxExpansions int
	RateLimit     float64
	RateBurst     int
}

// Load reads .env when present and then the process environment.
// DATABASE_URL, when set, selects PostgreSQL over the SQLite file at DB_PATH.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Config{
		Port:          Get("PORT", "8080"),
		DBDriver:      Get("DB_DRIVER", "sqlite"),
		DBDSN:         Get("DB_PATH", "data/app.db"),
		SeedPath:      Get("SEED_PATH", "data/seeds"),
		RedisURL:      Get("REDIS_URL", ""),
		PlanCacheTTL:  GetDuration("PLAN_CACHE_TTL", time.Hour),
		MaxExpansions: GetInt("MAX_EXPANSIONS", 200000),
		RateLimit:     GetFloat("PLAN_RATE_LIMIT", 2),
		RateBurst:     GetInt("PLAN_RATE_BURST", 4),
	}

	if url := Get("DATABASE_URL", ""); url != "" {
		cfg.DBDriver = "pgx"
		cfg.DBDSN = url
	}

	return cfg
}

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int for %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid float for %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration for %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
