package main

import (
	"context"
	"flag"
	"log"
	"os"
	"taxi-dispatch-service/internal/adapters/cache"
	"taxi-dispatch-service/internal/adapters/instancefile"
	"taxi-dispatch-service/internal/adapters/repositories"
	"taxi-dispatch-service/internal/config"
	"taxi-dispatch-service/internal/platform/db"
)

func main() {
	cfg := config.Load()

	seedPath := flag.String("seed", cfg.SeedPath, "instance file or directory to load")
	export := flag.String("export", "", "print the named instance as JSON and exit")
	flag.Parse()

	conn, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	repo := repositories.NewSQLInstanceRepository(conn, cfg.DBDriver)

	if *export != "" {
		inst, err := repo.GetInstance(ctx, *export)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		data, err := instancefile.Encode(inst, instancefile.FormatJSON)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		_, _ = os.Stdout.Write(append(data, '\n'))
		return
	}

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	names, err := repositories.SeedFromFile(ctx, repo, *seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	// Reseeded instances may have changed; drop their cached plans.
	planCache := cache.NewSQLPlanCache(conn, cfg.DBDriver)
	for _, name := range names {
		if err := planCache.Invalidate(ctx, name); err != nil {
			log.Fatalf("cache invalidation failed: %v", err)
		}
	}
	log.Printf("Seeding complete. instances=%v", names)
}
