package main

import (
	"flag"
	"log"

	"github.com/opencircle/social-datastore/internal/database"
	"github.com/opencircle/social-datastore/pkg/config"
)

func main() {
	seed := flag.Bool("seed", false, "insert demo rows after ensuring the schema")
	flag.Parse()

	cfg := config.Load()
	log.Printf("Bootstrapping social datastore (%s)", cfg.Env)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	if *seed {
		if err := database.SeedSampleData(db); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}
}
