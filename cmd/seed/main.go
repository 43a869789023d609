// Command main runs the database seeder for the job board.
package main

import (
	"context"
	"flag"
	"log"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/seed"
)

func main() {
	presetPath := flag.String("preset", "", "YAML preset describing how much data to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	cleanOnly := flag.Bool("clean-only", false, "Remove all data and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	preset := seed.DefaultPreset()
	if *presetPath != "" {
		if preset, err = seed.LoadPreset(*presetPath); err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if *shouldClean || *cleanOnly {
		if err := seed.Clean(ctx, db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Println("Database cleaned")
	}
	if *cleanOnly {
		return
	}

	summary, err := seed.Run(ctx, db, preset)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d recruiters, %d job seekers, %d jobs and %d applications",
		summary.Recruiters, summary.JobSeekers, summary.Jobs, summary.Applications)
	log.Printf("All seeded users have the password: %s", preset.Password)
}
