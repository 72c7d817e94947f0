package main

import (
	"flag"
	"log"

	"github.com/Fahad602/Dash-KanBan/internal/config"
	"github.com/Fahad602/Dash-KanBan/internal/database"
	"github.com/Fahad602/Dash-KanBan/internal/migration"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	seedDemo := flag.Bool("seed-demo", false, "insert the demo card when the board is empty")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	loaded := config.LoadDotEnv(".")
	if len(loaded) == 0 {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(&cfg.Database, database.LogLevel(false, *verbose))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema up to date (%s)", cfg.Database.Driver)

	if *seedDemo {
		seeded, err := migration.SeedDemo(db)
		if err != nil {
			log.Fatalf("Demo seed failed: %v", err)
		}
		if seeded {
			log.Println("Demo card inserted")
		} else {
			log.Println("Board already has cards, demo seed skipped")
		}
	}
}
