package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pageza/smart-kitchen/backend/config"
	"github.com/pageza/smart-kitchen/backend/internal/database"
	"github.com/pageza/smart-kitchen/backend/internal/models"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Drop the generation audit table")
	driver := flag.String("driver", "", "Database driver, overrides DB_DRIVER")
	dsn := flag.String("dsn", "", "Database DSN, overrides DB_DSN")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *driver != "" {
		cfg.DBDriver = *driver
	}
	if *dsn != "" {
		cfg.DBDSN = *dsn
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if db == nil {
		log.Fatal("DB_DRIVER is none, nothing to migrate")
	}

	if *rollback {
		if err := db.Migrator().DropTable(&models.GenerationRecord{}); err != nil {
			log.Fatalf("failed to drop generation records: %v", err)
		}
		fmt.Println("Successfully dropped generation_records")
		return
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}
	fmt.Println("All migrations applied successfully.")
}
