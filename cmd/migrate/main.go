// Command migrate applies or rolls back the embedded schema migrations.
//
//	migrate up    apply all pending migrations (default)
//	migrate down  roll back the last applied migration
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"libraryManagement/internal/config"
	"libraryManagement/internal/db"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// Open applies pending migrations as a side effect.
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer d.Close()

	switch command {
	case "up":
		log.Printf("migrations applied: %s", cfg.Database.Path)
	case "down":
		if err := db.RollbackLast(d); err != nil {
			log.Fatalf("rollback: %v", err)
		}
		log.Printf("rolled back last migration: %s", cfg.Database.Path)
	default:
		log.Fatalf("unknown command %q (want up or down)", command)
	}
}
