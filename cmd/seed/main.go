// Command seed populates the database with sample users and workflows for
// local development. It refuses to touch a database that already has users
// unless -force is passed.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"document-approval-api/config"
	"document-approval-api/models"
)

func main() {
	force := flag.Bool("force", false, "seed even if users already exist")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Workflow{},
		&models.WorkflowStep{},
		&models.Document{},
		&models.Approval{},
	); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		log.Fatal("Count failed: ", err)
	}
	if userCount > 0 && !*force {
		log.Fatalf("Database already has %d users; re-run with -force to seed anyway", userCount)
	}

	if err := seed(db); err != nil {
		log.Fatal("Seeding failed: ", err)
	}
	log.Println("Seeding complete")
}
