package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/PORTABLEA02/primaire2/app/config"
	"github.com/PORTABLEA02/primaire2/app/database"
)

func main() {
	log.Println("Starting manual migration...")

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	// Optionally execute extra SQL files passed on the command line.
	for _, path := range os.Args[1:] {
		executeSQLFile(db, path)
	}

	log.Println("Manual migration completed successfully!")
}

func executeSQLFile(db *sql.DB, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Skipping %s: %v", path, err)
		return
	}

	log.Printf("Executing %s...", path)
	if _, err := db.Exec(string(content)); err != nil {
		log.Printf("Error executing %s: %v", path, err)
	} else {
		log.Printf("Successfully executed %s", path)
	}
}
