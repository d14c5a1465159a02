package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/PORTABLEA02/primaire2/app/config"
	"github.com/PORTABLEA02/primaire2/app/database"
	"github.com/PORTABLEA02/primaire2/app/models"
	"github.com/PORTABLEA02/primaire2/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "user email (required)")
	password := flag.String("password", "", "initial password (required)")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	role := flag.String("role", "admin", "role to grant")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: adduser -email ... -password ... [-first-name ...] [-last-name ...] [-role admin]")
	}

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	user := &models.User{
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	if err := database.CreateUser(db, user, *role); err != nil {
		log.Fatal("Error creating user: ", err)
	}

	fmt.Printf("User created successfully: %s %s (%s) with role %s\n",
		user.FirstName, user.LastName, user.Email, *role)
}
