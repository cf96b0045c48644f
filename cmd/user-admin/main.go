package main

import (
	"errors"
	"flag"
	"fmt"
	"lawyer_tools/config"
	"lawyer_tools/db"
	"lawyer_tools/models"
	"lawyer_tools/services"
	"log"
	"os"
	"text/tabwriter"
	"time"
)

func main() {
	list := flag.Bool("list", false, "list all users")
	enable := flag.String("enable", "", "email of the user to enable")
	disable := flag.String("disable", "", "email of the user to disable (ends their sessions)")
	flag.Parse()

	cfg := config.Load()

	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	switch {
	case *list:
		users, err := services.ListUsers(db.DB)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		printUsers(users)
	case *enable != "":
		setActive(*enable, true)
	case *disable != "":
		setActive(*disable, false)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func setActive(email string, active bool) {
	user, err := services.SetUserActive(db.DB, email, active)
	if errors.Is(err, services.ErrUserNotFound) {
		log.Fatalf("No user with email %s. Users are created on their first login.", email)
	}
	if err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	state := "enabled"
	if !active {
		state = "disabled"
	}
	fmt.Printf("✓ %s (%s) %s\n", user.DisplayName(), user.Email, state)
}

func printUsers(users []models.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tACTIVE\tLAST LOGIN")
	for _, u := range users {
		lastLogin := "-"
		if u.LastLoginAt != nil {
			lastLogin = u.LastLoginAt.Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", u.DisplayName(), u.Email, u.IsActive, lastLogin)
	}
	w.Flush()
}
