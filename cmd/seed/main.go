package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/gatherly/events-api/config"
	"github.com/gatherly/events-api/pkg/helpers"
)

// Seeds a demo organizer, attendee, and one upcoming event for local
// development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	organizerID := seedUser(db, "demoorganizer", "organizer@example.com", "password123")
	attendeeID := seedUser(db, "demoattendee", "attendee@example.com", "password123")

	var eventID string
	err = db.QueryRow(`
		INSERT INTO events (title, description, date, location, organizer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "Demo Meetup", "A seeded event for local development.",
		time.Now().AddDate(0, 1, 0), "Demo Hall", organizerID).Scan(&eventID)
	if err != nil {
		log.Fatalf("failed to seed event: %v", err)
	}

	fmt.Printf("seeded organizer=%s attendee=%s event=%s\n", organizerID, attendeeID, eventID)
}

func seedUser(db *sql.DB, username, email, password string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", username, err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", id, username, password)
	return id
}
