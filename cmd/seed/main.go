package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/dimasadyaksa/vidstream/config"
	"github.com/dimasadyaksa/vidstream/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@vidstream.local"
	password := "password123"
	name := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	videos := []struct {
		title, description, videoURL, thumbnailURL string
	}{
		{"First clip", "A short demo clip", "https://storage.googleapis.com/vidstream-demo/videos/first.mp4", "https://storage.googleapis.com/vidstream-demo/thumbnails/first.jpg"},
		{"Second clip", "Another demo clip", "https://storage.googleapis.com/vidstream-demo/videos/second.mp4", "https://storage.googleapis.com/vidstream-demo/thumbnails/second.jpg"},
		{"Third clip", "Yet another demo clip", "https://storage.googleapis.com/vidstream-demo/videos/third.mp4", "https://storage.googleapis.com/vidstream-demo/thumbnails/third.jpg"},
	}
	for _, v := range videos {
		var vid string
		err = db.QueryRow(`
			INSERT INTO videos (title, description, video_url, thumbnail_url, controls, t_height, t_width, t_quality, user_id)
			VALUES ($1, $2, $3, $4, true, 1920, 1080, 80, $5)
			ON CONFLICT (video_url) DO UPDATE SET title=EXCLUDED.title
			RETURNING id
		`, v.title, v.description, v.videoURL, v.thumbnailURL, id).Scan(&vid)
		if err != nil {
			log.Fatalf("failed to seed video %q: %v", v.title, err)
		}
		fmt.Printf("seeded video: id=%s title=%q\n", vid, v.title)
	}
}
