// Command seed inserts a demo user with a few posts for local development.
package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-blog-platform/config"
	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	email := "demo@example.com"
	password := "password123"
	hash, err := entity.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash.Encoded()).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", userID, email, password)

	posts := []struct {
		title   string
		content string
	}{
		{"Hello, world", "The very first post on this blog."},
		{"Second thoughts", "A follow-up with slightly more content than the first."},
		{"On pagination", "Enough posts and the listing starts to page."},
	}
	for _, p := range posts {
		var postID int64
		if err := db.QueryRow(`
			INSERT INTO posts (title, content, author_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.title, p.content, userID).Scan(&postID); err != nil {
			log.Fatalf("failed to seed post %q: %v", p.title, err)
		}
		fmt.Printf("seeded post: id=%d title=%q\n", postID, p.title)
	}
}
