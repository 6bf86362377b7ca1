package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"inkwell/internal/slug"
)

// Seed populates the database with initial development data: a handful of
// categories and a welcome post linked to one of them. It is a no-op when
// any category already exists.
func Seed(db *sql.DB) error {
	// Check if seed data exists already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	categories := []struct {
		name        string
		description string
	}{
		{"Tech", "Software, hardware, and everything in between"},
		{"Travel", "Places worth writing home about"},
		{"Notes", "Short-form thoughts"},
	}

	var firstCategoryID int64
	for i, c := range categories {
		var id int64
		err := db.QueryRow(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
			RETURNING id
		`, c.name, slug.Derive(c.name), c.description).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
		if i == 0 {
			firstCategoryID = id
		}
	}

	title := "Welcome to Inkwell"
	var postID int64
	err := db.QueryRow(`
		INSERT INTO posts (title, content, slug, status)
		VALUES ($1, $2, $3, 'published')
		RETURNING id
	`, title, "This is your first post. Edit or delete it and start writing.",
		slug.Derive(title)).Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
	`, postID, firstCategoryID)
	if err != nil {
		return fmt.Errorf("seed link post: %w", err)
	}

	slog.Info("database seeded with demo content",
		"categories", len(categories),
		"posts", 1,
	)

	return nil
}
