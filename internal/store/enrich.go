// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	sq "github.com/Masterminds/squirrel"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
)

// ListEnriched returns posts with their categories attached. With a filter,
// only posts linked to that category are returned; the linked post IDs are
// resolved first and an empty set short-circuits without touching the posts
// table. Enrichment uses a fixed number of queries regardless of result
// size: one for the links of the in-scope posts, one for the categories.
func (s *PostStore) ListEnriched(categoryID *int64) ([]models.Post, error) {
	const op = "list posts"

	var posts []models.Post

	if categoryID != nil {
		postIDs, err := s.postIDsForCategory(*categoryID)
		if err != nil {
			return nil, err
		}
		if len(postIDs) == 0 {
			return []models.Post{}, nil
		}

		query, args, err := psql.Select(postColumns).
			From("posts").
			Where(sq.Eq{"id": postIDs}).
			OrderBy("created_at DESC", "id DESC").
			ToSql()
		if err != nil {
			return nil, apperr.FromStorage(op, err)
		}
		posts, err = s.queryPosts(op, query, args...)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		posts, err = s.queryPosts(op,
			`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`)
		if err != nil {
			return nil, err
		}
	}

	if err := s.attachCategories(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindEnrichedByID returns a single post with its categories attached.
func (s *PostStore) FindEnrichedByID(id int64) (*models.Post, error) {
	p, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.attachOne(p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindEnrichedBySlug returns a single post by slug with its categories attached.
func (s *PostStore) FindEnrichedBySlug(postSlug string) (*models.Post, error) {
	p, err := s.FindBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if err := s.attachOne(p); err != nil {
		return nil, err
	}
	return p, nil
}

// postIDsForCategory resolves the IDs of all posts linked to a category.
func (s *PostStore) postIDsForCategory(categoryID int64) ([]int64, error) {
	const op = "list posts by category"

	rows, err := s.db.Query(`
		SELECT post_id FROM post_categories WHERE category_id = $1 ORDER BY post_id
	`, categoryID)
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.FromStorage(op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return ids, nil
}

// queryPosts runs a posts query and scans all rows.
func (s *PostStore) queryPosts(op, query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, apperr.FromStorage(op, err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return posts, nil
}

// attachCategories populates the Categories field of every post. All links
// for the in-scope posts are fetched in one query (ordered for reproducible
// category order), all categories in another, and the join happens in
// memory through a lookup map — never one category query per post.
func (s *PostStore) attachCategories(posts []models.Post) error {
	const op = "attach post categories"

	for i := range posts {
		posts[i].Categories = []models.Category{}
	}
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]int64, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	query, args, err := psql.Select("post_id", "category_id").
		From("post_categories").
		Where(sq.Eq{"post_id": postIDs}).
		OrderBy("post_id", "category_id").
		ToSql()
	if err != nil {
		return apperr.FromStorage(op, err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return apperr.FromStorage(op, err)
	}
	defer rows.Close()

	linksByPost := make(map[int64][]int64)
	for rows.Next() {
		var postID, categoryID int64
		if err := rows.Scan(&postID, &categoryID); err != nil {
			return apperr.FromStorage(op, err)
		}
		linksByPost[postID] = append(linksByPost[postID], categoryID)
	}
	if err := rows.Err(); err != nil {
		return apperr.FromStorage(op, err)
	}

	catRows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories`)
	if err != nil {
		return apperr.FromStorage(op, err)
	}
	defer catRows.Close()

	categoryByID := make(map[int64]models.Category)
	for catRows.Next() {
		c, err := scanCategory(catRows)
		if err != nil {
			return apperr.FromStorage(op, err)
		}
		categoryByID[c.ID] = *c
	}
	if err := catRows.Err(); err != nil {
		return apperr.FromStorage(op, err)
	}

	for i := range posts {
		for _, categoryID := range linksByPost[posts[i].ID] {
			if c, ok := categoryByID[categoryID]; ok {
				posts[i].Categories = append(posts[i].Categories, c)
			}
		}
	}
	return nil
}

// attachOne populates the Categories field of a single post: its link rows
// first, then the matching categories in one IN query.
func (s *PostStore) attachOne(p *models.Post) error {
	const op = "attach post categories"

	p.Categories = []models.Category{}

	rows, err := s.db.Query(`
		SELECT category_id FROM post_categories WHERE post_id = $1 ORDER BY category_id
	`, p.ID)
	if err != nil {
		return apperr.FromStorage(op, err)
	}
	defer rows.Close()

	var categoryIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return apperr.FromStorage(op, err)
		}
		categoryIDs = append(categoryIDs, id)
	}
	if err := rows.Err(); err != nil {
		return apperr.FromStorage(op, err)
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	query, args, err := psql.Select(categoryColumns).
		From("categories").
		Where(sq.Eq{"id": categoryIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return apperr.FromStorage(op, err)
	}

	catRows, err := s.db.Query(query, args...)
	if err != nil {
		return apperr.FromStorage(op, err)
	}
	defer catRows.Close()

	for catRows.Next() {
		c, err := scanCategory(catRows)
		if err != nil {
			return apperr.FromStorage(op, err)
		}
		p.Categories = append(p.Categories, *c)
	}
	if err := catRows.Err(); err != nil {
		return apperr.FromStorage(op, err)
	}
	return nil
}
