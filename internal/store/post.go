// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// PostStore handles all post-related database operations, including the
// post ↔ category link set maintained alongside post mutations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, slug, status, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Slug, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePostInput carries the fields of a new post. Status defaults to
// draft when empty. CategoryIDs may be empty for an unlinked post.
type CreatePostInput struct {
	Title       string
	Content     string
	Status      models.PostStatus
	CategoryIDs []int64
}

// Create inserts a new post with a slug derived from the title and links it
// to the given categories. The insert and the link writes run in one
// transaction so a partially-linked post is never observable.
func (s *PostStore) Create(in CreatePostInput) (*models.Post, error) {
	const op = "create post"

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation(op, "title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Validation(op, "content is required")
	}
	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !status.Valid() {
		return nil, apperr.Validation(op, "status must be draft or published")
	}
	postSlug := slug.Derive(title)
	if postSlug == "" {
		return nil, apperr.Validation(op, "title must contain at least one letter or digit")
	}

	var post *models.Post
	err := withTx(s.db, func(tx *sql.Tx) error {
		row := tx.QueryRow(`
			INSERT INTO posts (title, content, slug, status)
			VALUES ($1, $2, $3, $4)
			RETURNING `+postColumns,
			title, in.Content, postSlug, status,
		)
		p, err := scanPost(row)
		if err != nil {
			return apperr.FromStorage(op, err)
		}

		if len(in.CategoryIDs) > 0 {
			if err := replaceLinksTx(tx, p.ID, in.CategoryIDs); err != nil {
				return err
			}
		}

		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// FindByID retrieves a post by its ID.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	const op = "find post by id"

	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(op, "post not found")
	}
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return p, nil
}

// FindBySlug retrieves a post by its slug, regardless of status.
func (s *PostStore) FindBySlug(postSlug string) (*models.Post, error) {
	const op = "find post by slug"

	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, postSlug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(op, "post not found")
	}
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return p, nil
}

// UpdatePostInput carries the optional fields of a post update. Nil fields
// are left unchanged. A nil CategoryIDs leaves the link set alone; an empty
// non-nil slice clears it.
type UpdatePostInput struct {
	Title       *string
	Content     *string
	Status      *models.PostStatus
	CategoryIDs []int64
}

// Update modifies an existing post. A new title rederives the slug.
// updated_at is refreshed regardless of which fields changed. The field
// update and the link replacement run in one transaction.
func (s *PostStore) Update(id int64, in UpdatePostInput) (*models.Post, error) {
	const op = "update post"

	b := psql.Update("posts").Set("updated_at", sq.Expr("now()"))
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.Validation(op, "title is required")
		}
		postSlug := slug.Derive(title)
		if postSlug == "" {
			return nil, apperr.Validation(op, "title must contain at least one letter or digit")
		}
		b = b.Set("title", title).Set("slug", postSlug)
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, apperr.Validation(op, "content is required")
		}
		b = b.Set("content", *in.Content)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation(op, "status must be draft or published")
		}
		b = b.Set("status", *in.Status)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + postColumns).
		ToSql()
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}

	var post *models.Post
	err = withTx(s.db, func(tx *sql.Tx) error {
		p, err := scanPost(tx.QueryRow(query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound(op, "post not found")
		}
		if err != nil {
			return apperr.FromStorage(op, err)
		}

		if in.CategoryIDs != nil {
			if err := replaceLinksTx(tx, id, in.CategoryIDs); err != nil {
				return err
			}
		}

		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post and returns the deleted row. Its links are removed
// by the schema's cascading foreign key.
func (s *PostStore) Delete(id int64) (*models.Post, error) {
	const op = "delete post"

	row := s.db.QueryRow(`DELETE FROM posts WHERE id = $1 RETURNING `+postColumns, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(op, "post not found")
	}
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return p, nil
}
