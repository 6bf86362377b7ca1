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

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category with a slug derived from its name.
// Name and slug uniqueness are enforced by the schema; violations surface
// as apperr.ErrConflict.
func (s *CategoryStore) Create(name string, description *string) (*models.Category, error) {
	const op = "create category"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation(op, "name is required")
	}
	catSlug := slug.Derive(name)
	if catSlug == "" {
		return nil, apperr.Validation(op, "name must contain at least one letter or digit")
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		name, catSlug, description,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return c, nil
}

// List returns all categories. Callers must not rely on the ordering being
// meaningful beyond being stable.
func (s *CategoryStore) List() ([]models.Category, error) {
	const op = "list categories"

	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY name`)
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperr.FromStorage(op, err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return items, nil
}

// FindBySlug retrieves a category by its slug.
func (s *CategoryStore) FindBySlug(catSlug string) (*models.Category, error) {
	const op = "find category by slug"

	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, catSlug)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(op, "category not found")
	}
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return c, nil
}

// UpdateCategoryInput carries the optional fields of a category update.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// Update modifies an existing category. A new name rederives the slug, which
// replaces the stored one. updated_at is refreshed on every call.
func (s *CategoryStore) Update(id int64, in UpdateCategoryInput) (*models.Category, error) {
	const op = "update category"

	b := psql.Update("categories").Set("updated_at", sq.Expr("now()"))
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation(op, "name is required")
		}
		catSlug := slug.Derive(name)
		if catSlug == "" {
			return nil, apperr.Validation(op, "name must contain at least one letter or digit")
		}
		b = b.Set("name", name).Set("slug", catSlug)
	}
	if in.Description != nil {
		b = b.Set("description", *in.Description)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + categoryColumns).
		ToSql()
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}

	c, err := scanCategory(s.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(op, "category not found")
	}
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return c, nil
}

// Delete removes a category and returns the deleted row. Links referencing
// it are removed by the schema's cascading foreign key.
func (s *CategoryStore) Delete(id int64) (*models.Category, error) {
	const op = "delete category"

	row := s.db.QueryRow(`DELETE FROM categories WHERE id = $1 RETURNING `+categoryColumns, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(op, "category not found")
	}
	if err != nil {
		return nil, apperr.FromStorage(op, err)
	}
	return c, nil
}
