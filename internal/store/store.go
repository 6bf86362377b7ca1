// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the content-relationship management layer:
// CRUD over posts and categories, atomic replacement of the post ↔ category
// link set, and enriched read composition. All errors crossing this boundary
// are apperr kinds.
package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"inkwell/internal/apperr"
)

// psql builds statements with PostgreSQL $n placeholders. Static queries
// stay as plain SQL strings; the builder is used where the statement shape
// depends on the input (partial updates, IN sets).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// withTx runs fn inside a transaction: begin, run the unit of work, commit.
// The deferred Rollback is a no-op after a successful commit and guarantees
// rollback when fn fails or panics, so a partially-applied multi-table
// mutation is never observable.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return apperr.FromStorage("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperr.FromStorage("commit transaction", err)
	}
	return nil
}
