// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the closed set of error kinds the application
// reports. Every store operation returns one of these kinds so callers can
// branch on errors.Is without inspecting driver internals, and handlers can
// map each kind to a distinct HTTP status.
package apperr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds. These are the only error identities that cross the store
// boundary.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrStorage    = errors.New("storage failure")
)

// Error carries an error kind together with the operation that failed and a
// caller-safe detail message. The underlying cause is retained for logging
// but never shown to API callers.
type Error struct {
	Kind   error  // one of the sentinel kinds above
	Op     string // operation that failed, e.g. "create post"
	Detail string // caller-safe description
	Cause  error  // underlying error, if any
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the kind so errors.Is(err, apperr.ErrNotFound) matches.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Validation returns a new validation error for malformed or empty input.
func Validation(op, detail string) error {
	return &Error{Kind: ErrValidation, Op: op, Detail: detail}
}

// NotFound returns a new not-found error for an absent id or slug.
func NotFound(op, detail string) error {
	return &Error{Kind: ErrNotFound, Op: op, Detail: detail}
}

// Conflict returns a new conflict error for a uniqueness violation.
func Conflict(op, detail string) error {
	return &Error{Kind: ErrConflict, Op: op, Detail: detail}
}

// PostgreSQL SQLSTATE codes relevant to classification.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromStorage classifies an error returned by the database layer into one of
// the application error kinds. sql.ErrNoRows becomes ErrNotFound, unique
// violations become ErrConflict, foreign key violations become ErrValidation
// (the caller referenced a nonexistent row), and everything else — dead
// connections, timeouts, malformed statements — becomes ErrStorage.
func FromStorage(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Kind: ErrNotFound, Op: op, Detail: "record not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{
				Kind:   ErrConflict,
				Op:     op,
				Detail: fmt.Sprintf("duplicate value violates %q", pgErr.ConstraintName),
				Cause:  err,
			}
		case pgForeignKeyViolation:
			return &Error{
				Kind:   ErrValidation,
				Op:     op,
				Detail: "referenced record does not exist",
				Cause:  err,
			}
		}
	}

	return &Error{Kind: ErrStorage, Op: op, Cause: err}
}

// UserMessage returns the message safe to expose to API callers. Storage
// errors and unclassified errors collapse to a generic message so raw driver
// detail never leaks into responses.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && !errors.Is(appErr.Kind, ErrStorage) {
		if appErr.Detail != "" {
			return appErr.Detail
		}
		return appErr.Kind.Error()
	}
	return "internal server error"
}
