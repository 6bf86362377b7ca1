// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesCreate(t *testing.T) {
	t.Run("returns 201 with the created category", func(t *testing.T) {
		api, mock := newAPI(t)
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO categories`).
			WithArgs("Tech", "tech", nil).
			WillReturnRows(categoryRows().AddRow(1, "Tech", "tech", nil, now, now))

		rr := doJSON(t, api, http.MethodPost, "/api/categories", `{"name":"Tech"}`)
		require.Equal(t, http.StatusCreated, rr.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "tech", body["slug"])

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty name returns 400", func(t *testing.T) {
		api, mock := newAPI(t)

		rr := doJSON(t, api, http.MethodPost, "/api/categories", `{"name":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		api, _ := newAPI(t)

		rr := doJSON(t, api, http.MethodPost, "/api/categories", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate slug returns 409", func(t *testing.T) {
		api, mock := newAPI(t)

		mock.ExpectQuery(`INSERT INTO categories`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "categories_slug_key"})

		rr := doJSON(t, api, http.MethodPost, "/api/categories", `{"name":"Tech"}`)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestCategoriesList(t *testing.T) {
	t.Run("returns 200 with all categories", func(t *testing.T) {
		api, mock := newAPI(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM categories ORDER BY name`).
			WillReturnRows(categoryRows().
				AddRow(1, "Tech", "tech", nil, now, now).
				AddRow(2, "Travel", "travel", nil, now, now))

		rr := doJSON(t, api, http.MethodGet, "/api/categories", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Len(t, body, 2)
	})

	t.Run("storage failure returns a generic 500", func(t *testing.T) {
		api, mock := newAPI(t)

		mock.ExpectQuery(`SELECT (.+) FROM categories`).
			WillReturnError(errors.New("dial tcp: connection refused"))

		rr := doJSON(t, api, http.MethodGet, "/api/categories", "")
		require.Equal(t, http.StatusInternalServerError, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "internal server error", body["error"])
		assert.NotContains(t, rr.Body.String(), "dial tcp")
	})
}

func TestCategoriesGetBySlug(t *testing.T) {
	t.Run("unknown slug returns 404", func(t *testing.T) {
		api, mock := newAPI(t)

		mock.ExpectQuery(`SELECT (.+) FROM categories WHERE slug = \$1`).
			WithArgs("nope").
			WillReturnRows(categoryRows())

		rr := doJSON(t, api, http.MethodGet, "/api/categories/nope", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCategoriesUpdate(t *testing.T) {
	t.Run("non-numeric id returns 400", func(t *testing.T) {
		api, _ := newAPI(t)

		rr := doJSON(t, api, http.MethodPut, "/api/categories/abc", `{"name":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rename returns the category with a fresh slug", func(t *testing.T) {
		api, mock := newAPI(t)
		now := time.Now()

		mock.ExpectQuery(`UPDATE categories SET`).
			WillReturnRows(categoryRows().AddRow(1, "Gear", "gear", nil, now, now))

		rr := doJSON(t, api, http.MethodPut, "/api/categories/1", `{"name":"Gear"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "gear", body["slug"])
	})
}

func TestCategoriesDelete(t *testing.T) {
	t.Run("returns 200 with the deleted category", func(t *testing.T) {
		api, mock := newAPI(t)
		now := time.Now()

		mock.ExpectQuery(`DELETE FROM categories WHERE id = \$1 RETURNING`).
			WithArgs(int64(1)).
			WillReturnRows(categoryRows().AddRow(1, "Tech", "tech", nil, now, now))

		rr := doJSON(t, api, http.MethodDelete, "/api/categories/1", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "tech", body["slug"])
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		api, mock := newAPI(t)

		mock.ExpectQuery(`DELETE FROM categories WHERE id = \$1 RETURNING`).
			WithArgs(int64(99)).
			WillReturnRows(categoryRows())

		rr := doJSON(t, api, http.MethodDelete, "/api/categories/99", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
