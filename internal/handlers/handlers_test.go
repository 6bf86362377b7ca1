// handlers_test.go provides a shared test harness: the API mounted on a
// Chi router backed by a sqlmock database, so status-code mapping can be
// verified without PostgreSQL.
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"inkwell/internal/store"
)

// newAPI mounts the category and post handlers on a fresh router backed by
// a sqlmock database.
func newAPI(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	categories := NewCategories(store.NewCategoryStore(db))
	posts := NewPosts(store.NewPostStore(db))

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Get("/{slug}", categories.GetBySlug)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Post("/", posts.Create)
			r.Get("/slug/{slug}", posts.GetBySlug)
			r.Get("/{id}", posts.GetByID)
			r.Put("/{id}", posts.Update)
			r.Delete("/{id}", posts.Delete)
		})
	})
	return r, mock
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// categoryRows returns the column set the category store scans.
func categoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"})
}

// postRows returns the column set the post store scans.
func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "content", "slug", "status", "created_at", "updated_at"})
}
