// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Posts handles post API requests.
type Posts struct {
	store *store.PostStore
}

// NewPosts creates a new posts handler group.
func NewPosts(s *store.PostStore) *Posts {
	return &Posts{store: s}
}

type createPostRequest struct {
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Status      models.PostStatus `json:"status"`
	CategoryIDs []int64           `json:"category_ids"`
}

type updatePostRequest struct {
	Title       *string            `json:"title"`
	Content     *string            `json:"content"`
	Status      *models.PostStatus `json:"status"`
	CategoryIDs []int64            `json:"category_ids"`
}

// Create handles POST /api/posts.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.store.Create(store.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Status:      req.Status,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, normalized(post))
}

// List handles GET /api/posts with an optional ?category={id} filter.
// Every returned post carries its resolved categories.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		categoryID = &id
	}

	posts, err := h.store.ListEnriched(categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetByID handles GET /api/posts/{id}.
func (h *Posts) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.store.FindEnrichedByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetBySlug handles GET /api/posts/slug/{slug}.
func (h *Posts) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.FindEnrichedBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Update handles PUT /api/posts/{id}. Omitting category_ids leaves the
// link set unchanged; sending an empty array clears it.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.store.Update(id, store.UpdatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Status:      req.Status,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, normalized(post))
}

// Delete handles DELETE /api/posts/{id}. The deleted post is returned.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.store.Delete(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, normalized(post))
}

// normalized guarantees the categories field encodes as [] rather than null
// on mutation responses, which return the bare post row.
func normalized(p *models.Post) *models.Post {
	if p.Categories == nil {
		p.Categories = []models.Category{}
	}
	return p
}
