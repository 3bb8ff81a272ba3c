package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ppandzharov/blogadmin/internal/common"
	"github.com/ppandzharov/blogadmin/internal/server/models"
	"github.com/ppandzharov/blogadmin/internal/server/services"
)

type postRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Body:      p.Body,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("published") == "true"

	posts, err := s.posts.List(r.Context(), publishedOnly)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Slug == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false})
		return
	}

	post, err := s.posts.Create(r.Context(), services.PostInput{
		Title: req.Title, Slug: req.Slug, Body: req.Body, Published: req.Published,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Slug == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false})
		return
	}

	post, err := s.posts.Update(r.Context(), chi.URLParam(r, "id"), services.PostInput{
		Title: req.Title, Slug: req.Slug, Body: req.Body, Published: req.Published,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.posts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handlePreviewToken issues a signed link for sharing an unpublished draft.
func (s *Server) handlePreviewToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.posts.PreviewToken(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

// handlePreviewPost resolves a preview token without requiring a session.
// Invalid and expired tokens are indistinguishable from missing posts.
func (s *Server) handlePreviewPost(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
		return
	}

	post, err := s.posts.FromPreviewToken(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}
