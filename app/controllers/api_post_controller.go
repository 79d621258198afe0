package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"miniblog/app/middleware"
	"miniblog/app/models"
	"miniblog/app/repositories"
	"miniblog/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// APIPostController handles the JSON surface for blog posts. Same entity
// and ownership rules as the web surface, but errors become status codes
// instead of redirects and rendered pages.
type APIPostController struct {
	posts *services.PostService
	log   *zap.Logger
}

// NewAPIPostController creates a new APIPostController
func NewAPIPostController(posts *services.PostService, log *zap.Logger) *APIPostController {
	return &APIPostController{posts: posts, log: log}
}

// postRequest carries a create or update payload. Pointer fields
// distinguish an absent key from an explicit empty string, which is what
// partial updates key off.
type postRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// Index lists all posts, newest first. Unlike the web listing there is no
// limit.
func (ac *APIPostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := ac.posts.ListPosts(0)
	if err != nil {
		ac.log.Error("list posts failed", zap.Error(err))
		ac.sendError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	ac.sendJSON(w, http.StatusOK, posts)
}

// Show returns a single post by ID.
func (ac *APIPostController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := ac.posts.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		ac.sendError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		ac.log.Error("get post failed", zap.Error(err))
		ac.sendError(w, http.StatusInternalServerError, "Server error")
		return
	}

	ac.sendJSON(w, http.StatusOK, post)
}

// Create creates a post owned by the authenticated user. Missing title or
// body is a 400.
func (ac *APIPostController) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ac.sendError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var title, body string
	if req.Title != nil {
		title = *req.Title
	}
	if req.Body != nil {
		body = *req.Body
	}

	session := middleware.CurrentSession(r)
	post, err := ac.posts.CreatePost(title, body, session.UserID)
	if errors.Is(err, services.ErrValidation) {
		ac.sendError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if err != nil {
		ac.log.Error("create post failed", zap.Error(err))
		ac.sendError(w, http.StatusInternalServerError, "Server error")
		return
	}

	ac.sendJSON(w, http.StatusCreated, post)
}

// Update merges the provided fields into the post. Keys absent from the
// payload preserve their stored values.
func (ac *APIPostController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ac.sendError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	session := middleware.CurrentSession(r)
	post, err := ac.posts.PatchPost(id, session.UserID, req.Title, req.Body)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		ac.sendError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrForbidden):
		ac.sendError(w, http.StatusForbidden, "Forbidden")
	case err != nil:
		ac.log.Error("update post failed", zap.Error(err))
		ac.sendError(w, http.StatusInternalServerError, "Server error")
	default:
		ac.sendJSON(w, http.StatusOK, post)
	}
}

// Delete removes the post and acknowledges with a success flag.
func (ac *APIPostController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	session := middleware.CurrentSession(r)

	err := ac.posts.DeletePost(id, session.UserID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		ac.sendError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrForbidden):
		ac.sendError(w, http.StatusForbidden, "Forbidden")
	case err != nil:
		ac.log.Error("delete post failed", zap.Error(err))
		ac.sendError(w, http.StatusInternalServerError, "Server error")
	default:
		ac.sendJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// Helper methods for consistent response handling

func (ac *APIPostController) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (ac *APIPostController) sendError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
