package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/skillsage/backend/internal/models"
	"github.com/skillsage/backend/internal/server/storage"
	"github.com/skillsage/backend/pkg/api"
)

// PostsHandler serves post CRUD and listing requests.
type PostsHandler struct {
	logger *slog.Logger
	posts  storage.PostStorage
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(logger *slog.Logger, posts storage.PostStorage) *PostsHandler {
	return &PostsHandler{logger: logger, posts: posts}
}

// Create handles POST /api/posts
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create post request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Description == "" || req.CategoryID == "" {
		sendError(h.logger, w, "Bad request", http.StatusBadRequest)
		return
	}

	claims, err := identity(r)
	if err != nil {
		sendError(h.logger, w, "Invalid token", http.StatusBadRequest)
		return
	}

	post := &models.Post{
		ID:          uuid.New().String(),
		UserID:      claims.UserID,
		CategoryID:  &req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := h.posts.CreatePost(ctx, post); err != nil {
		h.logger.ErrorContext(ctx, "failed to create post", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, post, http.StatusOK)
}

// List handles GET /api/posts?limit&title&sort_variant&category_id&user_id
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := storage.PostFilter{
		TitlePrefix: r.URL.Query().Get("title"),
		Sort:        storage.ParseSortVariant(r.URL.Query().Get("sort_variant")),
		Limit:       parseLimit(r.URL.Query().Get("limit")),
	}

	if v := r.URL.Query().Get("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		filter.UserID = &v
	}

	if claims, err := identity(r); err == nil {
		filter.ViewerID = claims.UserID
	}

	posts, total, err := h.posts.ListPosts(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list posts", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.PostListResponse{Data: posts, Total: total}, http.StatusOK)
}

// Get handles GET /api/posts/{id}
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewerID := ""
	if claims, err := identity(r); err == nil {
		viewerID = claims.UserID
	}

	post, err := h.posts.GetPostWithStats(ctx, r.PathValue("id"), viewerID)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "Post does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get post", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, post, http.StatusOK)
}

// Update handles PUT /api/posts/{id}
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update post request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.posts.GetPost(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "Post does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get post", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	post.Title = req.Title
	post.Description = req.Description
	post.CategoryID = req.CategoryID

	if err := h.posts.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "Post does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update post", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, post, http.StatusOK)
}

// Delete handles DELETE /api/posts/{id}
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.posts.DeletePost(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "Post does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete post", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Post successfully deleted"}, http.StatusOK)
}

// parseLimit parses the limit query parameter, defaulting to 10.
func parseLimit(s string) int {
	if s == "" {
		return 10
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return 10
	}
	return limit
}
