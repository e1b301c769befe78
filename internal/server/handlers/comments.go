package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skillsage/backend/internal/models"
	"github.com/skillsage/backend/internal/server/storage"
	"github.com/skillsage/backend/pkg/api"
)

// CommentsHandler serves comment CRUD and listing requests.
type CommentsHandler struct {
	logger   *slog.Logger
	comments storage.CommentStorage
}

// NewCommentsHandler creates a new comments handler
func NewCommentsHandler(logger *slog.Logger, comments storage.CommentStorage) *CommentsHandler {
	return &CommentsHandler{logger: logger, comments: comments}
}

// Create handles POST /api/comments
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create comment request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text == "" || req.PostID == "" {
		sendError(h.logger, w, "Bad request", http.StatusBadRequest)
		return
	}

	claims, err := identity(r)
	if err != nil {
		sendError(h.logger, w, "Invalid token", http.StatusBadRequest)
		return
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		PostID:    req.PostID,
		UserID:    claims.UserID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if err := h.comments.CreateComment(ctx, comment); err != nil {
		h.logger.ErrorContext(ctx, "failed to create comment", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, comment, http.StatusOK)
}

// List handles GET /api/comments?limit&sort_variant
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := storage.CommentFilter{
		Sort:  storage.ParseSortVariant(r.URL.Query().Get("sort_variant")),
		Limit: parseLimit(r.URL.Query().Get("limit")),
	}

	if claims, err := identity(r); err == nil {
		filter.ViewerID = claims.UserID
	}

	comments, total, err := h.comments.ListComments(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list comments", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.CommentListResponse{Data: comments, Total: total}, http.StatusOK)
}

// Get handles GET /api/comments/{id}
func (h *CommentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewerID := ""
	if claims, err := identity(r); err == nil {
		viewerID = claims.UserID
	}

	comment, err := h.comments.GetCommentWithStats(ctx, r.PathValue("id"), viewerID)
	if err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			sendError(h.logger, w, "Comment does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get comment", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, comment, http.StatusOK)
}

// Update handles PUT /api/comments/{id}
func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update comment request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.comments.GetComment(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			sendError(h.logger, w, "Comment does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get comment", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	if err := h.comments.UpdateComment(ctx, comment.ID, req.Text); err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			sendError(h.logger, w, "Comment does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update comment", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	comment.Text = req.Text

	sendJSON(h.logger, w, comment, http.StatusOK)
}

// Delete handles DELETE /api/comments/{id}
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.comments.DeleteComment(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			sendError(h.logger, w, "Comment does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete comment", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Comment successfully deleted"}, http.StatusOK)
}
