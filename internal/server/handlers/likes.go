package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillsage/backend/internal/server/storage"
	"github.com/skillsage/backend/pkg/api"
)

// LikesHandler serves like/dislike requests for posts and comments through a
// single endpoint; the request body names exactly one target.
type LikesHandler struct {
	logger *slog.Logger
	likes  storage.LikeStorage
}

// NewLikesHandler creates a new likes handler
func NewLikesHandler(logger *slog.Logger, likes storage.LikeStorage) *LikesHandler {
	return &LikesHandler{logger: logger, likes: likes}
}

// decodeTarget reads the request body and resolves its tagged target.
// Zero or both target ids is a caller contract violation, rejected here.
func (h *LikesHandler) decodeTarget(w http.ResponseWriter, r *http.Request) (api.LikeRequest, storage.LikeTarget, bool) {
	var req api.LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to decode like request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return req, storage.LikeTarget{}, false
	}

	target, err := storage.NewLikeTarget(req.PostID, req.CommentID)
	if err != nil {
		sendError(h.logger, w, "Exactly one of post_id or comment_id must be provided", http.StatusBadRequest)
		return req, storage.LikeTarget{}, false
	}

	return req, target, true
}

// Create handles POST /api/likes
func (h *LikesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, target, ok := h.decodeTarget(w, r)
	if !ok {
		return
	}

	claims, err := identity(r)
	if err != nil {
		sendError(h.logger, w, "Invalid token", http.StatusBadRequest)
		return
	}

	if err := h.likes.CreateLike(ctx, target, claims.UserID, req.Liked); err != nil {
		if errors.Is(err, storage.ErrLikeAlreadyExists) {
			sendError(h.logger, w, "Like already exists", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create like", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Like successfully created"}, http.StatusOK)
}

// Get handles GET /api/likes: like/dislike totals for the target plus the
// requesting user's own state (null when the user has no reaction).
func (h *LikesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, target, ok := h.decodeTarget(w, r)
	if !ok {
		return
	}

	viewerID := ""
	if claims, err := identity(r); err == nil {
		viewerID = claims.UserID
	}

	summary, err := h.likes.GetLikeSummary(ctx, target, viewerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get like summary", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, summary, http.StatusOK)
}

// Update handles PUT /api/likes
func (h *LikesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, target, ok := h.decodeTarget(w, r)
	if !ok {
		return
	}

	claims, err := identity(r)
	if err != nil {
		sendError(h.logger, w, "Invalid token", http.StatusBadRequest)
		return
	}

	if err := h.likes.UpdateLike(ctx, target, claims.UserID, req.Liked); err != nil {
		if errors.Is(err, storage.ErrLikeNotFound) {
			sendError(h.logger, w, "Like does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update like", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Like successfully updated"}, http.StatusOK)
}

// Delete handles DELETE /api/likes
func (h *LikesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, target, ok := h.decodeTarget(w, r)
	if !ok {
		return
	}

	claims, err := identity(r)
	if err != nil {
		sendError(h.logger, w, "Invalid token", http.StatusBadRequest)
		return
	}

	if err := h.likes.DeleteLike(ctx, target, claims.UserID); err != nil {
		if errors.Is(err, storage.ErrLikeNotFound) {
			sendError(h.logger, w, "Like does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete like", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Like successfully deleted"}, http.StatusOK)
}
