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

// CategoriesHandler serves category CRUD and listing requests.
type CategoriesHandler struct {
	logger     *slog.Logger
	categories storage.CategoryStorage
}

// NewCategoriesHandler creates a new categories handler
func NewCategoriesHandler(logger *slog.Logger, categories storage.CategoryStorage) *CategoriesHandler {
	return &CategoriesHandler{logger: logger, categories: categories}
}

// Create handles POST /api/categories
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create category request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		sendError(h.logger, w, "Bad request", http.StatusBadRequest)
		return
	}

	claims, err := identity(r)
	if err != nil {
		sendError(h.logger, w, "Invalid token", http.StatusBadRequest)
		return
	}

	category := &models.Category{
		ID:        uuid.New().String(),
		UserID:    claims.UserID,
		Title:     req.Title,
		CreatedAt: time.Now(),
	}

	if err := h.categories.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, storage.ErrCategoryAlreadyExists) {
			sendError(h.logger, w, "The category has already been created", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create category", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, category, http.StatusOK)
}

// List handles GET /api/categories?limit&title
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := storage.CategoryFilter{
		TitlePrefix: r.URL.Query().Get("title"),
		Limit:       parseLimit(r.URL.Query().Get("limit")),
	}

	categories, total, err := h.categories.ListCategories(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list categories", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.CategoryListResponse{Data: categories, Total: total}, http.StatusOK)
}

// Update handles PUT /api/categories/{id}
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update category request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.categories.GetCategory(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			sendError(h.logger, w, "Category does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get category", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	if err := h.categories.UpdateCategory(ctx, category.ID, req.Title); err != nil {
		switch {
		case errors.Is(err, storage.ErrCategoryNotFound):
			sendError(h.logger, w, "Category does not exist", http.StatusBadRequest)
		case errors.Is(err, storage.ErrCategoryAlreadyExists):
			sendError(h.logger, w, "The category has already been created", http.StatusBadRequest)
		default:
			h.logger.ErrorContext(ctx, "failed to update category", slog.Any("error", err))
			sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		}
		return
	}

	category.Title = req.Title

	sendJSON(h.logger, w, category, http.StatusOK)
}

// Delete handles DELETE /api/categories/{id}
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.categories.DeleteCategory(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			sendError(h.logger, w, "Category does not exist", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete category", slog.Any("error", err))
		sendError(h.logger, w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Category successfully deleted"}, http.StatusOK)
}
