package handlers

import (
	"log/slog"
	"net/http"

	appErrors "github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	models "github.com/adityanarayanofficial/marketplace-platform/internal/models"
	service "github.com/adityanarayanofficial/marketplace-platform/internal/services"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: utils.NewValidator()}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.categoryService.ListCategories(r.Context())

		if err != nil {
			slog.Error("Failed to fetch categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if categories == nil {
			categories = []models.Category{}
		}

		response.Success(w, http.StatusOK, "Fetched successfully", categories)

	}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateCategoryRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), &req)

		if err != nil {
			slog.Error("Error during category creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Category created", slog.String("categoryId", category.ID.String()))
		response.Success(w, http.StatusCreated, "Category created", category)

	}
}

func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid category id"))
			return
		}

		category, err := h.categoryService.GetCategory(r.Context(), id)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, "Category details fetched", category)

	}
}

func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid category id"))
			return
		}

		var req models.UpdateCategoryRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)

		if err != nil {
			slog.Error("Error during category update", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, "Category updated", category)

	}
}

func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid category id"))
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		slog.Info("Category deleted", slog.String("categoryId", id.String()))
		response.Success(w, http.StatusOK, "Category deleted", nil)

	}
}
