package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	appErrors "github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	"github.com/adityanarayanofficial/marketplace-platform/internal/api/middleware"
	models "github.com/adityanarayanofficial/marketplace-platform/internal/models"
	service "github.com/adityanarayanofficial/marketplace-platform/internal/services"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService *service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: utils.NewValidator()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())

		if !ok {
			response.Error(w, appErrors.AuthError("Authentication required"))
			return
		}

		var req models.CreateProductRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), claims.UserID, &req)

		if err != nil {
			slog.Error("Error during product creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Product created", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusCreated, "Product created", product)

	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, "Product details fetched", product)

	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.productService.ListProducts(r.Context())

		if err != nil {
			slog.Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if products == nil {
			products = []models.Product{}
		}

		response.Success(w, http.StatusOK, "Products fetched", products)

	}
}

func (h *ProductHandler) ListMyProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())

		if !ok {
			response.Error(w, appErrors.AuthError("Authentication required"))
			return
		}

		products, err := h.productService.ListMyProducts(r.Context(), claims.UserID)

		if err != nil {
			slog.Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if products == nil {
			products = []models.Product{}
		}

		response.Success(w, http.StatusOK, "Your uploaded products", products)

	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		var req models.UpdateProductRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)

		if err != nil {
			slog.Error("Error during product update", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, "Product updated", product)

	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		slog.Info("Product deleted", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, "Product deleted", nil)

	}
}

// ApproveProduct handles the approve/reject action for admin and staff.
func (h *ProductHandler) ApproveProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		var req models.ProductApprovalRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		status, err := h.productService.ApproveProduct(r.Context(), id, req.Action)

		if err != nil {
			slog.Warn("Product approval failed", slog.String("productId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Product status updated", slog.String("productId", id.String()), slog.String("status", string(status)))
		response.Success(w, http.StatusOK, fmt.Sprintf("Product %s successfully", status), nil)

	}
}
