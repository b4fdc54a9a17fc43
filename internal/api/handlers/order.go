package handlers

import (
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

type OrderHandler struct {
	orderService *service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: utils.NewValidator()}
}

func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())

		if !ok {
			response.Error(w, appErrors.AuthError("Authentication required"))
			return
		}

		var req models.CreateOrderRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), claims.UserID, &req)

		if err != nil {
			slog.Warn("Order placement failed", slog.String("userId", claims.UserID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Order placed", slog.String("orderId", order.ID.String()), slog.String("userId", claims.UserID.String()))
		response.Success(w, http.StatusCreated, "Order placed successfully", order)

	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())

		if !ok {
			response.Error(w, appErrors.AuthError("Authentication required"))
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), claims.UserID)

		if err != nil {
			slog.Error("Failed to fetch orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if orders == nil {
			orders = []models.Order{}
		}

		response.Success(w, http.StatusOK, "Orders fetched", orders)

	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())

		if !ok {
			response.Error(w, appErrors.AuthError("Authentication required"))
			return
		}

		id, err := uuid.Parse(r.PathValue("id"))

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid order id"))
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims.UserID, id)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, "Order detail fetched", order)

	}
}
