package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adityanarayanofficial/marketplace-platform/internal/api/handlers"
	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	repository "github.com/adityanarayanofficial/marketplace-platform/internal/repositories"
	"github.com/adityanarayanofficial/marketplace-platform/internal/repositories/mocks"
	service "github.com/adityanarayanofficial/marketplace-platform/internal/services"
	"github.com/adityanarayanofficial/marketplace-platform/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupOrderTest() (*mocks.OrderRepository, *handlers.OrderHandler) {
	mockRepo := new(mocks.OrderRepository)
	orderService := service.NewOrderService(mockRepo)

	return mockRepo, handlers.NewOrderHandler(orderService)
}

func TestOrderHandler_CreateOrder(t *testing.T) {

	t.Run("Success - Order Placed", func(t *testing.T) {

		mockRepo, handler := setupOrderTest()

		userID := uuid.New()
		productID := uuid.New()

		placed := &models.Order{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.OrderItem{
				{ProductID: productID, Quantity: 2, PriceAtOrder: decimal.NewFromFloat(49.99)},
			},
		}

		mockRepo.On("CreateOrder", mock.Anything, userID, mock.AnythingOfType("[]models.OrderItemInput")).Return(placed, nil).Once()

		body := []byte(fmt.Sprintf(`{"items": [{"product_uuid": %q, "quantity": 2}]}`, productID))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders/create", bytes.NewReader(body), userID, models.RoleAgent, nil)
		rec := httptest.NewRecorder()

		handler.CreateOrder().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, "Order placed successfully", envelope["message"])

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Empty Items", func(t *testing.T) {

		mockRepo, handler := setupOrderTest()

		body := []byte(`{"items": []}`)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders/create", bytes.NewReader(body), uuid.New(), models.RoleAgent, nil)
		rec := httptest.NewRecorder()

		handler.CreateOrder().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockRepo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Failure - Unknown Product Maps To 404", func(t *testing.T) {

		mockRepo, handler := setupOrderTest()

		userID := uuid.New()
		productID := uuid.New()

		notFoundErr := fmt.Errorf("order item: %w", repository.ErrProductNotFound)
		mockRepo.On("CreateOrder", mock.Anything, userID, mock.AnythingOfType("[]models.OrderItemInput")).Return(nil, notFoundErr).Once()

		body := []byte(fmt.Sprintf(`{"items": [{"product_uuid": %q, "quantity": 1}]}`, productID))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders/create", bytes.NewReader(body), userID, models.RoleAgent, nil)
		rec := httptest.NewRecorder()

		handler.CreateOrder().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, "One or more products not found", envelope["message"])

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - No Authentication Context", func(t *testing.T) {

		mockRepo, handler := setupOrderTest()

		body := []byte(`{"items": [{"product_uuid": "x", "quantity": 1}]}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/orders/create", bytes.NewReader(body), nil)
		rec := httptest.NewRecorder()

		handler.CreateOrder().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockRepo.AssertNotCalled(t, "CreateOrder")
	})

}

func TestOrderHandler_ListOrders(t *testing.T) {

	t.Run("Success - Scoped To Caller", func(t *testing.T) {

		mockRepo, handler := setupOrderTest()

		userID := uuid.New()

		mockRepo.On("ListOrdersByUser", mock.Anything, userID).Return([]models.Order{{ID: uuid.New(), UserID: userID}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/orders", nil, userID, models.RoleAgent, nil)
		rec := httptest.NewRecorder()

		handler.ListOrders().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, "Orders fetched", envelope["message"])

		mockRepo.AssertExpectations(t)
	})

}
