package service

import (
	"context"
	stderrors "errors"

	"github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	repository "github.com/adityanarayanofficial/marketplace-platform/internal/repositories"
	"github.com/google/uuid"
)

type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// CreateOrder places an order atomically: either the order and every item
// land, or nothing does. A missing product rolls the whole write back.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {

	if len(req.Items) == 0 {
		return nil, errors.ValidationError("Order must have at least one item")
	}

	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, errors.ValidationError("Quantity must be at least 1")
		}
	}

	order, err := s.repo.CreateOrder(ctx, userID, req.Items)

	if err != nil {

		if stderrors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.NotFoundError("One or more products not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create order").WithError(err)

	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {

	order, err := s.repo.GetOrderForUser(ctx, id, userID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {

	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}
