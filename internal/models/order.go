package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PriceAtOrder is the snapshot of the product price taken inside the
// placement transaction; later catalog price edits never touch it.
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int64           `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	CreatedAt    time.Time       `json:"created_at"`
}

type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_uuid" validate:"required"`
	Quantity  int64     `json:"quantity" validate:"required,gte=1"`
}

type CreateOrderRequest struct {
	Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}
