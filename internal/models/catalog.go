package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

type ProductStatus string

const (
	ProductStatusPending   ProductStatus = "pending"
	ProductStatusApproved  ProductStatus = "approved"
	ProductStatusRejected  ProductStatus = "rejected"
	ProductStatusCancelled ProductStatus = "cancelled"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	IsActive    bool            `json:"is_active"`
	Status      ProductStatus   `json:"status"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Category    *Category       `json:"category,omitempty"`
}

type CreateProductRequest struct {
	CategoryID  uuid.UUID       `json:"category" validate:"required"`
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int64           `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	CategoryID  *uuid.UUID       `json:"category,omitempty"`
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int64           `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

const (
	ProductActionApprove = "approve"
	ProductActionReject  = "reject"
)

type ProductApprovalRequest struct {
	Action string `json:"action" validate:"required"`
}
