package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound marks an order item whose product id did not resolve;
// the surrounding transaction is rolled back so nothing is persisted.
var ErrProductNotFound = errors.New("product not found")

type OrderRepository interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderItemInput) (*models.Order, error)
	GetOrderForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder writes the order and all of its items in one transaction.
// Each item's price_at_order is the product price read inside the same
// transaction; the read takes no row lock, so a concurrent price edit may
// land on either side of the snapshot.
func (r *orderRepository) CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderItemInput) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback() //nolint:errcheck // no-op after commit

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
	}

	insertOrder := `
		INSERT INTO orders (id, user_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING created_at, updated_at`

	if err := tx.QueryRowContext(dbCtx, insertOrder, order.ID, order.UserID).Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	selectPrice := `SELECT name, price FROM products WHERE id = $1`

	insertItem := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price_at_order, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`

	for _, input := range items {

		var name string
		var price decimal.Decimal

		err := tx.QueryRowContext(dbCtx, selectPrice, input.ProductID).Scan(&name, &price)

		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", input.ProductID, ErrProductNotFound)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %s: %w", input.ProductID, err)
		}

		item := models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    input.ProductID,
			ProductName:  name,
			Quantity:     input.Quantity,
			PriceAtOrder: price,
		}

		if err := tx.QueryRowContext(dbCtx, insertItem, item.ID, item.OrderID, item.ProductID, item.Quantity, item.PriceAtOrder).Scan(&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}

		order.Items = append(order.Items, item)

	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) GetOrderForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{
		ID:     id,
		UserID: userID,
	}

	query := `
		SELECT created_at, updated_at
		FROM orders
		WHERE id = $1 AND user_id = $2`

	err := r.DB.QueryRowContext(dbCtx, query, id, userID).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return nil, err
	}

	items, err := r.itemsForOrder(dbCtx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)

	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		order := models.Order{
			UserID: userID,
		}

		if err := rows.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)

	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {

		items, err := r.itemsForOrder(dbCtx, orders[i].ID)
		if err != nil {
			return nil, err
		}

		orders[i].Items = items

	}

	return orders, nil
}

func (r *orderRepository) itemsForOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {

	query := `
		SELECT i.id, i.product_id, p.name, i.quantity, i.price_at_order, i.created_at
		FROM order_items i
		JOIN products p ON i.product_id = p.id
		WHERE i.order_id = $1
		ORDER BY i.created_at`

	rows, err := r.DB.QueryContext(ctx, query, orderID)

	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {

		item := models.OrderItem{
			OrderID: orderID,
		}

		err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.PriceAtOrder, &item.CreatedAt)

		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)

	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
