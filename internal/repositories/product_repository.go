package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils"
	"github.com/google/uuid"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByCreator(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	UpdateProductStatus(ctx context.Context, id uuid.UUID, status models.ProductStatus) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (id, category_id, name, description, price, stock, is_active, status, created_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			  RETURNING created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.ID, product.CategoryID, product.Name, product.Description, product.Price, product.Stock, product.IsActive, product.Status, product.CreatedBy).
		Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
        SELECT p.id, p.category_id, p.name, p.description, p.price,
               p.stock, p.is_active, p.status, p.created_by, p.created_at, p.updated_at,
               c.id, c.name, c.description
        FROM products p
        LEFT JOIN categories c ON p.category_id = c.id
        WHERE p.id = $1`

	var category models.Category

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.IsActive, &product.Status, &product.CreatedBy, &product.CreatedAt, &product.UpdatedAt,
			&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, err
	}

	product.Category = &category

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.category_id, p.name, p.description, p.price,
		p.stock, p.is_active, p.status, p.created_by, p.created_at, p.updated_at,
		c.id, c.name, c.description
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.created_at DESC`

	return r.scanProducts(r.DB.QueryContext(dbCtx, query))
}

func (r *productRepository) ListProductsByCreator(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.category_id, p.name, p.description, p.price,
		p.stock, p.is_active, p.status, p.created_by, p.created_at, p.updated_at,
		c.id, c.name, c.description
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.created_by = $1
		ORDER BY p.created_at DESC`

	return r.scanProducts(r.DB.QueryContext(dbCtx, query, userID))
}

func (r *productRepository) scanProducts(rows *sql.Rows, err error) ([]models.Product, error) {

	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {
		var product models.Product
		var category models.Category

		err := rows.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.IsActive, &product.Status, &product.CreatedBy, &product.CreatedAt, &product.UpdatedAt,
			&category.ID, &category.Name, &category.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		product.Category = &category
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET category_id = $1, name = $2, description = $3, price = $4, stock = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.Price, product.Stock, product.IsActive, product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepository) UpdateProductStatus(ctx context.Context, id uuid.UUID, status models.ProductStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, status, id)

	if err != nil {
		return fmt.Errorf("failed to update product status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteProduct fails with ErrRestricted when the product appears on a
// placed order; order lines are immutable history.
func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM products WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, id)

	if isForeignKeyViolation(err) {
		return fmt.Errorf("product %s: %w", id, ErrRestricted)
	}

	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
