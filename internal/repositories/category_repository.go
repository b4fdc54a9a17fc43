package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils"
	"github.com/google/uuid"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, category.ID, category.Name, category.Description).
		Scan(&category.CreatedAt, &category.UpdatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("category name %q: %w", category.Name, ErrDuplicate)
	}

	return err
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		ORDER BY name`

	rows, err := r.DB.QueryContext(dbCtx, query)

	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	defer rows.Close()

	var categories []models.Category

	for rows.Next() {

		var category models.Category

		err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)

		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, category)

	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE categories SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, category.Name, category.Description, category.ID).
		Scan(&category.UpdatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("category name %q: %w", category.Name, ErrDuplicate)
	}

	return err
}

// DeleteCategory cascades to the category's products at the schema level.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, id)

	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
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
