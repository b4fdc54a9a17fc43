package repository

import (
	"context"
	"database/sql"
	"fmt"

	models "github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Activate(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users(id, email, password, first_name, last_name, role, is_active, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, user.ID, user.Email, user.Password, user.FirstName, user.LastName, user.Role, user.IsActive).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("email %s: %w", user.Email, ErrDuplicate)
	}

	return err

}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users
			  WHERE email = $1`

	err := r.DB.QueryRowContext(dbCtx, query, email).
		Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil

}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
	SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
	FROM users
	WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil

}

// Activate flips is_active; the transition is one-way through this code
// path, there is no corresponding deactivate.
func (r *userRepository) Activate(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET is_active = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, id)

	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
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
