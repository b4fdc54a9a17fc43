package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/adityanarayanofficial/marketplace-platform/internal/config"
	"github.com/lib/pq"
)

// Sentinel errors surfaced by the repositories so services can map
// database constraint violations onto the error taxonomy.
var (
	ErrDuplicate  = errors.New("duplicate entry")
	ErrRestricted = errors.New("referenced by other rows")
)

type Repository struct {
	DB       *sql.DB
	User     UserRepository
	Category CategoryRepository
	Product  ProductRepository
	Order    OrderRepository
}

func New(cfg *config.Config) (*Repository, error) {

	db, err := sql.Open("postgres", cfg.Database.GetDSN())

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:       db,
		User:     NewUserRepo(db),
		Category: NewCategoryRepo(db),
		Product:  NewProductRepo(db),
		Order:    NewOrderRepo(db),
	}, nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}

// Postgres error class 23505 (unique_violation)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Postgres error class 23503 (foreign_key_violation)
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
