package service

import (
	"context"
	stderrors "errors"

	"github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	repository "github.com/adityanarayanofficial/marketplace-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	sanitizer    *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

// CreateProduct records the caller as creator and forces status to
// pending; only the approval action moves it from there.
func (s *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {

	category, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, errors.ValidationError("Invalid category UUID").WithError(err)
	}

	product := &models.Product{
		ID:          uuid.New(),
		CategoryID:  category.ID,
		Name:        req.Name,
		Description: s.sanitizer.Sanitize(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    true,
		Status:      models.ProductStatusPending,
		CreatedBy:   userID,
		Category:    category,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *ProductService) ListMyProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {

	products, err := s.repo.ListProductsByCreator(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.CategoryID != nil {

		category, err := s.categoryRepo.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, errors.ValidationError("Invalid category UUID").WithError(err)
		}

		product.CategoryID = category.ID
		product.Category = category

	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	err := s.repo.DeleteProduct(ctx, id)

	if err != nil {

		if stderrors.Is(err, repository.ErrRestricted) {
			return errors.ConflictError("Product appears on existing orders").WithError(err)
		}

		return errors.NotFoundError("Product not found").WithError(err)

	}

	return nil
}

// ApproveProduct applies an approve/reject action. Any action outside the
// two-element set is rejected without touching the row. There is no
// forward-only guard: a rejected product may be approved later and vice
// versa, repeats are idempotent.
func (s *ProductService) ApproveProduct(ctx context.Context, id uuid.UUID, action string) (models.ProductStatus, error) {

	var status models.ProductStatus

	switch action {
	case models.ProductActionApprove:
		status = models.ProductStatusApproved
	case models.ProductActionReject:
		status = models.ProductStatusRejected
	default:
		return "", errors.ValidationError("Invalid action")
	}

	if _, err := s.repo.GetProductByID(ctx, id); err != nil {
		return "", errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.repo.UpdateProductStatus(ctx, id, status); err != nil {
		return "", errors.DatabaseError("Failed to update product status").WithError(err)
	}

	return status, nil
}
