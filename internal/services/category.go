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

type CategoryService struct {
	repo      repository.CategoryRepository
	sanitizer *bluemonday.Policy
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: s.sanitizer.Sanitize(req.Description),
	}

	err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateEntryError("Category name already exists")
		}

		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}

	if req.Description != nil {
		category.Description = s.sanitizer.Sanitize(*req.Description)
	}

	err = s.repo.UpdateCategory(ctx, category)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateEntryError("Category name already exists")
		}

		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return errors.NotFoundError("Category not found").WithError(err)
	}

	return nil
}
