package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	appErrors "github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	"github.com/adityanarayanofficial/marketplace-platform/internal/models"
	repository "github.com/adityanarayanofficial/marketplace-platform/internal/repositories"
	"github.com/adityanarayanofficial/marketplace-platform/internal/repositories/mocks"
	service "github.com/adityanarayanofficial/marketplace-platform/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupProductServiceTest() (*service.ProductService, *mocks.ProductRepository, *mocks.CategoryRepository) {
	mockRepo := new(mocks.ProductRepository)
	mockCategoryRepo := new(mocks.CategoryRepository)

	return service.NewProductService(mockRepo, mockCategoryRepo), mockRepo, mockCategoryRepo
}

func TestProductService_CreateProduct(t *testing.T) {

	t.Run("Success - Product Starts Pending", func(t *testing.T) {

		productService, mockRepo, mockCategoryRepo := setupProductServiceTest()

		ctx := context.Background()
		userID := uuid.New()
		category := &models.Category{ID: uuid.New(), Name: "Electronics"}

		req := &models.CreateProductRequest{
			CategoryID:  category.ID,
			Name:        "Laptop",
			Description: "A laptop",
			Price:       decimal.NewFromFloat(999.99),
			Stock:       10,
		}

		mockCategoryRepo.On("GetCategoryByID", ctx, category.ID).Return(category, nil).Once()
		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		product, err := productService.CreateProduct(ctx, userID, req)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, models.ProductStatusPending, product.Status)
		assert.Equal(t, userID, product.CreatedBy)
		assert.True(t, product.IsActive)
		assert.True(t, product.Price.Equal(req.Price))

		mockRepo.AssertExpectations(t)
		mockCategoryRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {

		productService, mockRepo, mockCategoryRepo := setupProductServiceTest()

		ctx := context.Background()
		categoryID := uuid.New()

		req := &models.CreateProductRequest{
			CategoryID: categoryID,
			Name:       "Laptop",
			Price:      decimal.NewFromFloat(999.99),
		}

		mockCategoryRepo.On("GetCategoryByID", ctx, categoryID).Return(nil, sql.ErrNoRows).Once()

		product, err := productService.CreateProduct(ctx, uuid.New(), req)

		assert.Nil(t, product)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)

		mockRepo.AssertNotCalled(t, "CreateProduct")
		mockCategoryRepo.AssertExpectations(t)
	})

}

func TestProductService_ApproveProduct(t *testing.T) {

	t.Run("Success - Approve", func(t *testing.T) {

		productService, mockRepo, _ := setupProductServiceTest()

		ctx := context.Background()
		id := uuid.New()
		product := &models.Product{ID: id, Status: models.ProductStatusPending}

		mockRepo.On("GetProductByID", ctx, id).Return(product, nil).Once()
		mockRepo.On("UpdateProductStatus", ctx, id, models.ProductStatusApproved).Return(nil).Once()

		status, err := productService.ApproveProduct(ctx, id, models.ProductActionApprove)

		assert.NoError(t, err)
		assert.Equal(t, models.ProductStatusApproved, status)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Reject", func(t *testing.T) {

		productService, mockRepo, _ := setupProductServiceTest()

		ctx := context.Background()
		id := uuid.New()
		product := &models.Product{ID: id, Status: models.ProductStatusPending}

		mockRepo.On("GetProductByID", ctx, id).Return(product, nil).Once()
		mockRepo.On("UpdateProductStatus", ctx, id, models.ProductStatusRejected).Return(nil).Once()

		status, err := productService.ApproveProduct(ctx, id, models.ProductActionReject)

		assert.NoError(t, err)
		assert.Equal(t, models.ProductStatusRejected, status)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Action", func(t *testing.T) {

		productService, mockRepo, _ := setupProductServiceTest()

		status, err := productService.ApproveProduct(context.Background(), uuid.New(), "promote")

		assert.Empty(t, status)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)

		// an invalid action must not touch the row at all
		mockRepo.AssertNotCalled(t, "GetProductByID")
		mockRepo.AssertNotCalled(t, "UpdateProductStatus")
	})

	t.Run("Failure - Product Missing", func(t *testing.T) {

		productService, mockRepo, _ := setupProductServiceTest()

		ctx := context.Background()
		id := uuid.New()

		mockRepo.On("GetProductByID", ctx, id).Return(nil, sql.ErrNoRows).Once()

		status, err := productService.ApproveProduct(ctx, id, models.ProductActionApprove)

		assert.Empty(t, status)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)

		mockRepo.AssertNotCalled(t, "UpdateProductStatus")
		mockRepo.AssertExpectations(t)
	})

}

func TestProductService_UpdateProduct(t *testing.T) {

	t.Run("Success - Partial Update Keeps Other Fields", func(t *testing.T) {

		productService, mockRepo, _ := setupProductServiceTest()

		ctx := context.Background()
		id := uuid.New()
		existing := &models.Product{
			ID:     id,
			Name:   "Laptop",
			Price:  decimal.NewFromFloat(999.99),
			Stock:  10,
			Status: models.ProductStatusApproved,
		}

		newPrice := decimal.NewFromFloat(899.99)

		mockRepo.On("GetProductByID", ctx, id).Return(existing, nil).Once()
		mockRepo.On("UpdateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		product, err := productService.UpdateProduct(ctx, id, &models.UpdateProductRequest{Price: &newPrice})

		assert.NoError(t, err)
		assert.True(t, product.Price.Equal(newPrice))
		assert.Equal(t, "Laptop", product.Name)
		assert.Equal(t, models.ProductStatusApproved, product.Status)

		mockRepo.AssertExpectations(t)
	})

}

func TestProductService_DeleteProduct(t *testing.T) {

	t.Run("Failure - Product On Existing Orders", func(t *testing.T) {

		productService, mockRepo, _ := setupProductServiceTest()

		ctx := context.Background()
		id := uuid.New()

		restrictedErr := fmt.Errorf("delete product: %w", repository.ErrRestricted)
		mockRepo.On("DeleteProduct", ctx, id).Return(restrictedErr).Once()

		err := productService.DeleteProduct(ctx, id)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeConflict, appErr.Code)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Missing", func(t *testing.T) {

		productService, mockRepo, _ := setupProductServiceTest()

		ctx := context.Background()
		id := uuid.New()

		mockRepo.On("DeleteProduct", ctx, id).Return(sql.ErrNoRows).Once()

		err := productService.DeleteProduct(ctx, id)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)

		mockRepo.AssertExpectations(t)
	})

}
