package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(search string) ([]models.Product, error) {
	args := m.Called(search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(id string, fields map[string]interface{}) (*models.Product, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Save(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_GetProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockUserRepository))

	expected := []models.Product{
		{ID: "1", Name: "Test Widget", Price: 10.0, CountInStock: 100},
		{ID: "2", Name: "WIDGET test", Price: 20.0, CountInStock: 50},
	}

	mockRepo.On("GetAll", "test").Return(expected, nil).Once()

	products, err := service.GetProducts("test")
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockUserRepository))

	newPrice := 150.0
	updated := &models.Product{ID: "1", Name: "Product A", Price: 150.0}

	// Only the allow-listed, non-nil fields reach the repository.
	mockRepo.On("Update", "1", map[string]interface{}{"price": 150.0}).Return(updated, nil).Once()

	product, err := service.UpdateProduct("1", services.ProductUpdate{Price: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, updated, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockUserRepository))

	mockRepo.On("Update", "99", mock.Anything).Return(nil, notFoundErr("product with ID 99")).Once()

	product, err := service.UpdateProduct("99", services.ProductUpdate{})
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockUserRepository))

	mockRepo.On("Delete", "99").Return(notFoundErr("product with ID 99")).Once()

	err := service.DeleteProduct("99")
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_AddReview(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewProductService(mockRepo, mockUsers)

	product := &models.Product{ID: "prod-1", Name: "Widget"}
	author := &models.User{ID: "user-1", Name: "John"}

	mockRepo.On("GetByID", "prod-1").Return(product, nil).Twice()
	mockUsers.On("GetByID", "user-1").Return(author, nil).Twice()
	mockRepo.On("Save", product).Return(nil).Twice()

	// First review.
	updated, err := service.AddReview("prod-1", "user-1", 5, "Great product!")
	assert.NoError(t, err)
	assert.Len(t, updated.Reviews, 1)
	assert.Equal(t, 1, updated.NumReviews)
	assert.Equal(t, 5.0, updated.Rating)
	assert.Equal(t, "John", updated.Reviews[0].Name)
	assert.Equal(t, "user-1", updated.Reviews[0].UserID)

	// Second review on the same product: appended, aggregates recomputed.
	updated, err = service.AddReview("prod-1", "user-1", 3, "Changed my mind")
	assert.NoError(t, err)
	assert.Len(t, updated.Reviews, 2)
	assert.Equal(t, 2, updated.NumReviews)
	assert.Equal(t, 4.0, updated.Rating)

	mockRepo.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestProductService_AddReview_ProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockUserRepository))

	mockRepo.On("GetByID", "missing").Return(nil, notFoundErr("product with ID missing")).Once()

	product, err := service.AddReview("missing", "user-1", 5, "nice")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
