package services_test

import (
	"testing"

	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
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

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: 10.0, CountInStock: 100},
		{ID: "2", Name: "Product B", Price: 20.0, CountInStock: 50},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: 10.0, CountInStock: 100}

	// Successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Product not found
	mockRepo.On("GetByID", "99").Return(nil, models.NewNotFound("product", "99")).Once()
	product, err = service.GetProductByID("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	req := models.CreateProductRequest{
		Name:         "New Product",
		Brand:        "Brand",
		Category:     "Category",
		Price:        50.0,
		CountInStock: 20,
	}

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	product, err := service.CreateProduct("admin-1", req)
	assert.NoError(t, err)
	assert.Equal(t, "New Product", product.Name)
	assert.Equal(t, "admin-1", product.UserID)
	mockRepo.AssertExpectations(t)

	// An empty name falls back to the sample default
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	product, err = service.CreateProduct("admin-1", models.CreateProductRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "Sample Name", product.Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := &models.Product{ID: "1", Name: "Product A", Brand: "Acme", Price: 12.0, CountInStock: 95}
	newPrice := 15.0

	// Partial update: only the price changes, everything else is kept
	mockRepo.On("GetByID", "1").Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	updated, err := service.UpdateProduct("1", models.UpdateProductRequest{Price: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, 15.0, updated.Price)
	assert.Equal(t, "Product A", updated.Name)
	assert.Equal(t, "Acme", updated.Brand)
	mockRepo.AssertExpectations(t)

	// Unknown product
	mockRepo.On("GetByID", "99").Return(nil, models.NewNotFound("product", "99")).Once()
	_, err = service.UpdateProduct("99", models.UpdateProductRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Unknown product
	mockRepo.On("Delete", "99").Return(models.NewNotFound("product", "99")).Once()
	err = service.DeleteProduct("99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}
