package repositories

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns products, filtered by name when search is non-empty.
func (r *MockProductRepository) GetAll(search string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update applies the given field map to an existing product.
func (r *MockProductRepository) Update(id string, fields map[string]interface{}) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, apperrors.ErrNotFound)
	}
	for k, v := range fields {
		switch k {
		case "name":
			product.Name = v.(string)
		case "image":
			product.Image = v.(string)
		case "brand":
			product.Brand = v.(string)
		case "category":
			product.Category = v.(string)
		case "price":
			product.Price = v.(float64)
		case "count_in_stock":
			product.CountInStock = v.(int)
		}
	}
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

// Save replaces an existing product wholesale, reviews included.
func (r *MockProductRepository) Save(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, apperrors.ErrNotFound)
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s: %w", id, apperrors.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}
