package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByUserID returns the orders owned by a single user.
func (r *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Update applies the given field map to an existing order.
func (r *MockOrderRepository) Update(id string, fields map[string]interface{}) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
	}
	for k, v := range fields {
		switch k {
		case "status":
			order.Status = v.(string)
		case "total_price":
			order.TotalPrice = v.(float64)
		}
	}
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}
