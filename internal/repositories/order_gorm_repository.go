package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll retrieves all orders with line-item products resolved.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Product").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByUserID retrieves the orders owned by a single user.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Find(&orders, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its line items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create adds a new order with its line items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update applies the given fields to the order row and returns the
// post-update entity. Affected rows are checked after the update so a
// concurrent deletion yields not-found.
func (r *GORMOrderRepository) Update(id string, fields map[string]interface{}) (*models.Order, error) {
	fields["updated_at"] = time.Now()
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return r.GetByID(id)
}

// Delete deletes an order by its ID.
func (r *GORMOrderRepository) Delete(id string) error {
	res := r.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
