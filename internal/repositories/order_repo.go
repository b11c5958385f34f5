package repositories

import "github.com/samuelkabedi/SHOP-KABEDI/internal/models"

// OrderRepository defines the interface for order data access. GetAll
// resolves each line item's product (the admin listing shape); GetByUserID
// returns the owner's orders with unresolved line items.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(id string, fields map[string]interface{}) (*models.Order, error)
	Delete(id string) error
}
