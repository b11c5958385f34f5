package repositories

import "github.com/samuelkabedi/SHOP-KABEDI/internal/models"

// ProductRepository defines the interface for product data access. GetAll
// filters by a case-insensitive substring match on name when search is
// non-empty. GetByID and Save carry the product's owned reviews.
type ProductRepository interface {
	GetAll(search string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(id string, fields map[string]interface{}) (*models.Product, error)
	Save(product *models.Product) error
	Delete(id string) error
}
