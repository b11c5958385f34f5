package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// likeEscaper neutralizes LIKE wildcards so the search term is matched as a
// literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetAll retrieves products, filtered by name when search is non-empty.
func (r *GORMProductRepository) GetAll(search string) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Preload("Reviews")
	if search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its reviews.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Reviews").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies the given fields to the product row and returns the
// post-update entity. The update is issued first and the affected-row count
// checked after, so a concurrent deletion yields not-found rather than a
// stale write.
func (r *GORMProductRepository) Update(id string, fields map[string]interface{}) (*models.Product, error) {
	fields["updated_at"] = time.Now()
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return r.GetByID(id)
}

// Save persists the full product, including its reviews and aggregates.
func (r *GORMProductRepository) Save(product *models.Product) error {
	if err := r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.ID, err)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
