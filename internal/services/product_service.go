package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/repositories"
)

// ProductService handles business logic related to the product catalog and
// its reviews.
type ProductService struct {
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, userRepo repositories.UserRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// GetProducts retrieves products, filtered by a case-insensitive substring
// match on name when search is non-empty.
func (s *ProductService) GetProducts(search string) ([]models.Product, error) {
	return s.productRepo.GetAll(search)
}

// GetProductByID retrieves a single product with its reviews.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

// ProductUpdate is the allow-list of fields a partial product update may
// change. Nil fields are left untouched.
type ProductUpdate struct {
	Name         *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Image        *string  `json:"image" validate:"omitempty,max=500"`
	Brand        *string  `json:"brand" validate:"omitempty,max=100"`
	Category     *string  `json:"category" validate:"omitempty,max=100"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	CountInStock *int     `json:"count_in_stock" validate:"omitempty,gte=0"`
}

// UpdateProduct applies the allow-listed fields and returns the post-update
// product.
func (s *ProductService) UpdateProduct(id string, update ProductUpdate) (*models.Product, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Image != nil {
		fields["image"] = *update.Image
	}
	if update.Brand != nil {
		fields["brand"] = *update.Brand
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.CountInStock != nil {
		fields["count_in_stock"] = *update.CountInStock
	}
	return s.productRepo.Update(id, fields)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

// AddReview appends a single review to a product and recomputes the rating
// aggregates. The author's name is resolved and snapshotted on the review. A
// user may review the same product more than once.
func (s *ProductService) AddReview(productID, userID string, rating int, comment string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	authorName := ""
	if author, err := s.userRepo.GetByID(userID); err == nil {
		authorName = author.Name
	}

	review := models.Review{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		UserID:    userID,
		Name:      authorName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	product.Reviews = append(product.Reviews, review)

	var sum int
	for _, r := range product.Reviews {
		sum += r.Rating
	}
	product.NumReviews = len(product.Reviews)
	product.Rating = float64(sum) / float64(product.NumReviews)

	if err := s.productRepo.Save(product); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return product, nil
}
