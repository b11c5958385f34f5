package models

import "time"

// Product represents a catalog item. Reviews are owned by the product and
// serialized inline; Rating and NumReviews are recomputed whenever a review
// is added.
type Product struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Image        string    `json:"image" validate:"omitempty,max=500"`
	Brand        string    `json:"brand" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Category     string    `json:"category" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Price        float64   `json:"price" validate:"gte=0"`
	CountInStock int       `json:"count_in_stock" validate:"gte=0"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"num_reviews"`
	Reviews      []Review  `json:"reviews" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Review is a single customer review embedded in a product. Reviews share the
// lifetime of their product and are appended, never removed.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)"` // author name at submission time
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=1000"`
	CreatedAt time.Time `json:"created_at"`
}
