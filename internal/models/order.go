package models

import "time"

// Order lifecycle states. New orders start as StatusPending; updates must use
// one of these values.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single line of an order. Name and Price are snapshots taken
// at order time; Product is resolved only for admin listings.
type OrderItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Name      string   `json:"name" gorm:"type:varchar(100)"`
	Qty       int      `json:"qty" validate:"required,gt=0"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Order represents a customer order.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items      []OrderItem `json:"order_items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalPrice float64     `json:"total_price" validate:"gte=0"`
	Status     string      `json:"status" gorm:"type:varchar(20)"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
