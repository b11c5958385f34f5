package models

import "time"

// User represents a customer or administrator account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
