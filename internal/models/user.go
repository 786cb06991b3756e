package models

import "time"

// User represents a storefront customer.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username    string    `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Password    string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Name        string    `json:"name" gorm:"type:varchar(100)"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(32)"`
	Address     string    `json:"address" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SignupRequest carries the fields collected by the signup form.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,numeric"`
	City     string `json:"city" validate:"required"`
	Street   string `json:"street" validate:"required"`
	Building string `json:"building" validate:"required,numeric"`
}
