package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name" validate:"required,min=1,max=100"`
	Description string     `json:"description" db:"description" validate:"max=1000"`
	Price       float64    `json:"price" db:"price" validate:"gte=0"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type ProductCategory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required,min=1,max=100"`
	Description string    `json:"description" db:"description" validate:"max=1000"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
