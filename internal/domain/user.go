package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username" validate:"required,min=3,max=30,lowercase"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name" validate:"required,min=1,max=50"`
	LastName     string    `json:"last_name" db:"last_name" validate:"required,min=1,max=50"`
	Email        string    `json:"email" db:"email" validate:"required,email,min=5,max=80"`
	Role         RoleCode  `json:"role" db:"role"`
	Active       bool      `json:"active" db:"active"`
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FullName derives the display name from the stored parts.
func FullName(u *User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
