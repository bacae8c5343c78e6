package domain

import (
	"github.com/google/uuid"
)

// Tenant is the isolation boundary: every scoped document carries a tenant
// id and is invisible across tenants by default. Admin marks the single
// distinguished tenant whose OVERSEER users may elevate to cross-tenant
// access.
type Tenant struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Name   string    `json:"name" db:"name" validate:"required,min=3,max=30"`
	Admin  bool      `json:"admin" db:"admin"`
	Active bool      `json:"active" db:"active"`
}
