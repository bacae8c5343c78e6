package domain

import (
	"github.com/google/uuid"
)

// PrincipalTenant is the tenant descriptor embedded in a principal.
type PrincipalTenant struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Admin bool      `json:"admin"`
}

// Principal is the authenticated identity attached to a request. It is
// materialized exactly once, by the auth middleware, and consumed by every
// downstream component; nothing re-derives it. Never persisted.
type Principal struct {
	UserID   uuid.UUID       `json:"user_id"`
	Username string          `json:"username"`
	Role     RoleCode        `json:"role"`
	Tenant   PrincipalTenant `json:"tenant"`
}
