package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only, tenant-scoped record of security-relevant
// events (elevation misuse, denied access, anomalies).
type AuditLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Level     string    `json:"level" db:"level"`
	Message   string    `json:"message" db:"message"`
	Actor     string    `json:"actor" db:"actor"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
