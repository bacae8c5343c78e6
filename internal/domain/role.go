package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RoleCode is the fixed role enum shared across tenants.
type RoleCode string

const (
	RoleOverseer RoleCode = "OVERSEER"
	RoleAdmin    RoleCode = "ADMIN"
	RoleWriter   RoleCode = "WRITER"
	RoleReader   RoleCode = "READER"
)

// RoleCodes lists every valid role code.
var RoleCodes = []RoleCode{RoleOverseer, RoleAdmin, RoleWriter, RoleReader}

// Valid reports whether c is a member of the role enum.
func (c RoleCode) Valid() bool {
	switch c {
	case RoleOverseer, RoleAdmin, RoleWriter, RoleReader:
		return true
	}
	return false
}

// Module identifies a permission-matrix module key.
type Module string

const (
	ModuleUser     Module = "user"
	ModuleTenant   Module = "tenant"
	ModuleRole     Module = "role"
	ModuleProduct  Module = "product"
	ModuleCategory Module = "category"
)

// Feature identifies an operation within a module, e.g. "readUsers".
type Feature string

// Permission is a single matrix entry. Absence of an entry is always a
// deny; only an explicit Access=true allows.
type Permission struct {
	Access          bool `json:"access"`
	AdminTenantOnly bool `json:"adminTenantOnly"`
	Immutable       bool `json:"immutable"`
}

// PermissionMatrix maps module -> feature -> permission. Stored as JSONB.
type PermissionMatrix map[Module]map[Feature]Permission

// Lookup resolves a (module, feature) pair. ok is false when either key is
// absent; callers must treat that as deny.
func (m PermissionMatrix) Lookup(module Module, feature Feature) (Permission, bool) {
	features, ok := m[module]
	if !ok {
		return Permission{}, false
	}
	perm, ok := features[feature]
	return perm, ok
}

func (m PermissionMatrix) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *PermissionMatrix) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = PermissionMatrix{}
		return nil
	default:
		return fmt.Errorf("unsupported permission matrix source type %T", src)
	}
}

// Role is shared across tenants: one record per role code, carrying the
// permission matrix the evaluator consults.
type Role struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Name        string           `json:"name" db:"name" validate:"required,min=3,max=30"`
	Role        RoleCode         `json:"role" db:"role"`
	Permissions PermissionMatrix `json:"permissions" db:"permissions"`
}
