// Package postgres implements the repository interfaces over sqlx.
//
// Every tenant-scoped query takes a scope.Condition computed by the scoper
// and appends the tenant filter from it; an elevated condition appends
// nothing. Repositories never decide scoping on their own.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/taantti/erp-demo/internal/repository"
	"github.com/taantti/erp-demo/internal/scope"
)

const uniqueViolation = "23505"

// tenantClause renders the SQL fragment for a tenant condition. next is the
// positional index the fragment's placeholder should use.
func tenantClause(cond scope.Condition, next int) (string, []any) {
	if cond.AllTenants {
		return "", nil
	}
	return fmt.Sprintf(" AND tenant_id = $%d", next), []any{cond.TenantID}
}

// mapError converts driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pqErr.Constraint)
	}
	return err
}
