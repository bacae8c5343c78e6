package seed

import "github.com/taantti/erp-demo/internal/domain"

// Default permission matrices per role code. Absence of an entry is a
// deny, so the reader matrix simply omits everything it may not do.
// Tenant and role management are pinned to the administrative tenant;
// the entries that keep the authorization model intact are immutable.

func matrixFor(code domain.RoleCode) domain.PermissionMatrix {
	switch code {
	case domain.RoleOverseer:
		return overseerMatrix()
	case domain.RoleAdmin:
		return adminMatrix()
	case domain.RoleWriter:
		return writerMatrix()
	default:
		return readerMatrix()
	}
}

func allow() domain.Permission {
	return domain.Permission{Access: true}
}

func adminOnly() domain.Permission {
	return domain.Permission{Access: true, AdminTenantOnly: true}
}

func adminOnlyImmutable() domain.Permission {
	return domain.Permission{Access: true, AdminTenantOnly: true, Immutable: true}
}

func overseerMatrix() domain.PermissionMatrix {
	return domain.PermissionMatrix{
		domain.ModuleUser: {
			"createUser": allow(),
			"readUser":   allow(),
			"readUsers":  allow(),
			"updateUser": allow(),
			"deleteUser": adminOnly(),
		},
		domain.ModuleTenant: {
			"createTenant": adminOnlyImmutable(),
			"readTenant":   adminOnly(),
			"readTenants":  adminOnly(),
			"updateTenant": adminOnlyImmutable(),
		},
		domain.ModuleRole: {
			"createRole": adminOnlyImmutable(),
			"readRole":   allow(),
			"readRoles":  allow(),
			"updateRole": adminOnlyImmutable(),
			"deleteRole": adminOnlyImmutable(),
		},
		domain.ModuleProduct: {
			"createProduct": allow(),
			"readProduct":   allow(),
			"readProducts":  allow(),
			"updateProduct": allow(),
			"deleteProduct": allow(),
		},
		domain.ModuleCategory: {
			"createCategory": allow(),
			"readCategory":   allow(),
			"readCategories": allow(),
			"updateCategory": allow(),
			"deleteCategory": allow(),
		},
	}
}

func adminMatrix() domain.PermissionMatrix {
	return domain.PermissionMatrix{
		domain.ModuleUser: {
			"createUser": allow(),
			"readUser":   allow(),
			"readUsers":  allow(),
			"updateUser": allow(),
			"deleteUser": allow(),
		},
		domain.ModuleRole: {
			"readRole":  allow(),
			"readRoles": allow(),
		},
		domain.ModuleProduct: {
			"createProduct": allow(),
			"readProduct":   allow(),
			"readProducts":  allow(),
			"updateProduct": allow(),
			"deleteProduct": allow(),
		},
		domain.ModuleCategory: {
			"createCategory": allow(),
			"readCategory":   allow(),
			"readCategories": allow(),
			"updateCategory": allow(),
			"deleteCategory": allow(),
		},
	}
}

func writerMatrix() domain.PermissionMatrix {
	return domain.PermissionMatrix{
		domain.ModuleUser: {
			"readUser": allow(),
		},
		domain.ModuleProduct: {
			"createProduct": allow(),
			"readProduct":   allow(),
			"readProducts":  allow(),
			"updateProduct": allow(),
		},
		domain.ModuleCategory: {
			"createCategory": allow(),
			"readCategory":   allow(),
			"readCategories": allow(),
			"updateCategory": allow(),
		},
	}
}

func readerMatrix() domain.PermissionMatrix {
	return domain.PermissionMatrix{
		domain.ModuleUser: {
			"readUser": allow(),
		},
		domain.ModuleProduct: {
			"readProduct":  allow(),
			"readProducts": allow(),
		},
		domain.ModuleCategory: {
			"readCategory":   allow(),
			"readCategories": allow(),
		},
	}
}
