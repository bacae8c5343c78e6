package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/handler/middleware"
	"github.com/taantti/erp-demo/internal/service"
)

// SetupRoutes wires the full surface. Every protected route passes
// sanitize -> auth -> authorize(module, feature) before its handler; the
// permission evaluator never runs for a request that failed resolution,
// and no handler runs for a request the evaluator denied.
func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	tenantHandler *TenantHandler,
	roleHandler *RoleHandler,
	productHandler *ProductHandler,
	healthHandler *HealthHandler,
	permissions *service.PermissionService,
	sanitizeMiddleware fiber.Handler,
	authMiddleware fiber.Handler,
	loginLimiter fiber.Handler,
) {
	authorize := func(module domain.Module, feature domain.Feature) fiber.Handler {
		return middleware.Authorize(permissions, module, feature)
	}

	// Health checks (public, unsanitized)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	api := app.Group("/api/v1", sanitizeMiddleware)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/login", loginLimiter, authHandler.Login)
	auth.Post("/logout", authMiddleware, authHandler.Logout)

	// Users
	users := api.Group("/users", authMiddleware)
	users.Get("/me", userHandler.Me)
	users.Get("/", authorize(domain.ModuleUser, "readUsers"), userHandler.List)
	users.Get("/:id", authorize(domain.ModuleUser, "readUser"), userHandler.Get)
	users.Post("/", authorize(domain.ModuleUser, "createUser"), userHandler.Create)
	users.Put("/:id", authorize(domain.ModuleUser, "updateUser"), userHandler.Update)
	users.Post("/:id/deactivate", authorize(domain.ModuleUser, "updateUser"), userHandler.Deactivate)
	users.Delete("/:id", authorize(domain.ModuleUser, "deleteUser"), userHandler.Delete)

	// Tenants
	tenants := api.Group("/tenants", authMiddleware)
	tenants.Get("/", authorize(domain.ModuleTenant, "readTenants"), tenantHandler.List)
	tenants.Get("/:id", authorize(domain.ModuleTenant, "readTenant"), tenantHandler.Get)
	tenants.Post("/", authorize(domain.ModuleTenant, "createTenant"), tenantHandler.Create)
	tenants.Put("/:id", authorize(domain.ModuleTenant, "updateTenant"), tenantHandler.Update)

	// Roles
	roles := api.Group("/roles", authMiddleware)
	roles.Get("/", authorize(domain.ModuleRole, "readRoles"), roleHandler.List)
	roles.Get("/:id", authorize(domain.ModuleRole, "readRole"), roleHandler.Get)
	roles.Post("/", authorize(domain.ModuleRole, "createRole"), roleHandler.Create)
	roles.Put("/:id", authorize(domain.ModuleRole, "updateRole"), roleHandler.Update)
	roles.Delete("/:id", authorize(domain.ModuleRole, "deleteRole"), roleHandler.Delete)

	// Products. Category routes come first so "category" never matches :id.
	products := api.Group("/products", authMiddleware)
	products.Get("/category", authorize(domain.ModuleCategory, "readCategories"), productHandler.ListCategories)
	products.Get("/category/:id", authorize(domain.ModuleCategory, "readCategory"), productHandler.GetCategory)
	products.Post("/category", authorize(domain.ModuleCategory, "createCategory"), productHandler.CreateCategory)
	products.Put("/category/:id", authorize(domain.ModuleCategory, "updateCategory"), productHandler.UpdateCategory)
	products.Delete("/category/:id", authorize(domain.ModuleCategory, "deleteCategory"), productHandler.DeleteCategory)

	products.Get("/", authorize(domain.ModuleProduct, "readProducts"), productHandler.List)
	products.Get("/:id", authorize(domain.ModuleProduct, "readProduct"), productHandler.Get)
	products.Post("/", authorize(domain.ModuleProduct, "createProduct"), productHandler.Create)
	products.Put("/:id", authorize(domain.ModuleProduct, "updateProduct"), productHandler.Update)
	products.Delete("/:id", authorize(domain.ModuleProduct, "deleteProduct"), productHandler.Delete)
}
