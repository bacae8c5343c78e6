package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/handler/middleware"
	"github.com/taantti/erp-demo/internal/service"
	"github.com/taantti/erp-demo/pkg/validator"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validator
}

func NewUserHandler(userService *service.UserService, validator *validator.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// Create registers a new user inside the caller's tenant, or another
// tenant under elevation.
// POST /api/v1/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Context(), middleware.Principal(c), req, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Me returns the caller's own profile.
// GET /api/v1/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	if principal == nil {
		return apperror.NoActivePrincipal()
	}

	user, err := h.userService.Get(c.Context(), principal, principal.UserID, false)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Get returns one user visible to the caller.
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Context(), middleware.Principal(c), id, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// List searches users. Filters: username, active, tenant_id (elevation
// only), all_tenants.
// GET /api/v1/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantQuery(c)
	if err != nil {
		return err
	}

	query := service.ListUsersQuery{
		Username:   c.Query("username"),
		Tenant:     tenantID,
		AllTenants: allTenantsQuery(c),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		query.Active = &active
	}

	users, err := h.userService.List(c.Context(), middleware.Principal(c), query)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

// Update applies a partial update to a user in scope.
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Context(), middleware.Principal(c), id, req, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Deactivate disables a user without deleting the row.
// POST /api/v1/users/:id/deactivate
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Deactivate(c.Context(), middleware.Principal(c), id, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Delete removes a user in scope.
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), middleware.Principal(c), id, allTenantsQuery(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "user deleted",
	})
}
