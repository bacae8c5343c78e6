package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/service"
	"github.com/taantti/erp-demo/pkg/validator"
)

type RoleHandler struct {
	roleService *service.RoleService
	validator   *validator.Validator
}

func NewRoleHandler(roleService *service.RoleService, validator *validator.Validator) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		validator:   validator,
	}
}

// POST /api/v1/roles
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req service.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	role, err := h.roleService.Create(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(role)
}

// GET /api/v1/roles/:id
func (h *RoleHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	role, err := h.roleService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(role)
}

// GET /api/v1/roles
func (h *RoleHandler) List(c *fiber.Ctx) error {
	roles, err := h.roleService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"roles": roles,
		"count": len(roles),
	})
}

// Update renames a role or adjusts its permission matrix. Entries marked
// immutable reject any change.
// PUT /api/v1/roles/:id
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	role, err := h.roleService.Update(c.Context(), id, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(role)
}

// DELETE /api/v1/roles/:id
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.roleService.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "role deleted",
	})
}
