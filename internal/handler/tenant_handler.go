package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/service"
	"github.com/taantti/erp-demo/pkg/validator"
)

// Tenant management is matrix-gated to the administrative tenant, so the
// handlers carry no scoping of their own.
type TenantHandler struct {
	tenantService *service.TenantService
	validator     *validator.Validator
}

func NewTenantHandler(tenantService *service.TenantService, validator *validator.Validator) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		validator:     validator,
	}
}

// POST /api/v1/tenants
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var req service.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	tenant, err := h.tenantService.Create(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// GET /api/v1/tenants/:id
func (h *TenantHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	tenant, err := h.tenantService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tenant)
}

// GET /api/v1/tenants
func (h *TenantHandler) List(c *fiber.Ctx) error {
	tenants, err := h.tenantService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tenants": tenants,
		"count":   len(tenants),
	})
}

// PUT /api/v1/tenants/:id
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	tenant, err := h.tenantService.Update(c.Context(), id, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tenant)
}
