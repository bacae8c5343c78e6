package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/handler/middleware"
	"github.com/taantti/erp-demo/internal/service"
	"github.com/taantti/erp-demo/pkg/validator"
)

type ProductHandler struct {
	productService *service.ProductService
	validator      *validator.Validator
}

func NewProductHandler(productService *service.ProductService, validator *validator.Validator) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator,
	}
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	product, err := h.productService.CreateProduct(c.Context(), middleware.Principal(c), req, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productService.GetProduct(c.Context(), middleware.Principal(c), id, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(product)
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantQuery(c)
	if err != nil {
		return err
	}

	products, err := h.productService.ListProducts(c.Context(), middleware.Principal(c), tenantID, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"products": products,
		"count":    len(products),
	})
}

// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	product, err := h.productService.UpdateProduct(c.Context(), middleware.Principal(c), id, req, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(product)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.productService.DeleteProduct(c.Context(), middleware.Principal(c), id, allTenantsQuery(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "product deleted",
	})
}

// POST /api/v1/products/category
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	category, err := h.productService.CreateCategory(c.Context(), middleware.Principal(c), req, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// GET /api/v1/products/category/:id
func (h *ProductHandler) GetCategory(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	category, err := h.productService.GetCategory(c.Context(), middleware.Principal(c), id, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(category)
}

// GET /api/v1/products/category
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	tenantID, err := tenantQuery(c)
	if err != nil {
		return err
	}

	categories, err := h.productService.ListCategories(c.Context(), middleware.Principal(c), tenantID, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"categories": categories,
		"count":      len(categories),
	})
}

// PUT /api/v1/products/category/:id
func (h *ProductHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	category, err := h.productService.UpdateCategory(c.Context(), middleware.Principal(c), id, req, allTenantsQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(category)
}

// DELETE /api/v1/products/category/:id
func (h *ProductHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.productService.DeleteCategory(c.Context(), middleware.Principal(c), id, allTenantsQuery(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "category deleted",
	})
}
