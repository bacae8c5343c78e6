package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/handler/middleware"
	"github.com/taantti/erp-demo/internal/service"
	"github.com/taantti/erp-demo/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// Login authenticates a username/password pair and issues a bearer token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("malformed JSON body")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Logout revokes the caller's current token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := middleware.Token(c)
	claims := middleware.Claims(c)
	if token == "" || claims == nil {
		return apperror.MissingCredential()
	}

	if err := h.authService.Logout(c.Context(), token, claims.ExpiresAt.Time); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "logged out",
	})
}
