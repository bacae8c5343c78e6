package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/metrics"
)

// NewErrorHandler builds the fiber error handler that turns every error
// leaving the pipeline into a uniform JSON shape. Unknown errors collapse
// to a generic 500; their cause is logged here and, in development only,
// echoed in the response.
func NewErrorHandler(logger *slog.Logger, m *metrics.Metrics, dev bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		appErr := apperror.From(err)

		if m != nil {
			switch {
			case appErr.Status == fiber.StatusUnauthorized:
				m.AuthFailures.Inc()
			case appErr.Kind == apperror.KindPermissionDenied:
				m.AccessDenials.Inc()
				m.ElevationAnomalies.Inc()
			case appErr.Status == fiber.StatusForbidden:
				m.AccessDenials.Inc()
			}
		}

		if appErr.Status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"kind", string(appErr.Kind),
				"path", c.Path(),
				"error", appErr.Error(),
			)
		}

		body := fiber.Map{"error": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["details"] = appErr.Fields
		}
		if dev && appErr.Err != nil {
			body["cause"] = appErr.Err.Error()
		}

		return c.Status(appErr.Status).JSON(body)
	}
}
