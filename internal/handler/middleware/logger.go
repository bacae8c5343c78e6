package middleware

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/metrics"
)

// Logger records one structured line per request and feeds the request
// counter. On error paths the response status is not written until the app's
// error handler runs, after this middleware returns, so the status is derived
// from the error itself.
func Logger(logger *slog.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = apperror.From(err).Status
			}
		}
		args := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start).String(),
			"ip", c.IP(),
		}
		if p := Principal(c); p != nil {
			args = append(args, "user", p.Username, "tenant", p.Tenant.Name)
		}

		switch {
		case status >= 500:
			logger.Error("request completed", args...)
		case status >= 400:
			logger.Warn("request completed", args...)
		default:
			logger.Info("request completed", args...)
		}

		if m != nil {
			m.RequestsTotal.WithLabelValues(c.Method(), strconv.Itoa(status)).Inc()
		}

		return err
	}
}
