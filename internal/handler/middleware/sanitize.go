package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/sanitize"
)

// Sanitize cleans the request before anything else sees it: the JSON body,
// query parameters, path parameters and header values are stripped of markup
// and trimmed, and size ceilings are enforced. A breached ceiling rejects the
// request outright as too large; body content violations are aggregated and
// reported together. The Authorization header is left untouched so bearer
// tokens survive intact.
func Sanitize(s *sanitize.Sanitizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg := s.Config()
		var errs []apperror.FieldError

		if qs := c.Request().URI().QueryString(); len(qs) > cfg.MaxQueryString {
			return apperror.PayloadTooLarge(fmt.Sprintf("query string exceeds %d characters", cfg.MaxQueryString))
		}

		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
			body := c.Body()
			if len(body) == 0 {
				return apperror.MissingBody(c.Method())
			}
			if len(body) > cfg.MaxBodyBytes {
				return apperror.PayloadTooLarge(fmt.Sprintf("request body exceeds %d bytes", cfg.MaxBodyBytes))
			}

			var parsed any
			if err := json.Unmarshal(body, &parsed); err != nil {
				return apperror.BadRequest("malformed JSON body")
			}

			errs = append(errs, s.WalkBody(parsed)...)
			if len(errs) == 0 {
				cleaned, err := json.Marshal(parsed)
				if err != nil {
					return apperror.Internal(err)
				}
				c.Request().SetBodyRaw(cleaned)
			}
		}

		args := c.Request().URI().QueryArgs()
		type pair struct{ key, value string }
		var pairs []pair
		args.VisitAll(func(key, value []byte) {
			pairs = append(pairs, pair{string(key), string(value)})
		})
		for _, p := range pairs {
			if len(p.value) > cfg.MaxQueryParam {
				return apperror.PayloadTooLarge(fmt.Sprintf("query parameter %q exceeds %d characters", p.key, cfg.MaxQueryParam))
			}
			args.Set(p.key, s.Clean(p.value))
		}

		// Route params are read-only on the request, so the cleaned copies
		// live in locals and handlers read them via Param.
		params := make(map[string]string)
		for _, name := range c.Route().Params {
			value := c.Params(name)
			if len(value) > cfg.MaxPathParam {
				return apperror.PayloadTooLarge(fmt.Sprintf("path parameter %q exceeds %d characters", name, cfg.MaxPathParam))
			}
			params[name] = s.Clean(value)
		}
		c.Locals(localParams, params)

		if len(errs) > 0 {
			return apperror.ValidationFailed(errs)
		}

		type header struct{ key, value string }
		var headers []header
		c.Request().Header.VisitAll(func(key, value []byte) {
			headers = append(headers, header{string(key), string(value)})
		})
		for _, h := range headers {
			if h.key == fiber.HeaderAuthorization || h.key == fiber.HeaderCookie {
				continue
			}
			if cleaned := s.Clean(h.value); cleaned != h.value {
				c.Request().Header.Set(h.key, cleaned)
			}
		}

		return c.Next()
	}
}
