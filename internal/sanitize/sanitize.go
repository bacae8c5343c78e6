// Package sanitize normalizes and bounds-checks inbound request payloads.
// Sanitizing (markup strip + trim) is distinct from validating (length and
// shape ceilings); both happen in a single in-place pass over the parsed
// body before any business logic runs.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/config"
)

type Sanitizer struct {
	cfg    config.SanitizeConfig
	policy *bluemonday.Policy
}

func New(cfg config.SanitizeConfig) *Sanitizer {
	// StrictPolicy allows no tags and no attributes
	return &Sanitizer{
		cfg:    cfg,
		policy: bluemonday.StrictPolicy(),
	}
}

// Clean strips all markup from a string value and trims surrounding
// whitespace. Idempotent for already-clean input.
func (s *Sanitizer) Clean(value string) string {
	return strings.TrimSpace(s.policy.Sanitize(value))
}

// Config exposes the configured ceilings to the request middleware.
func (s *Sanitizer) Config() config.SanitizeConfig {
	return s.cfg
}

// item is one frame of the iterative body walk. parent and key identify the
// container slot so sanitized values replace the originals in place.
type item struct {
	value  any
	path   string
	depth  int
	parent any // map[string]any or []any, nil at the root
	key    any // string for maps, int for slices
}

// WalkBody traverses a parsed JSON body depth-first with an explicit stack,
// sanitizing every string in place and collecting one path-qualified error
// per violated ceiling. An empty result means the body passed whole; any
// error fails the entire request, never a partial sanitize-then-proceed.
func (s *Sanitizer) WalkBody(body any) []apperror.FieldError {
	var errs []apperror.FieldError
	stack := []item{{value: body, path: "", depth: 0}}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := it.value.(type) {
		case map[string]any:
			if len(v) > s.cfg.MaxObjectKeys {
				errs = append(errs, fieldError(it.path, fmt.Sprintf(
					"object at path '%s' contains %d keys, exceeding the maximum of %d",
					it.path, len(v), s.cfg.MaxObjectKeys)))
				continue
			}
			if it.depth >= s.cfg.MaxDepth {
				// Descending would exceed the depth budget; abort the walk.
				return append(errs, fieldError(it.path, fmt.Sprintf(
					"nesting at path '%s' exceeds the maximum depth of %d",
					it.path, s.cfg.MaxDepth)))
			}
			for key, child := range v {
				stack = append(stack, item{
					value:  child,
					path:   joinPath(it.path, key),
					depth:  it.depth + 1,
					parent: v,
					key:    key,
				})
			}

		case []any:
			if len(v) > s.cfg.MaxArrayLen {
				errs = append(errs, fieldError(it.path, fmt.Sprintf(
					"array at path '%s' contains %d items, exceeding the maximum of %d",
					it.path, len(v), s.cfg.MaxArrayLen)))
				continue
			}
			if it.depth >= s.cfg.MaxDepth {
				return append(errs, fieldError(it.path, fmt.Sprintf(
					"nesting at path '%s' exceeds the maximum depth of %d",
					it.path, s.cfg.MaxDepth)))
			}
			for i, child := range v {
				stack = append(stack, item{
					value:  child,
					path:   joinPath(it.path, fmt.Sprintf("%d", i)),
					depth:  it.depth + 1,
					parent: v,
					key:    i,
				})
			}

		case string:
			cleaned := s.Clean(v)
			setInPlace(it.parent, it.key, cleaned)
			if len(cleaned) > s.cfg.MaxValueLen {
				errs = append(errs, fieldError(it.path, fmt.Sprintf(
					"value at path '%s' is %d characters long, exceeding the maximum of %d",
					it.path, len(cleaned), s.cfg.MaxValueLen)))
			}

		case float64:
			if v > float64(s.cfg.MaxValueLen) {
				errs = append(errs, fieldError(it.path, fmt.Sprintf(
					"value at path '%s' is %v, exceeding the maximum of %d",
					it.path, v, s.cfg.MaxValueLen)))
			}

		case bool, nil:
			// Always within bounds.

		default:
			errs = append(errs, fieldError(it.path, fmt.Sprintf(
				"value at path '%s' has unsupported type", it.path)))
		}
	}

	return errs
}

func setInPlace(parent, key, value any) {
	switch p := parent.(type) {
	case map[string]any:
		p[key.(string)] = value
	case []any:
		p[key.(int)] = value
	}
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func fieldError(path, message string) apperror.FieldError {
	return apperror.FieldError{Path: path, Message: message}
}
