package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoHandler        = errors.New("no handler registered for request")
	ErrDuplicateHandler = errors.New("handler already registered for request")
	ErrUnauthenticated  = errors.New("request requires an authenticated principal")
	ErrForbidden        = errors.New("role is not permitted to invoke this request")
)

// FieldViolation describes one broken validation rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found on a request, not just the
// first, so callers see all problems in one response.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
