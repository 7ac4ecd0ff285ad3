package dispatch

import (
	"context"
	"fmt"

	"github.com/freela-market/freela-backend/internal/auth"
)

// AuthorizationGate answers "can a principal with this role ever invoke
// this request". Ownership checks stay in the handlers, which have the
// aggregate loaded. Requests missing from the table are denied.
func AuthorizationGate(permitted map[string][]string) Behavior {
	return func(_ context.Context, p auth.Principal, req Request) error {
		roles, ok := permitted[req.RequestName()]
		if !ok {
			return fmt.Errorf("%s: %w", req.RequestName(), ErrForbidden)
		}

		if p.UserID == 0 || p.Role == "" {
			return ErrUnauthenticated
		}

		for _, role := range roles {
			if p.Role == role {
				return nil
			}
		}
		return fmt.Errorf("role %s: %w", p.Role, ErrForbidden)
	}
}

// ValidateRequests checks declared field rules on requests that carry any,
// collecting every violation before the handler can run.
func ValidateRequests() Behavior {
	return func(_ context.Context, _ auth.Principal, req Request) error {
		v, ok := req.(Validatable)
		if !ok {
			return nil
		}

		if violations := v.Validate(); len(violations) > 0 {
			return &ValidationError{Violations: violations}
		}
		return nil
	}
}
