package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

const CtxPrincipal = "principal"

// Principal is the authenticated identity attached to a request by
// RequireAuth. UserID 0 means anonymous.
type Principal struct {
	UserID int64
	Email  string
	Role   string
}

// ValidRole reports whether role is one of the marketplace roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleFreelancer
}

// CurrentPrincipal extracts the principal set by RequireAuth.
// The zero Principal is returned for unauthenticated requests.
func CurrentPrincipal(c *gin.Context) Principal {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return Principal{}
	}
	p, ok := v.(Principal)
	if !ok {
		return Principal{}
	}
	return p
}
