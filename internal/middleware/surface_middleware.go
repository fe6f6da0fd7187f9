package middleware

import (
	"net/http"

	"leavedesk/internal/rbac"
	"leavedesk/internal/shared/response"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// Enforcer is the slice of casbin this package needs.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

var _ Enforcer = (*casbin.Enforcer)(nil)

// RequireSurface dispatches an authenticated session to its role's surface.
// A valid session on the wrong surface is redirected to its own surface,
// not just refused.
func RequireSurface(e Enforcer, surface string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := e.Enforce(role.(string), surface, "access")
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			target := rbac.HomeFor(role.(string))
			c.Header("Location", target)
			response.Error(c, http.StatusSeeOther, "WRONG_SURFACE",
				"This surface belongs to another role",
				gin.H{"redirect_to": target},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
