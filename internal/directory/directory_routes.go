package directory

import (
	"leavedesk/internal/auth/session"
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes wires the account surface. Deleting an account cascades
// into the leave records, so that route is registered by the leave module.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	sessions session.Store,
	enforcer middleware.Enforcer,
	logger *zap.Logger,
) {
	users := r.Group("/admin/users")
	users.Use(middleware.AuthMiddleware(sessions))
	users.Use(middleware.ContextLogger(logger))
	users.Use(middleware.RequireSurface(enforcer, rbac.SurfaceAdmin))
	{
		users.GET("", middleware.RateLimitByUser(3, 10), handler.List)
		users.POST("", middleware.RateLimitByUser(0.5, 2), handler.Create)
	}
}
