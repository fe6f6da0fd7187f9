package leave

import (
	"leavedesk/internal/auth/session"
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	sessions session.Store,
	enforcer middleware.Enforcer,
	logger *zap.Logger,
) {
	my := r.Group("/my/leaves")
	my.Use(middleware.AuthMiddleware(sessions))
	my.Use(middleware.ContextLogger(logger))
	my.Use(middleware.RequireSurface(enforcer, rbac.SurfaceUser))
	{
		my.GET("", middleware.RateLimitByUser(3, 10), handler.ListMine)
		my.POST("", middleware.RateLimitByUser(0.5, 3), handler.Submit)
		my.POST("/schedule", middleware.RateLimitByUser(5, 20), handler.ReconcileSchedule)
	}

	admin := r.Group("/admin/leaves")
	admin.Use(middleware.AuthMiddleware(sessions))
	admin.Use(middleware.ContextLogger(logger))
	admin.Use(middleware.RequireSurface(enforcer, rbac.SurfaceAdmin))
	{
		admin.GET("", middleware.RateLimitByUser(3, 10), handler.ListAll)
		admin.GET("/pending", middleware.RateLimitByUser(3, 10), handler.ListPending)
		admin.POST("/:id/approve", middleware.RateLimitByUser(1, 5), handler.Approve)
		admin.POST("/:id/reject", middleware.RateLimitByUser(1, 5), handler.Reject)
	}

	// Account removal cascades into this module's records, so the route
	// lives here rather than with the account handlers.
	users := r.Group("/admin/users")
	users.Use(middleware.AuthMiddleware(sessions))
	users.Use(middleware.ContextLogger(logger))
	users.Use(middleware.RequireSurface(enforcer, rbac.SurfaceAdmin))
	{
		users.DELETE("/:userId", middleware.RateLimitByUser(0.1, 1), handler.DeleteOwner)
	}
}
