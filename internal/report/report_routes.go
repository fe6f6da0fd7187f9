package report

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
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(sessions))
	admin.Use(middleware.ContextLogger(logger))
	admin.Use(middleware.RequireSurface(enforcer, rbac.SurfaceAdmin))
	{
		admin.GET("/dashboard", middleware.RateLimitByUser(3, 10), handler.Dashboard)
	}

	my := r.Group("/my")
	my.Use(middleware.AuthMiddleware(sessions))
	my.Use(middleware.ContextLogger(logger))
	my.Use(middleware.RequireSurface(enforcer, rbac.SurfaceUser))
	{
		my.GET("/summary", middleware.RateLimitByUser(3, 10), handler.Summary)
	}
}
