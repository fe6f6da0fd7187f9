package app

import (
	"leavedesk/internal/auth"
	"leavedesk/internal/auth/session"
	"leavedesk/internal/directory"
	"leavedesk/internal/leave"
	"leavedesk/internal/messaging/kafka/producer"
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"
	"leavedesk/internal/report"
	"leavedesk/internal/shared/kvstore"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	rdb *redis.Client,
	kafkaBrokers []string,
) error {
	logger := zap.L()

	// --- Infrastructure ---
	store := kvstore.NewRedisStore(rdb)
	// Single write guard for the shared collections; every mutating
	// service takes this same instance.
	guard := kvstore.NewGuard()
	sessions := session.NewManager(rdb, logger)

	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	var publisher leave.EventPublisher
	if len(kafkaBrokers) > 0 {
		publisher = leave.NewKafkaEventPublisher(producer.NewWriter(kafkaBrokers))
	}

	// --- Repositories ---
	directoryRepo := directory.NewRepository(store, logger)
	leaveRepo := leave.NewRepository(store, logger)

	// --- Services ---
	authService := auth.NewService(directoryRepo, sessions, logger)
	directoryService := directory.NewService(directoryRepo, guard, logger)
	leaveService := leave.NewService(store, guard, leaveRepo, directoryRepo, publisher, logger)
	reportService := report.NewService(directoryRepo, leaveRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	directoryHandler := directory.NewHandler(directoryService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	reportHandler := report.NewHandler(reportService, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, sessions)
		directory.RegisterRoutes(api, directoryHandler, sessions, enforcer, logger)
		leave.RegisterRoutes(api, leaveHandler, sessions, enforcer, logger)
		report.RegisterRoutes(api, reportHandler, sessions, enforcer, logger)
	}

	return nil
}
