package app

import (
	"os"
	"strings"

	"leavedesk/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module's routes.
// Kafka is optional: without KAFKA_BROKERS the lifecycle events degrade to a
// no-op publisher.
func BuildApp(router *gin.Engine) error {
	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("Redis connection established")

	var kafkaBrokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		kafkaBrokers = strings.Split(raw, ",")
		zap.L().Info("Kafka producer enabled", zap.Strings("brokers", kafkaBrokers))
	} else {
		zap.L().Info("KAFKA_BROKERS not set, lifecycle events disabled")
	}

	return registerModules(router, redisClient, kafkaBrokers)
}
