package database

import (
	"Backend-Schoolhub/src/logger"

	"github.com/hibiken/asynq"
)

var AsynqClient *asynq.Client

// AsynqRedisOpt returns the connection options shared by the asynq client, server and scheduler.
func AsynqRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: redisOpt.addr, Password: redisOpt.password, DB: redisOpt.db}
}

// InitAsynq initializes the Asynq client only if Redis is available.
func InitAsynq() {
	if RedisClient == nil {
		logger.Log.Warn("⚠️ Redis not available. Asynq client will not be initialized.")
		return
	}
	AsynqClient = asynq.NewClient(AsynqRedisOpt())
	logger.Log.Info("✅ Asynq client initialized")
}
