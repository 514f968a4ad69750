package cli

import (
	"context"
	"fmt"
	"time"

	"Backend-Schoolhub/src/config"
	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/services/classes"
	"Backend-Schoolhub/src/services/quizzes"
	"Backend-Schoolhub/src/services/uploads"
	"Backend-Schoolhub/src/utils"

	"go.uber.org/zap"
)

// bootstrap loads config, starts logging and opens MongoDB and (when configured) Redis.
func bootstrap(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level, cfg.Log.File)
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := database.ConnectMongoDB(cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
		return nil, err
	}
	if err := database.InitRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		// cache, blacklist and jobs degrade to off
		logger.Log.Warn("⚠️ Redis unavailable", zap.Error(err))
	}
	return cfg, nil
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if database.AsynqClient != nil {
		_ = database.AsynqClient.Close()
	}
	if database.RedisClient != nil {
		_ = database.RedisClient.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Log.Warn("disconnect mongo", zap.Error(err))
	}
	logger.Sync()
}

// newQuizService wires the quiz service against the opened connections.
func newQuizService(ctx context.Context, cfg *config.Config) (*quizzes.Service, error) {
	var files quizzes.FileStorage
	if cfg.StorageEnabled() {
		storage, err := uploads.NewStorage(ctx, uploads.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
		files = storage
	}

	return quizzes.NewService(
		quizzes.NewMongoStore(database.DB),
		classes.NewMongoDirectory(database.DB),
		quizzes.NewGroupCache(database.RedisClient, cfg.QuizCacheTTL()),
		files,
		cfg.Quiz.EditPolicy,
	), nil
}
