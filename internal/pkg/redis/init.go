package redis

import (
	"ProjectShelf/internal/api/config"
	"ProjectShelf/internal/pkg/logger"
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

// InitRedis 初始化 Redis 客户端连接
func InitRedis(cfg config.RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	rdb.AddHook(logger.NewRedisLogger())

	ctx := context.Background()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return errors.Wrap(err, "redis 连接检查失败")
	}

	Rdb = rdb
	return nil
}
