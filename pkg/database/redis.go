package database

import (
	"context"
	"fmt"
	"learnhub_backend/internal/config"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// InitRedis 建立Redis连接，主要承载仪表盘缓存和课程市场的热点查询
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		// 仪表盘接口读多写少，连接池适当放大
		PoolSize:     50,
		MinIdleConns: 5,
	})

	// 启动时快速失败，避免第一个请求才暴露连接问题
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Printf("Redis connection established (%s)", addr)
	return rdb, nil
}
