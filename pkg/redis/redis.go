package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// 创建Redis客户端，未配置 Host 时返回 nil
func NewRedisClient(opts *Options) (*redis.Client, error) {
	if opts.Host == "" {
		return nil, nil
	}

	address := fmt.Sprintf("%s:%d", opts.Host, opts.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: 20,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis连接失败: %v", err)
	}

	return client, nil
}

// NewCache 创建短码解析缓存
// 配置了 Redis 时只用 Redis，多实例之间的失效立即可见；
// client 为 nil（单实例）时使用本地 TinyLFU
func NewCache(client *redis.Client, localSize int) *cache.Cache {
	if client != nil {
		return cache.New(&cache.Options{Redis: client})
	}
	if localSize <= 0 {
		localSize = 1000
	}
	return cache.New(&cache.Options{
		LocalCache: cache.NewTinyLFU(localSize, time.Minute),
	})
}

// NewLocker 创建分布式锁客户端，client 为 nil 时返回 nil
func NewLocker(client *redis.Client) *redislock.Client {
	if client == nil {
		return nil
	}
	return redislock.New(client)
}
