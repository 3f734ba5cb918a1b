package middleware

import (
	"context"
	"net/http"
	"scanmenu-platform/internal/config"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const rateLimitPrefix = "ratelimit:"

// RateLimit 按客户端 IP 限流。配置了 Redis 时多实例共享固定窗口计数，
// 否则每个实例使用内存令牌桶
func RateLimit(redisClient *redis.Client, limitConfig *config.Limit) gin.HandlerFunc {
	if !limitConfig.Enabled || limitConfig.Requests <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var allow func(ctx context.Context, ip string) bool
	if redisClient != nil {
		allow = redisWindow(redisClient, limitConfig.Requests+limitConfig.Burst)
	} else {
		allow = localBuckets(limitConfig.Requests, limitConfig.Burst)
	}

	return func(c *gin.Context) {
		// 跳过特定路径
		for _, path := range limitConfig.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		if !allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "请求过于频繁，请稍后再试",
			})
			return
		}

		c.Next()
	}
}

// redisWindow 每分钟一个计数窗口，Redis 故障时放行
func redisWindow(client *redis.Client, limit int64) func(context.Context, string) bool {
	return func(ctx context.Context, ip string) bool {
		window := time.Now().Unix() / 60
		key := rateLimitPrefix + ip + ":" + strconv.FormatInt(window, 10)

		ctx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()

		pipe := client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			zap.S().Warnw("限流计数失败，放行请求", "error", err)
			return true
		}
		return incr.Val() <= limit
	}
}

// localBuckets 每个 IP 一个令牌桶，每分钟 requests 个，最多累积 burst 个
func localBuckets(requests, burst int64) func(context.Context, string) bool {
	if burst <= 0 {
		burst = requests
	}
	every := rate.Every(time.Minute / time.Duration(requests))

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(_ context.Context, ip string) bool {
		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			// 简单防止内存无限增长
			if len(limiters) > 10000 {
				limiters = make(map[string]*rate.Limiter)
			}
			limiter = rate.NewLimiter(every, int(burst))
			limiters[ip] = limiter
		}
		mu.Unlock()

		return limiter.Allow()
	}
}
