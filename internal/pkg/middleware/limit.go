package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/metrics"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// idleLimiterTTL 客户端空闲超过该时间后丢弃其令牌桶。
const idleLimiterTTL = 10 * time.Minute

// RateLimiter 按客户端 IP 限流的令牌桶集合。
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters *gocache.Cache
}

// NewRateLimiter 每个客户端每秒 qps 个请求，允许 burst 个突发请求。
func NewRateLimiter(qps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(qps),
		burst:    burst,
		limiters: gocache.New(idleLimiterTTL, 2*idleLimiterTTL),
	}
}

// Allow 消耗 key 对应令牌桶中的一个令牌。
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	var limiter *rate.Limiter
	if v, ok := l.limiters.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}
	// 每次访问刷新过期时间
	l.limiters.SetDefault(key, limiter)
	l.mu.Unlock()

	return limiter.Allow()
}

// Handler 超出限制时返回 429。
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		metrics.RateLimitedRequests.Inc()
		log.L(c).Warnw("request rate limited", "clientIP", c.ClientIP(), "path", c.FullPath())
		core.AbortWithError(c, errors.WithCode(code.ErrTooManyRequests, "%s", "Too many requests, please try again later"))
	}
}
