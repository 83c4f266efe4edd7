package middleware

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	// XRequestIDKey defines X-Request-ID key string.
	XRequestIDKey = "X-Request-ID"

	// XRequestedAtKey 记录服务端收到请求的时间。
	XRequestedAtKey = "X-Requested-At"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// RequestID 沿用客户端传入的 X-Request-ID，没有时生成 ULID。
// 请求 ID 同时写入请求头、响应头和 gin 上下文。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()

		rid := c.GetHeader(XRequestIDKey)
		if rid == "" {
			rid = newRequestID(now)
			c.Request.Header.Set(XRequestIDKey, rid)
		}
		c.Set(XRequestIDKey, rid)

		c.Writer.Header().Set(XRequestIDKey, rid)
		c.Writer.Header().Set(XRequestedAtKey, now.UTC().Format(time.RFC3339Nano))
		c.Next()
	}
}

func newRequestID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// GetRequestIDFromContext returns 'RequestID' from the given context if present.
func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString(XRequestIDKey)
}
