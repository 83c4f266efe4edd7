package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// UserKey 认证通过后在 gin 上下文中保存当前用户。
const UserKey = "user"

// Context 把请求 ID 放到 log.L 读取的键上，需安装在 RequestID 之后。
func Context() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(log.KeyRequestID, c.GetString(XRequestIDKey))
		c.Next()
	}
}
