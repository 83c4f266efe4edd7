package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Cors 反射请求的 Origin 并允许携带凭证。
func Cors() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", XRequestIDKey},
		ExposeHeaders:    []string{"Authorization", XRequestIDKey, XRequestedAtKey},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
