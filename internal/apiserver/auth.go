package apiserver

import (
	"net/http"
	"time"

	jwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-gonic/gin"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	genericapiserver "github.com/shahid-ra/ecommerce-backend-service/internal/pkg/server"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// refreshResult 刷新令牌的响应。
type refreshResult struct {
	Token  string `json:"token"`
	Expire string `json:"expire"`
}

// newJWTRefresher 只使用 gin-jwt 的刷新流程：
// 令牌在 max-refresh 内可换发，签名密钥与领域与登录签发一致。
func newJWTRefresher(info *genericapiserver.JwtInfo) (*jwt.GinJWTMiddleware, error) {
	return jwt.New(&jwt.GinJWTMiddleware{
		Realm:            info.Realm,
		SigningAlgorithm: "HS256",
		Key:              []byte(info.Key),
		Timeout:          info.Timeout,
		MaxRefresh:       info.MaxRefresh,
		TokenLookup:      "header: Authorization",
		TokenHeadName:    "Bearer",
		TimeFunc:         time.Now,
		RefreshResponse:  refreshResponse(),
		Unauthorized: func(c *gin.Context, status int, message string) {
			log.L(c).Infow("refresh token rejected", "status", status, "reason", message)
			core.WriteResponse(c, errors.WithCode(code.ErrTokenInvalid, "%s", "Invalid or expired token"), nil)
		},
	})
}

func refreshResponse() func(*gin.Context, int, string, time.Time) {
	return func(c *gin.Context, _ int, token string, expire time.Time) {
		c.Header("Authorization", "Bearer "+token)
		c.JSON(http.StatusOK, core.Response{
			Status:  core.StatusSuccess,
			Message: "OK",
			Data: refreshResult{
				Token:  token,
				Expire: expire.Format(time.RFC3339),
			},
		})
	}
}
