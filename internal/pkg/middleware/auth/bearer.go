// Package auth 实现 Bearer 令牌认证策略。
package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/middleware"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// authHeaderCount 合法 Authorization 头按空格分割后的段数。
const authHeaderCount = 2

// Authenticator 校验令牌并返回令牌所属的用户。
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*v1.User, error)
}

// BearerStrategy 校验 "Authorization: Bearer <token>"。
type BearerStrategy struct {
	authenticator Authenticator
}

var _ middleware.AuthStrategy = &BearerStrategy{}

// NewBearerStrategy create bearer strategy with an authenticator.
func NewBearerStrategy(authenticator Authenticator) BearerStrategy {
	return BearerStrategy{authenticator: authenticator}
}

// AuthFunc 认证通过后把用户写入 gin 上下文。
func (b BearerStrategy) AuthFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			core.AbortWithError(c, errors.WithCode(code.ErrMissingHeader, "%s", "Authorization header missing"))
			return
		}

		parts := strings.SplitN(header, " ", authHeaderCount)
		if len(parts) != authHeaderCount || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			core.AbortWithError(c, errors.WithCode(code.ErrInvalidAuthHeader, "%s", "Invalid authorization format"))
			return
		}

		user, err := b.authenticator.Authenticate(c, strings.TrimSpace(parts[1]))
		if err != nil {
			log.L(c).Errorf("Auth middleware error: %v", err)
			core.AbortWithError(c, errors.WrapC(err, code.ErrTokenInvalid, "%s", "Invalid or expired token"))
			return
		}

		c.Set(middleware.UserKey, user)
		c.Set(log.KeyUserID, user.ID)
		c.Next()
	}
}

// CurrentUser 返回认证中间件写入的用户。
func CurrentUser(c *gin.Context) (*v1.User, bool) {
	v, ok := c.Get(middleware.UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*v1.User)
	return user, ok
}
