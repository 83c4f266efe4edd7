// Package user 注册、登录接口。
package user

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	srvv1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/service/v1"
)

// UserController create a user handler used to handle request for user resource.
type UserController struct {
	srv srvv1.Service
}

// NewUserController creates a user handler.
func NewUserController(srv srvv1.Service) *UserController {
	return &UserController{srv: srv}
}

// writeToken 令牌同时放在响应头中，客户端可直接转发。
func writeToken(c *gin.Context, resp *v1.AuthResponse) {
	c.Header("Authorization", "Bearer "+resp.Token)
}
