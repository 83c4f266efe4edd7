package user

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// Register 注册并返回用户与令牌。
func (u *UserController) Register(c *gin.Context) {
	log.L(c).Info("user register function called.")

	var r v1.RegisterRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, resource.NewBindError(err), nil)
		return
	}

	resp, err := u.srv.Users().Register(c, &r)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	writeToken(c, resp)
	core.WriteCreated(c, resp)
}
