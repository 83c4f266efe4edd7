package user

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// Login 校验邮箱和密码，签发新令牌，与注册一致返回 201。
func (u *UserController) Login(c *gin.Context) {
	log.L(c).Info("user login function called.")

	var r v1.LoginRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, resource.NewBindError(err), nil)
		return
	}

	resp, err := u.srv.Users().Login(c, &r)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	writeToken(c, resp)
	core.WriteCreated(c, resp)
}
