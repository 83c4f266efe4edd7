package user

import (
	"github.com/gin-gonic/gin"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/middleware/auth"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// Me 返回当前令牌对应的用户。
func (u *UserController) Me(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		core.WriteResponse(c, errors.WithCode(code.ErrTokenInvalid, "%s", "Invalid or expired token"), nil)
		return
	}

	core.WriteResponse(c, nil, user)
}
