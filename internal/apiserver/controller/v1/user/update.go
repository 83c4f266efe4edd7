package user

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/middleware/auth"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// UpdateMe 修改当前用户的资料。
func (u *UserController) UpdateMe(c *gin.Context) {
	log.L(c).Info("update user function called.")

	current, ok := auth.CurrentUser(c)
	if !ok {
		core.WriteResponse(c, errors.WithCode(code.ErrTokenInvalid, "%s", "Invalid or expired token"), nil)
		return
	}

	var r v1.UpdateUserRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, resource.NewBindError(err), nil)
		return
	}

	user, err := u.srv.Users().Update(c, current.ID, r.Document())
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, user)
}
