/*
Package validator 让字段错误使用 json 字段名。

导入本包后，gin 绑定使用的校验器同时生效：

	type RegisterRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

校验失败时 FieldError.Field() 返回 "email" 而不是 "Email"。
*/
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// jsonTagName 返回字段的 json 名，"-" 或未设置时使用结构体字段名。
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// New 返回使用 validate 标签、按 json 名报告字段的校验器。
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	return v
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
	}
}
