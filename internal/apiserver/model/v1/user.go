// Package v1 定义 apiserver v1 的资源模型与请求结构。
package v1

import (
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
)

// User 用户。Password 为 bcrypt 哈希，不输出到 JSON。
type User struct {
	resource.Base `bson:",inline"`

	Name     string `json:"name"  bson:"name"     validate:"required"`
	Email    string `json:"email" bson:"email"    validate:"required,email"`
	Password string `json:"-"     bson:"password" validate:"required"`
}

// RegisterRequest 注册请求。
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求。
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest 修改当前用户资料。
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
}

// Document 返回只包含已设置字段的更新文档。
func (r *UpdateUserRequest) Document() resource.Document {
	doc := resource.Document{}
	if r.Name != nil {
		doc["name"] = *r.Name
	}
	return doc
}

// AuthResponse 注册、登录的响应。
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
