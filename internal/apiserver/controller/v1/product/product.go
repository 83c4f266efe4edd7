// Package product 商品库存接口，均需要 Bearer 认证。
package product

import (
	srvv1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/service/v1"
)

// 未指定 limit 时每页 10 条，超过 100 按 100 处理。
const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ProductController create a product handler used to handle request for product resource.
type ProductController struct {
	srv srvv1.Service
}

// NewProductController creates a product handler.
func NewProductController(srv srvv1.Service) *ProductController {
	return &ProductController{srv: srv}
}
