package product

import (
	"github.com/gin-gonic/gin"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// GetBySku 按 SKU 查询未删除的商品。
func (p *ProductController) GetBySku(c *gin.Context) {
	sku := c.Param("sku")
	product, err := p.srv.Products().FindBySku(c, sku)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}
	if product == nil {
		core.WriteResponse(c, errors.WithCode(code.ErrProductNotFound, "Product with sku %s not found", sku), nil)
		return
	}

	core.WriteResponse(c, nil, product)
}

// ListByCategory 返回分类下全部在售商品，不分页。
func (p *ProductController) ListByCategory(c *gin.Context) {
	products, err := p.srv.Products().FindByCategory(c, c.Param("category"))
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, products)
}
