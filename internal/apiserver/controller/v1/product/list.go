package product

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// List 在售商品分页列表，可按分类过滤。
func (p *ProductController) List(c *gin.Context) {
	log.L(c).Info("list product function called.")

	var r v1.ListProductsQuery
	if err := c.ShouldBindQuery(&r); err != nil {
		core.WriteResponse(c, resource.NewBindError(err), nil)
		return
	}
	if r.Limit == 0 {
		r.Limit = defaultListLimit
	}
	if r.Limit > maxListLimit {
		r.Limit = maxListLimit
	}

	products, err := p.srv.Products().List(c, &r)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, products)
}
