package product

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// Update 部分更新，请求体中未出现的字段保持不变。
func (p *ProductController) Update(c *gin.Context) {
	log.L(c).Info("update product function called.")

	var r v1.UpdateProductRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, resource.NewBindError(err), nil)
		return
	}

	product, err := p.srv.Products().Update(c, c.Param("id"), r.Document())
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, product)
}

// UpdateInventory 设置库存数量。
func (p *ProductController) UpdateInventory(c *gin.Context) {
	log.L(c).Info("update product inventory function called.")

	var r v1.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, resource.NewBindError(err), nil)
		return
	}

	product, err := p.srv.Products().UpdateInventory(c, c.Param("id"), *r.Quantity)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, product)
}
