package product

import (
	"github.com/gin-gonic/gin"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// Delete 软删除，返回删除后的商品。
func (p *ProductController) Delete(c *gin.Context) {
	log.L(c).Info("delete product function called.")

	product, err := p.srv.Products().SoftDelete(c, c.Param("id"))
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, product)
}
