package product

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// Get get a product by id. ?detailed=true 时附带 inStock。
func (p *ProductController) Get(c *gin.Context) {
	log.L(c).Info("get product function called.")

	detailed, _ := strconv.ParseBool(c.Query("detailed"))
	product, err := p.srv.Products().Get(c, c.Param("id"), detailed)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, product)
}
