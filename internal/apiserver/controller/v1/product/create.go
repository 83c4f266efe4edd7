package product

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// Create add new product to the storage.
func (p *ProductController) Create(c *gin.Context) {
	log.L(c).Info("product create function called.")

	var r v1.CreateProductRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, resource.NewBindError(err), nil)
		return
	}

	product, err := p.srv.Products().Create(c, r.Product())
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteCreated(c, product)
}
