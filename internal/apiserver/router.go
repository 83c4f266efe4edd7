package apiserver

import (
	"github.com/gin-gonic/gin"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/controller/v1/product"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/controller/v1/user"
	srvv1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/service/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/middleware"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/middleware/auth"
	genericapiserver "github.com/shahid-ra/ecommerce-backend-service/internal/pkg/server"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// routerDeps 路由依赖。limiter 为 nil 时登录、注册不限流。
type routerDeps struct {
	srv     srvv1.Service
	jwt     *genericapiserver.JwtInfo
	limiter *middleware.RateLimiter
}

func initRouter(g *gin.Engine, deps routerDeps) error {
	return installController(g, deps)
}

func installController(g *gin.Engine, deps routerDeps) error {
	refresher, err := newJWTRefresher(deps.jwt)
	if err != nil {
		return err
	}
	bearer := auth.NewBearerStrategy(deps.srv.Users())

	g.NoRoute(func(c *gin.Context) {
		core.WriteResponse(c, errors.WithCode(code.ErrPageNotFound, "Cannot %s %s", c.Request.Method, c.Request.URL.Path), nil)
	})

	v1 := g.Group("/v1")
	{
		userController := user.NewUserController(deps.srv)

		authv1 := v1.Group("/auth")
		if deps.limiter != nil {
			authv1.Use(deps.limiter.Handler())
		}
		{
			authv1.POST("/register", userController.Register)
			authv1.POST("/login", userController.Login)
			authv1.POST("/refresh", refresher.RefreshHandler)
		}

		v1.Use(bearer.AuthFunc())

		v1.GET("/users/me", userController.Me)
		v1.PATCH("/users/me", userController.UpdateMe)

		productv1 := v1.Group("/products")
		{
			productController := product.NewProductController(deps.srv)

			productv1.POST("", productController.Create)
			productv1.GET("", productController.List)
			productv1.GET("/sku/:sku", productController.GetBySku)
			productv1.GET("/category/:category", productController.ListByCategory)
			productv1.GET("/:id", productController.Get)
			productv1.PATCH("/:id", productController.Update)
			productv1.PATCH("/:id/inventory", productController.UpdateInventory)
			productv1.DELETE("/:id", productController.Delete)
		}
	}

	return nil
}
