// Package v1 apiserver 的业务层，控制层只依赖这里的接口。
package v1

import (
	"time"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/producer"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/usercache"
	pkgvalidator "github.com/shahid-ra/ecommerce-backend-service/pkg/validator"
)

// Service 业务入口。
type Service interface {
	Users() UserSrv
	Products() ProductSrv
}

// JWTConfig 令牌签发参数。
type JWTConfig struct {
	Realm   string
	Key     string
	Timeout time.Duration
}

// Options 业务层依赖，未设置的字段使用不做任何事的实现。
type Options struct {
	JWT        JWTConfig
	Producer   producer.MessageProducer
	UserCache  usercache.Cache
	BcryptCost int
	Now        func() time.Time
}

type service struct {
	users    *userService
	products *productService
}

// NewService returns Service interface.
func NewService(factory store.Factory, opts Options) Service {
	if opts.Producer == nil {
		opts.Producer = producer.NewNoopProducer()
	}
	if opts.UserCache == nil {
		opts.UserCache = usercache.Disabled{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	v := pkgvalidator.New()
	return &service{
		users:    newUsers(factory, v, opts),
		products: newProducts(factory, v, opts),
	}
}

func (s *service) Users() UserSrv {
	return s.users
}

func (s *service) Products() ProductSrv {
	return s.products
}
