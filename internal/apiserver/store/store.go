/*
Package store 定义存储层工厂。

mongo、mysql、memory 三种实现都以文档为单位读写，
资源服务只依赖 resource.Collection，不感知具体驱动。
*/
package store

import (
	"context"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
)

// 集合名
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
)

var client Factory

// Factory 存储工厂。
type Factory interface {
	Users() resource.Collection
	Products() resource.Collection
	Ping(ctx context.Context) error
	Close() error
}

func Client() Factory {
	return client
}

func SetClient(factory Factory) {
	client = factory
}
