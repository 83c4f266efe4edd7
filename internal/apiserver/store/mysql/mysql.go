// Package mysql 基于 gorm 的关系型存储实现，每个集合对应一张表。
package mysql

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/db"
)

var (
	mysqlFactory store.Factory
	once         sync.Once
)

type datastore struct {
	db *gorm.DB
}

func (ds *datastore) Users() resource.Collection {
	return newCollection[userRow](ds.db, store.UsersCollection, userColumns)
}

func (ds *datastore) Products() resource.Collection {
	return newCollection[productRow](ds.db, store.ProductsCollection, productColumns)
}

func (ds *datastore) Ping(ctx context.Context) error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (ds *datastore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetMySQLFactoryOr 创建 mysql 存储工厂并自动迁移表结构。
func GetMySQLFactoryOr(opts *db.MySQLOptions) (store.Factory, error) {
	if opts == nil && mysqlFactory == nil {
		return nil, fmt.Errorf("failed to get mysql store factory")
	}

	var err error
	once.Do(func() {
		var dbIns *gorm.DB
		dbIns, err = db.NewMySQL(opts)
		if err != nil {
			return
		}
		if err = dbIns.AutoMigrate(&userRow{}, &productRow{}); err != nil {
			return
		}
		mysqlFactory = &datastore{db: dbIns}
	})

	if mysqlFactory == nil || err != nil {
		return nil, fmt.Errorf("failed to get mysql store factory, mysqlFactory: %+v, error: %w", mysqlFactory, err)
	}

	return mysqlFactory, nil
}
