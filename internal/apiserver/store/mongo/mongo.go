// Package mongo 基于 MongoDB 的存储实现。
package mongo

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/db"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

var (
	mongoFactory store.Factory
	once         sync.Once
)

type datastore struct {
	client   *mongo.Client
	database *mongo.Database
}

func (ds *datastore) Users() resource.Collection {
	return newCollection(ds.database.Collection(store.UsersCollection))
}

func (ds *datastore) Products() resource.Collection {
	return newCollection(ds.database.Collection(store.ProductsCollection))
}

func (ds *datastore) Ping(ctx context.Context) error {
	return ds.client.Ping(ctx, nil)
}

func (ds *datastore) Close() error {
	return ds.client.Disconnect(context.Background())
}

// GetMongoFactoryOr 创建 mongo 存储工厂并建立索引，多次调用返回同一实例。
func GetMongoFactoryOr(ctx context.Context, opts *db.MongoOptions) (store.Factory, error) {
	if opts == nil && mongoFactory == nil {
		return nil, fmt.Errorf("failed to get mongo store factory")
	}

	var err error
	once.Do(func() {
		var client *mongo.Client
		client, err = db.NewMongo(ctx, opts)
		if err != nil {
			return
		}
		ds := &datastore{client: client, database: client.Database(opts.Database)}
		if err = EnsureIndexes(ctx, ds.database); err != nil {
			_ = client.Disconnect(context.Background())
			return
		}
		mongoFactory = ds
	})

	if mongoFactory == nil || err != nil {
		return nil, fmt.Errorf("failed to get mongo store factory, mongoFactory: %+v, error: %w", mongoFactory, err)
	}

	return mongoFactory, nil
}

// NewFactory 使用已有的数据库创建工厂，不做单例缓存。
func NewFactory(client *mongo.Client, database string) store.Factory {
	return &datastore{client: client, database: client.Database(database)}
}

// EnsureIndexes 建立唯一索引：用户邮箱，非空商品 SKU。
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(store.UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = database.Collection(store.ProductsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_sku").
				SetPartialFilterExpression(bson.M{"sku": bson.M{"$type": "string", "$gt": ""}}),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "deleted", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetName("idx_category_active"),
		},
	})
	if err != nil {
		return fmt.Errorf("create products indexes: %w", err)
	}

	log.Info("mongo indexes ensured")
	return nil
}
