// Package db 创建数据库连接。
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// MongoOptions 定义 mongo 连接参数。
type MongoOptions struct {
	URI             string
	Database        string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	SocketTimeout   time.Duration
	ConnectTimeout  time.Duration
	ApplicationName string
}

// NewMongo 连接 mongo 并确认主节点可用。
func NewMongo(ctx context.Context, opts *MongoOptions) (*mongo.Client, error) {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetMinPoolSize(opts.MinPoolSize).
		SetSocketTimeout(opts.SocketTimeout).
		SetConnectTimeout(opts.ConnectTimeout).
		SetRetryWrites(true)
	if opts.ApplicationName != "" {
		clientOpts.SetAppName(opts.ApplicationName)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	log.Infof("MongoDB connected: database=%s, MaxPoolSize=%d, MinPoolSize=%d", opts.Database, opts.MaxPoolSize, opts.MinPoolSize)

	return client, nil
}
