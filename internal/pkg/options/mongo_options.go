package options

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/db"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// 兼容部署脚本中已有的环境变量
const (
	envMongoURI            = "MONGO_DB_URI"
	envMongoDatabase       = "MONGO_DB_NAME"
	envMongoMaxConnections = "MONGO_DB_MAX_CONNECTIONS"
)

// MongoOptions defines options for mongo database.
type MongoOptions struct {
	URI            string        `json:"uri"             mapstructure:"uri"`
	Database       string        `json:"database"        mapstructure:"database"`
	MaxPoolSize    uint64        `json:"max-pool-size"   mapstructure:"max-pool-size"`
	MinPoolSize    uint64        `json:"min-pool-size"   mapstructure:"min-pool-size"`
	SocketTimeout  time.Duration `json:"socket-timeout"  mapstructure:"socket-timeout"`
	ConnectTimeout time.Duration `json:"connect-timeout" mapstructure:"connect-timeout"`
}

// NewMongoOptions create a `zero` value instance.
func NewMongoOptions() *MongoOptions {
	return &MongoOptions{
		URI:            "mongodb://127.0.0.1:27017",
		Database:       "ecommerce",
		MaxPoolSize:    15,
		MinPoolSize:    1,
		SocketTimeout:  60 * time.Second,
		ConnectTimeout: 10 * time.Second,
	}
}

// Complete 环境变量优先于配置文件与命令行默认值。
func (o *MongoOptions) Complete() error {
	if v := os.Getenv(envMongoURI); v != "" {
		o.URI = v
	}
	if v := os.Getenv(envMongoDatabase); v != "" {
		o.Database = v
	}
	if v := os.Getenv(envMongoMaxConnections); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid %s %q", envMongoMaxConnections, v)
		}
		o.MaxPoolSize = n
	}

	return nil
}

// Validate verifies flags passed to MongoOptions.
func (o *MongoOptions) Validate() []error {
	var errs []error

	if o.URI == "" {
		errs = append(errs, errors.Errorf("--mongo.uri can not be empty"))
	}
	if o.Database == "" {
		errs = append(errs, errors.Errorf("--mongo.database can not be empty"))
	}
	if o.MaxPoolSize == 0 || o.MinPoolSize > o.MaxPoolSize {
		errs = append(errs, errors.Errorf("--mongo.max-pool-size must be positive and not less than --mongo.min-pool-size"))
	}

	return errs
}

// AddFlags adds flags related to mongo storage for a specific APIServer to the specified FlagSet.
func (o *MongoOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.URI, "mongo.uri", o.URI, "MongoDB connection string. Overridden by "+envMongoURI+".")
	fs.StringVar(&o.Database, "mongo.database", o.Database, "Database name for the server to use. Overridden by "+envMongoDatabase+".")
	fs.Uint64Var(&o.MaxPoolSize, "mongo.max-pool-size", o.MaxPoolSize, "Maximum number of connections in the pool. Overridden by "+envMongoMaxConnections+".")
	fs.Uint64Var(&o.MinPoolSize, "mongo.min-pool-size", o.MinPoolSize, "Minimum number of connections kept in the pool.")
	fs.DurationVar(&o.SocketTimeout, "mongo.socket-timeout", o.SocketTimeout, "Socket read/write timeout.")
	fs.DurationVar(&o.ConnectTimeout, "mongo.connect-timeout", o.ConnectTimeout, "Timeout for establishing the connection.")
}

// DBOptions 转换为连接参数。
func (o *MongoOptions) DBOptions() *db.MongoOptions {
	return &db.MongoOptions{
		URI:             o.URI,
		Database:        o.Database,
		MaxPoolSize:     o.MaxPoolSize,
		MinPoolSize:     o.MinPoolSize,
		SocketTimeout:   o.SocketTimeout,
		ConnectTimeout:  o.ConnectTimeout,
		ApplicationName: "ecommerce-apiserver",
	}
}
