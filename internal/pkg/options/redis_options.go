package options

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/pflag"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/usercache"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// RedisOptions defines options for redis cluster.
// Addrs 为空时不连接 redis，认证用户缓存退化为进程内缓存。
type RedisOptions struct {
	Addrs        []string      `json:"addrs"         mapstructure:"addrs"`
	Username     string        `json:"username"      mapstructure:"username"`
	Password     string        `json:"-"             mapstructure:"password"`
	Database     int           `json:"database"      mapstructure:"database"`
	MasterName   string        `json:"master-name"   mapstructure:"master-name"`
	PoolSize     int           `json:"pool-size"     mapstructure:"pool-size"`
	DialTimeout  time.Duration `json:"dial-timeout"  mapstructure:"dial-timeout"`
	UserCacheTTL time.Duration `json:"user-cache-ttl" mapstructure:"user-cache-ttl"`
}

// NewRedisOptions create a `zero` value instance.
func NewRedisOptions() *RedisOptions {
	return &RedisOptions{
		Addrs:        []string{},
		Database:     0,
		PoolSize:     100,
		DialTimeout:  5 * time.Second,
		UserCacheTTL: time.Minute,
	}
}

// Validate verifies flags passed to RedisOptions.
func (o *RedisOptions) Validate() []error {
	var errs []error

	if len(o.Addrs) > 1 && o.MasterName == "" && o.Database != 0 {
		errs = append(errs, errors.Errorf("--redis.database must be 0 in cluster mode"))
	}
	if o.UserCacheTTL < 0 {
		errs = append(errs, errors.Errorf("--redis.user-cache-ttl can not be negative"))
	}

	return errs
}

// AddFlags adds flags related to redis storage for a specific APIServer to the specified FlagSet.
func (o *RedisOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.Addrs, "redis.addrs", o.Addrs, ""+
		"A set of redis address(format: 127.0.0.1:6379). Leave empty to cache authenticated users in process.")
	fs.StringVar(&o.Username, "redis.username", o.Username, "Username for access to redis service.")
	fs.StringVar(&o.Password, "redis.password", o.Password, "Optional auth password for Redis db.")
	fs.IntVar(&o.Database, "redis.database", o.Database, ""+
		"By default, the database is 0. Setting the database is not supported with redis cluster.")
	fs.StringVar(&o.MasterName, "redis.master-name", o.MasterName, "The name of master redis instance.")
	fs.IntVar(&o.PoolSize, "redis.pool-size", o.PoolSize, "Maximum number of socket connections.")
	fs.DurationVar(&o.DialTimeout, "redis.dial-timeout", o.DialTimeout, "Timeout when connecting to redis service.")
	fs.DurationVar(&o.UserCacheTTL, "redis.user-cache-ttl", o.UserCacheTTL, ""+
		"How long an authenticated user is cached. Set to 0 to disable the cache.")
}

// NewUserCache 根据配置创建认证用户缓存。
func (o *RedisOptions) NewUserCache(ctx context.Context) (usercache.Cache, error) {
	if o.UserCacheTTL == 0 {
		return usercache.Disabled{}, nil
	}
	if len(o.Addrs) == 0 {
		return usercache.NewMemory(o.UserCacheTTL), nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:       o.Addrs,
		Username:    o.Username,
		Password:    o.Password,
		DB:          o.Database,
		MasterName:  o.MasterName,
		PoolSize:    o.PoolSize,
		DialTimeout: o.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, o.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "connect redis %v", o.Addrs)
	}
	log.Infof("Redis connected: addrs=%v, db=%d", o.Addrs, o.Database)

	return usercache.NewRedis(client, o.UserCacheTTL), nil
}
