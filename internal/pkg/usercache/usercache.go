/*
Package usercache 缓存认证中间件按令牌 sub 读取的用户，减少每个请求的数据库查询。

两种实现：
  - redis：多实例部署时共享；
  - memory：基于 go-cache 的进程内缓存，未配置 redis 时使用。

缓存的是去掉密码的用户，过期时间较短，UserSrv 更新用户后删除对应条目。
*/
package usercache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/metrics"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

const keyPrefix = "ecommerce:user:"

// Cache 用户缓存。
type Cache interface {
	Get(ctx context.Context, id string) (*v1.User, bool)
	Set(ctx context.Context, user *v1.User)
	Delete(ctx context.Context, id string)
	Close() error
}

type redisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis 基于 redis 的缓存。
func NewRedis(client redis.UniversalClient, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, id string) (*v1.User, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.L(ctx).Warnf("read user cache failed: %v", err)
		}
		metrics.UserCacheLookups.WithLabelValues("redis", "miss").Inc()
		return nil, false
	}

	var user v1.User
	if err := json.Unmarshal(raw, &user); err != nil {
		metrics.UserCacheLookups.WithLabelValues("redis", "miss").Inc()
		return nil, false
	}
	metrics.UserCacheLookups.WithLabelValues("redis", "hit").Inc()
	return &user, true
}

func (c *redisCache) Set(ctx context.Context, user *v1.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+user.ID, raw, c.ttl).Err(); err != nil {
		log.L(ctx).Warnf("write user cache failed: %v", err)
	}
}

func (c *redisCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		log.L(ctx).Warnf("delete user cache failed: %v", err)
	}
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

type memoryCache struct {
	cache *gocache.Cache
}

// NewMemory 进程内缓存。
func NewMemory(ttl time.Duration) Cache {
	return &memoryCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *memoryCache) Get(_ context.Context, id string) (*v1.User, bool) {
	v, ok := c.cache.Get(id)
	if !ok {
		metrics.UserCacheLookups.WithLabelValues("memory", "miss").Inc()
		return nil, false
	}
	metrics.UserCacheLookups.WithLabelValues("memory", "hit").Inc()
	u := *v.(*v1.User)
	return &u, true
}

func (c *memoryCache) Set(_ context.Context, user *v1.User) {
	u := *user
	u.Password = ""
	c.cache.SetDefault(user.ID, &u)
}

func (c *memoryCache) Delete(_ context.Context, id string) {
	c.cache.Delete(id)
}

func (c *memoryCache) Close() error {
	c.cache.Flush()
	return nil
}

// Disabled 不缓存。
type Disabled struct{}

func (Disabled) Get(context.Context, string) (*v1.User, bool) { return nil, false }
func (Disabled) Set(context.Context, *v1.User)                {}
func (Disabled) Delete(context.Context, string)               {}
func (Disabled) Close() error                                 { return nil }
