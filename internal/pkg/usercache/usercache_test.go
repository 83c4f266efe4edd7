package usercache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	defer c.Close()

	user := &v1.User{Base: resource.Base{ID: "u1"}, Name: "Jane", Email: "jane@example.com", Password: "hash"}

	_, ok := c.Get(ctx, "u1")
	assert.False(t, ok)

	c.Set(ctx, user)
	got, ok := c.Get(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, "Jane", got.Name)
	assert.Empty(t, got.Password)
	assert.Equal(t, "hash", user.Password, "caller's user must not be modified")

	got.Name = "changed"
	again, _ := c.Get(ctx, "u1")
	assert.Equal(t, "Jane", again.Name)

	c.Delete(ctx, "u1")
	_, ok = c.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestMemoryCache_Expires(t *testing.T) {
	c := NewMemory(20 * time.Millisecond)
	c.Set(context.Background(), &v1.User{Base: resource.Base{ID: "u2"}})

	assert.Eventually(t, func() bool {
		_, ok := c.Get(context.Background(), "u2")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestDisabled(t *testing.T) {
	var c Cache = Disabled{}
	c.Set(context.Background(), &v1.User{Base: resource.Base{ID: "u3"}})
	_, ok := c.Get(context.Background(), "u3")
	assert.False(t, ok)
}
