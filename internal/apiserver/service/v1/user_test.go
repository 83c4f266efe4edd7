package v1

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store/memory"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/usercache"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/auth"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

const testJWTKey = "test-secret"

func newTestService(t *testing.T, opts Options) Service {
	t.Helper()
	opts.JWT = JWTConfig{Realm: "ecommerce test", Key: testJWTKey, Timeout: time.Hour}
	opts.BcryptCost = bcrypt.MinCost
	return NewService(memory.New(), opts)
}

func register(t *testing.T, srv Service, email string) *v1.AuthResponse {
	t.Helper()
	resp, err := srv.Users().Register(context.Background(), &v1.RegisterRequest{
		Name:     "Jane Doe",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	srv := newTestService(t, Options{})
	resp := register(t, srv, " Jane@Example.com ")

	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Empty(t, resp.User.Password, "password hash must not leave the service")
	assert.False(t, resp.User.CreatedAt.IsZero())

	sub, err := auth.Parse(resp.Token, testJWTKey)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, sub)

	stored, err := srv.Users().FindByEmail(context.Background(), "JANE@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, auth.Compare(stored.Password, "secret123"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := newTestService(t, Options{})
	register(t, srv, "jane@example.com")

	_, err := srv.Users().Register(context.Background(), &v1.RegisterRequest{
		Name:     "Other",
		Email:    "JANE@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrUserAlreadyExist))
	assert.Equal(t, 409, errors.GetHTTPStatus(err))
}

func TestLogin(t *testing.T) {
	srv := newTestService(t, Options{})
	registered := register(t, srv, "jane@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "ok", email: "jane@example.com", password: "secret123"},
		{name: "email is case insensitive", email: "Jane@Example.com", password: "secret123"},
		{name: "wrong password", email: "jane@example.com", password: "nope", wantErr: true},
		{name: "unknown email", email: "bob@example.com", password: "secret123", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := srv.Users().Login(context.Background(), &v1.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, code.ErrPasswordIncorrect))
				assert.Equal(t, msgInvalidCredentials, errors.GetMessage(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.User.ID, resp.User.ID)
			assert.Empty(t, resp.User.Password)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	cache := usercache.NewMemory(time.Minute)
	srv := newTestService(t, Options{UserCache: cache})
	registered := register(t, srv, "jane@example.com")

	user, err := srv.Users().Authenticate(context.Background(), registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)

	cached, ok := cache.Get(context.Background(), registered.User.ID)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", cached.Email)

	otherKey, _, err := auth.Sign(registered.User.ID, "other-secret", "ecommerce test", time.Hour)
	require.NoError(t, err)
	expired, _, err := auth.Sign(registered.User.ID, testJWTKey, "ecommerce test", -time.Minute)
	require.NoError(t, err)
	unknownUser, _, err := auth.Sign("665f1c2b9d3e4a0012345678", testJWTKey, "ecommerce test", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong key", token: otherKey},
		{name: "expired", token: expired},
		{name: "unknown user", token: unknownUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.Users().Authenticate(context.Background(), tt.token)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, code.ErrTokenInvalid))
			assert.Equal(t, 401, errors.GetHTTPStatus(err))
		})
	}
}

func TestGetUser_NotFound(t *testing.T) {
	srv := newTestService(t, Options{})

	_, err := srv.Users().Get(context.Background(), "bad-id")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrResourceNotFound))
}

func TestUpdateUser_InvalidatesCache(t *testing.T) {
	cache := usercache.NewMemory(time.Minute)
	srv := newTestService(t, Options{UserCache: cache})
	resp := register(t, srv, "cache@example.com")
	ctx := context.Background()

	_, err := srv.Users().Get(ctx, resp.User.ID)
	require.NoError(t, err)
	_, hit := cache.Get(ctx, resp.User.ID)
	require.True(t, hit)

	updated, err := srv.Users().Update(ctx, resp.User.ID, resource.Document{"name": "  Jane Roe "})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", updated.Name)
	assert.Empty(t, updated.Password)
	assert.NotNil(t, updated.UpdatedAt)

	_, hit = cache.Get(ctx, resp.User.ID)
	assert.False(t, hit)

	user, err := srv.Users().Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", user.Name)

	// 密码哈希在合并更新后保留
	stored, err := srv.Users().FindByEmail(ctx, "cache@example.com")
	require.NoError(t, err)
	assert.NoError(t, auth.Compare(stored.Password, "secret123"))
}
