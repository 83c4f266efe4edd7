package v1

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/usercache"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/auth"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

const msgInvalidCredentials = "Invalid email or password"

// UserSrv 用户与认证。
type UserSrv interface {
	Register(ctx context.Context, req *v1.RegisterRequest) (*v1.AuthResponse, error)
	Login(ctx context.Context, req *v1.LoginRequest) (*v1.AuthResponse, error)
	FindByEmail(ctx context.Context, email string) (*v1.User, error)
	Get(ctx context.Context, id string) (*v1.User, error)
	Update(ctx context.Context, id string, input resource.Document) (*v1.User, error)
	Authenticate(ctx context.Context, token string) (*v1.User, error)
}

var _ UserSrv = (*userService)(nil)

type userService struct {
	*resource.Service[v1.User, *v1.User]

	jwt        JWTConfig
	cache      usercache.Cache
	bcryptCost int
}

func newUsers(factory store.Factory, v *validator.Validate, opts Options) *userService {
	u := &userService{
		Service:    resource.New[v1.User](factory.Users(), "User", resource.WithValidator(v), resource.WithClock(opts.Now)),
		jwt:        opts.JWT,
		cache:      opts.UserCache,
		bcryptCost: opts.BcryptCost,
	}
	u.SetHooks(u)
	return u
}

// BeforeCreate 统一邮箱格式，唯一索引按小写比较。
func (u *userService) BeforeCreate(_ context.Context, user *v1.User) error {
	user.Email = normalizeEmail(user.Email)
	user.Name = strings.TrimSpace(user.Name)
	return nil
}

// AfterUpdate 删除缓存中的旧用户。
func (u *userService) AfterUpdate(ctx context.Context, id string, _, _ *v1.User, _ resource.Document) error {
	u.cache.Delete(ctx, id)
	return nil
}

// TransformResource 对外返回的用户不带密码哈希。
func (u *userService) TransformResource(user *v1.User) *v1.User {
	user.Password = ""
	return user
}

func (u *userService) Register(ctx context.Context, req *v1.RegisterRequest) (*v1.AuthResponse, error) {
	logger := log.L(ctx).WithValues("service", "UserService", "method", "Register")

	existing, err := u.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Infow("email already registered", "email", existing.Email)
		return nil, errors.WithCode(code.ErrUserAlreadyExist, "User with email %s already exists", existing.Email)
	}

	hashed, err := auth.EncryptWithCost(req.Password, u.bcryptCost)
	if err != nil {
		return nil, errors.WrapC(err, code.ErrEncrypt, "%s", "Failed to hash password")
	}

	user, err := u.Service.Create(ctx, &v1.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}, &resource.WriteOptions{SkipLogging: true})
	if err != nil {
		// 并发注册时由唯一索引兜底
		if errors.IsCode(err, code.ErrResourceConflict) {
			return nil, errors.WrapC(err, code.ErrUserAlreadyExist, "User with email %s already exists", normalizeEmail(req.Email))
		}
		return nil, err
	}
	logger.Infow("user registered", "userId", user.ID)

	return u.issue(user)
}

func (u *userService) Login(ctx context.Context, req *v1.LoginRequest) (*v1.AuthResponse, error) {
	user, err := u.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Deleted {
		return nil, errors.WithCode(code.ErrPasswordIncorrect, "%s", msgInvalidCredentials)
	}
	if err := auth.Compare(user.Password, req.Password); err != nil {
		log.L(ctx).Infow("password mismatch", "userId", user.ID)
		return nil, errors.WrapC(err, code.ErrPasswordIncorrect, "%s", msgInvalidCredentials)
	}

	return u.issue(u.TransformResource(user))
}

// FindByEmail 按邮箱查询，不存在时返回 nil。返回值包含密码哈希。
func (u *userService) FindByEmail(ctx context.Context, email string) (*v1.User, error) {
	return u.FindOne(ctx, resource.Document{"email": normalizeEmail(email)})
}

// Get 按 ID 读取用户，优先读缓存。
func (u *userService) Get(ctx context.Context, id string) (*v1.User, error) {
	if user, ok := u.cache.Get(ctx, id); ok {
		return user, nil
	}

	user, err := u.FindResource(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	u.cache.Set(ctx, user)

	return user, nil
}

func (u *userService) Update(ctx context.Context, id string, input resource.Document) (*v1.User, error) {
	if name, ok := input["name"].(string); ok {
		input["name"] = strings.TrimSpace(name)
	}
	return u.Service.Update(ctx, id, input, nil, nil)
}

// Authenticate 校验令牌并加载令牌所属的用户。
func (u *userService) Authenticate(ctx context.Context, token string) (*v1.User, error) {
	sub, err := auth.Parse(token, u.jwt.Key)
	if err != nil {
		return nil, errors.WrapC(err, code.ErrTokenInvalid, "%s", "Invalid or expired token")
	}

	user, err := u.Get(ctx, sub)
	if err != nil {
		return nil, errors.WrapC(err, code.ErrTokenInvalid, "%s", "Invalid or expired token")
	}
	if user.Deleted {
		return nil, errors.WithCode(code.ErrTokenInvalid, "%s", "Invalid or expired token")
	}

	return user, nil
}

func (u *userService) issue(user *v1.User) (*v1.AuthResponse, error) {
	timeout := u.jwt.Timeout
	if timeout <= 0 {
		timeout = 24 * time.Hour
	}
	token, _, err := auth.Sign(user.ID, u.jwt.Key, u.jwt.Realm, timeout)
	if err != nil {
		return nil, errors.WrapC(err, code.ErrSignatureInvalid, "%s", "Failed to sign token")
	}
	return &v1.AuthResponse{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
