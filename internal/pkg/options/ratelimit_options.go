package options

import (
	"github.com/spf13/pflag"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/middleware"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// RateLimitOptions 登录、注册接口按客户端 IP 限流。
type RateLimitOptions struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	QPS     float64 `json:"qps"     mapstructure:"qps"`
	Burst   int     `json:"burst"   mapstructure:"burst"`
}

func NewRateLimitOptions() *RateLimitOptions {
	return &RateLimitOptions{
		Enabled: true,
		QPS:     5,
		Burst:   10,
	}
}

func (o *RateLimitOptions) Validate() []error {
	var errs []error

	if !o.Enabled {
		return errs
	}
	if o.QPS <= 0 {
		errs = append(errs, errors.Errorf("--ratelimit.qps must be positive, got %v", o.QPS))
	}
	if o.Burst < 1 {
		errs = append(errs, errors.Errorf("--ratelimit.burst must be at least 1, got %d", o.Burst))
	}

	return errs
}

func (o *RateLimitOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "ratelimit.enabled", o.Enabled, "Limit the request rate of the login and register endpoints.")
	fs.Float64Var(&o.QPS, "ratelimit.qps", o.QPS, "Requests per second allowed for one client.")
	fs.IntVar(&o.Burst, "ratelimit.burst", o.Burst, "Burst size allowed for one client.")
}

// NewLimiter 未启用时返回 nil。
func (o *RateLimitOptions) NewLimiter() *middleware.RateLimiter {
	if !o.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(o.QPS, o.Burst)
}
