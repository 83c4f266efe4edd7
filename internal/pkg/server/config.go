package server

import (
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Config 通用 API 服务器配置，由各个 options 的 ApplyTo 填充。
type Config struct {
	InsecureServing *InsecureServingInfo
	Jwt             *JwtInfo
	Mode            string
	Middlewares     []string
	Healthz         bool
	EnableProfiling bool
	EnableMetrics   bool
	ShutdownTimeout time.Duration
}

// InsecureServingInfo HTTP 监听地址。
type InsecureServingInfo struct {
	Address string
}

// JwtInfo 令牌签发参数。
type JwtInfo struct {
	// defaults to "ecommerce jwt"
	Realm string
	// defaults to empty
	Key string
	// defaults to one day
	Timeout time.Duration
	// defaults to zero
	MaxRefresh time.Duration
}

// NewConfig returns a Config struct with the default values.
func NewConfig() *Config {
	return &Config{
		InsecureServing: &InsecureServingInfo{Address: net.JoinHostPort("0.0.0.0", strconv.Itoa(8080))},
		Mode:            gin.ReleaseMode,
		Healthz:         true,
		EnableProfiling: true,
		EnableMetrics:   true,
		Middlewares:     []string{},
		ShutdownTimeout: 10 * time.Second,
		Jwt: &JwtInfo{
			Realm:      "ecommerce jwt",
			Timeout:    24 * time.Hour,
			MaxRefresh: 24 * time.Hour,
		},
	}
}

// CompletedConfig is the completed configuration for GenericAPIServer.
type CompletedConfig struct {
	*Config
}

// Complete fills in any fields not set that are required to have valid data.
func (c *Config) Complete() CompletedConfig {
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return CompletedConfig{c}
}

// New returns a new instance of GenericAPIServer from the given config.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		InsecureServingInfo: c.InsecureServing,
		ShutdownTimeout:     c.ShutdownTimeout,
		healthz:             c.Healthz,
		enableMetrics:       c.EnableMetrics,
		enableProfiling:     c.EnableProfiling,
		middlewares:         c.Middlewares,
		Engine:              gin.New(),
	}

	initGenericAPIServer(s)

	return s, nil
}
