// Package options 各组件的命令行参数，统一提供 AddFlags、Validate 与 ApplyTo。
package options

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/novalagung/gubrak"
	"github.com/spf13/pflag"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/server"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// ServerRunOptions contains the options while running a generic api server.
type ServerRunOptions struct {
	Mode            string        `json:"mode"             mapstructure:"mode"`
	Healthz         bool          `json:"healthz"          mapstructure:"healthz"`
	Middlewares     []string      `json:"middlewares"      mapstructure:"middlewares"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewServerRunOptions creates a new ServerRunOptions object with default parameters.
func NewServerRunOptions() *ServerRunOptions {
	defaults := server.NewConfig()

	return &ServerRunOptions{
		Mode:            defaults.Mode,
		Healthz:         defaults.Healthz,
		Middlewares:     []string{"recovery", "secure", "options", "nocache", "cors", "logger"},
		ShutdownTimeout: defaults.ShutdownTimeout,
	}
}

// ApplyTo applies the run options to the method receiver and returns self.
func (s *ServerRunOptions) ApplyTo(c *server.Config) error {
	c.Mode = s.Mode
	c.Healthz = s.Healthz
	c.Middlewares = s.Middlewares
	c.ShutdownTimeout = s.ShutdownTimeout

	return nil
}

// Validate checks validation of ServerRunOptions.
func (s *ServerRunOptions) Validate() []error {
	var errs []error

	if found, _ := gubrak.Includes([]string{gin.DebugMode, gin.ReleaseMode, gin.TestMode}, s.Mode); !found {
		errs = append(errs, errors.Errorf("--server.mode must be one of debug, release or test, got %q", s.Mode))
	}
	if s.ShutdownTimeout <= 0 {
		errs = append(errs, errors.Errorf("--server.shutdown-timeout must be positive, got %s", s.ShutdownTimeout))
	}

	return errs
}

// AddFlags adds flags for a specific APIServer to the specified FlagSet.
func (s *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Mode, "server.mode", s.Mode, ""+
		"Start the server in a specified server mode. Supported server mode: debug, test, release.")

	fs.BoolVar(&s.Healthz, "server.healthz", s.Healthz, ""+
		"Add self readiness check and install /healthz router.")

	fs.StringSliceVar(&s.Middlewares, "server.middlewares", s.Middlewares, ""+
		"List of allowed middlewares for server, comma separated. If this list is empty default middlewares will be used.")

	fs.DurationVar(&s.ShutdownTimeout, "server.shutdown-timeout", s.ShutdownTimeout, ""+
		"Maximum time to wait for in-flight requests when shutting down.")
}
