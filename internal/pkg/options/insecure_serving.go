package options

import (
	"net"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/server"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// InsecureServingOptions HTTP 监听参数。
type InsecureServingOptions struct {
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`
	BindPort    int    `json:"bind-port"    mapstructure:"bind-port"`
}

// NewInsecureServingOptions is for creating an unauthenticated, unauthorized, insecure port.
func NewInsecureServingOptions() *InsecureServingOptions {
	return &InsecureServingOptions{
		BindAddress: "0.0.0.0",
		BindPort:    8080,
	}
}

// Complete 兼容旧的 PORT 环境变量。
func (s *InsecureServingOptions) Complete() error {
	raw := os.Getenv("PORT")
	if raw == "" {
		return nil
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid PORT %q", raw)
	}
	log.Infof("use PORT=%d from environment", port)
	s.BindPort = port

	return nil
}

// ApplyTo applies the run options to the method receiver and returns self.
func (s *InsecureServingOptions) ApplyTo(c *server.Config) error {
	c.InsecureServing = &server.InsecureServingInfo{
		Address: net.JoinHostPort(s.BindAddress, strconv.Itoa(s.BindPort)),
	}

	return nil
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (s *InsecureServingOptions) Validate() []error {
	var errs []error

	if s.BindPort < 0 || s.BindPort > 65535 {
		errs = append(errs, errors.Errorf("--insecure.bind-port %v must be between 0 and 65535, inclusive.", s.BindPort))
	}

	return errs
}

// AddFlags adds flags related to features for a specific api server to the
// specified FlagSet.
func (s *InsecureServingOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.BindAddress, "insecure.bind-address", s.BindAddress, ""+
		"The IP address on which to serve the --insecure.bind-port "+
		"(set to 0.0.0.0 for all IPv4 interfaces and :: for all IPv6 interfaces).")
	fs.IntVar(&s.BindPort, "insecure.bind-port", s.BindPort, ""+
		"The port on which to serve unsecured, unauthenticated access. The PORT environment variable overrides it.")
}
