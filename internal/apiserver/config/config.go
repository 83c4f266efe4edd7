// Package config apiserver 运行配置，由命令行选项构建。
package config

import "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/options"

// Config is the running configuration structure of the ecommerce apiserver.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
// on a given command line or configuration file option.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
