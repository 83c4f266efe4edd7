// Package options contains flags and options for initializing an apiserver
package options

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	cliflag "github.com/maxiaolu1981/cretem/nexuscore/component-base/cli/flag"

	genericoptions "github.com/shahid-ra/ecommerce-backend-service/internal/pkg/options"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// Options runs an ecommerce api server.
type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions       `json:"server"    mapstructure:"server"`
	InsecureServing         *genericoptions.InsecureServingOptions `json:"insecure"  mapstructure:"insecure"`
	JwtOptions              *genericoptions.JwtOptions             `json:"jwt"       mapstructure:"jwt"`
	StoreOptions            *genericoptions.StoreOptions           `json:"store"     mapstructure:"store"`
	MongoOptions            *genericoptions.MongoOptions           `json:"mongo"     mapstructure:"mongo"`
	MySQLOptions            *genericoptions.MySQLOptions           `json:"mysql"     mapstructure:"mysql"`
	RedisOptions            *genericoptions.RedisOptions           `json:"redis"     mapstructure:"redis"`
	KafkaOptions            *genericoptions.KafkaOptions           `json:"kafka"     mapstructure:"kafka"`
	RateLimitOptions        *genericoptions.RateLimitOptions       `json:"ratelimit" mapstructure:"ratelimit"`
	FeatureOptions          *genericoptions.FeatureOptions         `json:"feature"   mapstructure:"feature"`
	Log                     *log.Options                           `json:"log"       mapstructure:"log"`
}

// NewOptions creates a new Options object with default parameters.
func NewOptions() *Options {
	o := Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		InsecureServing:         genericoptions.NewInsecureServingOptions(),
		JwtOptions:              genericoptions.NewJwtOptions(),
		StoreOptions:            genericoptions.NewStoreOptions(),
		MongoOptions:            genericoptions.NewMongoOptions(),
		MySQLOptions:            genericoptions.NewMySQLOptions(),
		RedisOptions:            genericoptions.NewRedisOptions(),
		KafkaOptions:            genericoptions.NewKafkaOptions(),
		RateLimitOptions:        genericoptions.NewRateLimitOptions(),
		FeatureOptions:          genericoptions.NewFeatureOptions(),
		Log:                     log.NewOptions(),
	}

	return &o
}

// Flags returns flags for a specific APIServer by section name.
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("generic"))
	o.JwtOptions.AddFlags(fss.FlagSet("jwt"))
	o.StoreOptions.AddFlags(fss.FlagSet("store"))
	o.MongoOptions.AddFlags(fss.FlagSet("mongo"))
	o.MySQLOptions.AddFlags(fss.FlagSet("mysql"))
	o.RedisOptions.AddFlags(fss.FlagSet("redis"))
	o.KafkaOptions.AddFlags(fss.FlagSet("kafka"))
	o.RateLimitOptions.AddFlags(fss.FlagSet("ratelimit"))
	o.FeatureOptions.AddFlags(fss.FlagSet("features"))
	o.InsecureServing.AddFlags(fss.FlagSet("insecure serving"))
	o.Log.AddFlags(fss.FlagSet("logs"))

	return fss
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}

// Complete set default Options.
func (o *Options) Complete() error {
	if o.JwtOptions.Key == "" {
		// 重启后已签发的令牌失效
		o.JwtOptions.Key = strings.ReplaceAll(uuid.NewString(), "-", "")
		log.Warn("--jwt.key is not set, a random key is generated")
	}

	if err := o.InsecureServing.Complete(); err != nil {
		return err
	}

	return o.MongoOptions.Complete()
}

// Validate checks Options and return a slice of found errs.
func (o *Options) Validate() []error {
	var errs []error

	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.InsecureServing.Validate()...)
	errs = append(errs, o.JwtOptions.Validate()...)
	errs = append(errs, o.StoreOptions.Validate()...)
	switch o.StoreOptions.Driver {
	case genericoptions.DriverMongo:
		errs = append(errs, o.MongoOptions.Validate()...)
	case genericoptions.DriverMySQL:
		errs = append(errs, o.MySQLOptions.Validate()...)
	}
	errs = append(errs, o.RedisOptions.Validate()...)
	errs = append(errs, o.KafkaOptions.Validate()...)
	errs = append(errs, o.RateLimitOptions.Validate()...)
	errs = append(errs, o.FeatureOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)

	return errs
}
