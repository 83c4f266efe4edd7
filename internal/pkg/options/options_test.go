package options

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/server"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/usercache"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		errs    func() []error
		wantErr int
	}{
		{name: "server defaults", errs: NewServerRunOptions().Validate},
		{name: "server bad mode", errs: func() []error {
			o := NewServerRunOptions()
			o.Mode = "prod"
			return o.Validate()
		}, wantErr: 1},
		{name: "insecure port out of range", errs: func() []error {
			o := NewInsecureServingOptions()
			o.BindPort = 70000
			return o.Validate()
		}, wantErr: 1},
		{name: "jwt empty key", errs: NewJwtOptions().Validate, wantErr: 1},
		{name: "jwt ok", errs: func() []error {
			o := NewJwtOptions()
			o.Key = "s3cr3t-key"
			return o.Validate()
		}},
		{name: "mongo defaults", errs: NewMongoOptions().Validate},
		{name: "mongo pool inverted", errs: func() []error {
			o := NewMongoOptions()
			o.MinPoolSize = 20
			return o.Validate()
		}, wantErr: 1},
		{name: "mysql defaults", errs: NewMySQLOptions().Validate},
		{name: "mysql log level", errs: func() []error {
			o := NewMySQLOptions()
			o.LogLevel = 9
			return o.Validate()
		}, wantErr: 1},
		{name: "kafka disabled skips checks", errs: func() []error {
			o := NewKafkaOptions()
			o.Topic = ""
			return o.Validate()
		}},
		{name: "kafka enabled", errs: func() []error {
			o := NewKafkaOptions()
			o.Brokers = []string{"127.0.0.1:9092"}
			o.Topic = ""
			o.RequiredAcks = 3
			return o.Validate()
		}, wantErr: 2},
		{name: "ratelimit", errs: func() []error {
			o := NewRateLimitOptions()
			o.QPS = 0
			o.Burst = 0
			return o.Validate()
		}, wantErr: 2},
		{name: "store driver", errs: func() []error {
			o := NewStoreOptions()
			o.Driver = "postgres"
			return o.Validate()
		}, wantErr: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.errs(), tt.wantErr)
		})
	}
}

func TestComplete_LegacyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv(envMongoURI, "mongodb://db:27017")
	t.Setenv(envMongoDatabase, "shop")
	t.Setenv(envMongoMaxConnections, "30")

	insecure := NewInsecureServingOptions()
	require.NoError(t, insecure.Complete())
	assert.Equal(t, 9090, insecure.BindPort)

	mongo := NewMongoOptions()
	require.NoError(t, mongo.Complete())
	assert.Equal(t, "mongodb://db:27017", mongo.URI)
	assert.Equal(t, "shop", mongo.Database)
	assert.Equal(t, uint64(30), mongo.MaxPoolSize)
	assert.Equal(t, uint64(1), mongo.MinPoolSize)
}

func TestComplete_BadEnv(t *testing.T) {
	t.Setenv("PORT", "http")
	assert.Error(t, NewInsecureServingOptions().Complete())

	t.Setenv(envMongoMaxConnections, "-1")
	assert.Error(t, NewMongoOptions().Complete())
}

func TestApplyTo(t *testing.T) {
	cfg := server.NewConfig()

	insecure := NewInsecureServingOptions()
	insecure.BindAddress = "127.0.0.1"
	insecure.BindPort = 8081
	jwt := NewJwtOptions()
	jwt.Key = "s3cr3t-key"
	feature := NewFeatureOptions()
	feature.EnableProfiling = false
	run := NewServerRunOptions()
	run.Mode = "debug"

	require.NoError(t, insecure.ApplyTo(cfg))
	require.NoError(t, jwt.ApplyTo(cfg))
	require.NoError(t, feature.ApplyTo(cfg))
	require.NoError(t, run.ApplyTo(cfg))

	assert.Equal(t, "127.0.0.1:8081", cfg.InsecureServing.Address)
	assert.Equal(t, "s3cr3t-key", cfg.Jwt.Key)
	assert.Equal(t, 24*time.Hour, cfg.Jwt.Timeout)
	assert.False(t, cfg.EnableProfiling)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, "debug", cfg.Mode)
	assert.Contains(t, cfg.Middlewares, "logger")
}

func TestAddFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	mongo := NewMongoOptions()
	kafka := NewKafkaOptions()
	mongo.AddFlags(fs)
	kafka.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{
		"--mongo.max-pool-size=50",
		"--kafka.brokers=a:9092,b:9092",
		"--kafka.async",
	}))
	assert.Equal(t, uint64(50), mongo.MaxPoolSize)
	assert.Equal(t, []string{"a:9092", "b:9092"}, kafka.Brokers)
	assert.True(t, kafka.Async)
}

func TestNewUserCache(t *testing.T) {
	o := NewRedisOptions()

	c, err := o.NewUserCache(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, usercache.Disabled{}, c)

	o.UserCacheTTL = 0
	c, err = o.NewUserCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usercache.Disabled{}, c)
}

func TestNewLimiterAndProducer(t *testing.T) {
	rl := NewRateLimitOptions()
	assert.NotNil(t, rl.NewLimiter())
	rl.Enabled = false
	assert.Nil(t, rl.NewLimiter())

	p := NewKafkaOptions().NewProducer()
	require.NotNil(t, p)
	assert.NoError(t, p.Close())
}

func TestDBOptions(t *testing.T) {
	mongo := NewMongoOptions().DBOptions()
	assert.Equal(t, "ecommerce", mongo.Database)
	assert.Equal(t, uint64(15), mongo.MaxPoolSize)
	assert.Equal(t, 60*time.Second, mongo.SocketTimeout)

	o := NewMySQLOptions()
	o.Username = "root"
	o.Password = "pw"
	mysql := o.DBOptions()
	assert.Contains(t, mysql.DSN(), "root:pw@tcp(127.0.0.1:3306)/ecommerce")
}
