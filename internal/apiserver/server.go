package apiserver

import (
	"context"
	"time"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/config"
	srvv1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/service/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store/memory"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store/mongo"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store/mysql"
	genericoptions "github.com/shahid-ra/ecommerce-backend-service/internal/pkg/options"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/producer"
	genericapiserver "github.com/shahid-ra/ecommerce-backend-service/internal/pkg/server"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/usercache"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/shutdown"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/shutdown/shutdownmanagers/posixsignal"
)

// connectTimeout 启动时连接存储、缓存的超时时间。
const connectTimeout = 30 * time.Second

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	cfg              *config.Config
	jwt              *genericapiserver.JwtInfo
	genericAPIServer *genericapiserver.GenericAPIServer

	userCache usercache.Cache
	producer  producer.MessageProducer
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}

	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	server := &apiServer{
		gs:               gs,
		cfg:              cfg,
		jwt:              genericConfig.Jwt,
		genericAPIServer: genericServer,
	}

	return server, nil
}

// PrepareRun 连接存储、缓存和事件生产者，注册路由与关闭回调。
func (s *apiServer) PrepareRun() (preparedAPIServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := s.initStore(ctx); err != nil {
		return preparedAPIServer{}, err
	}

	userCache, err := s.cfg.RedisOptions.NewUserCache(ctx)
	if err != nil {
		_ = store.Client().Close()
		return preparedAPIServer{}, err
	}
	s.userCache = userCache
	s.producer = s.cfg.KafkaOptions.NewProducer()

	srv := srvv1.NewService(store.Client(), srvv1.Options{
		JWT: srvv1.JWTConfig{
			Realm:   s.jwt.Realm,
			Key:     s.jwt.Key,
			Timeout: s.jwt.Timeout,
		},
		Producer:  s.producer,
		UserCache: s.userCache,
	})

	if err := initRouter(s.genericAPIServer.Engine, routerDeps{
		srv:     srv,
		jwt:     s.jwt,
		limiter: s.cfg.RateLimitOptions.NewLimiter(),
	}); err != nil {
		s.closeDependencies()
		return preparedAPIServer{}, err
	}

	s.gs.AddShutdownCallback(shutdown.ShutdownFunc(func(string) error {
		s.genericAPIServer.Close()
		s.closeDependencies()

		return nil
	}))

	return preparedAPIServer{s}, nil
}

func (s preparedAPIServer) Run() error {
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	return s.genericAPIServer.Run()
}

func (s *apiServer) initStore(ctx context.Context) error {
	var (
		factory store.Factory
		err     error
	)

	switch s.cfg.StoreOptions.Driver {
	case genericoptions.DriverMongo:
		factory, err = mongo.GetMongoFactoryOr(ctx, s.cfg.MongoOptions.DBOptions())
	case genericoptions.DriverMySQL:
		factory, err = mysql.GetMySQLFactoryOr(s.cfg.MySQLOptions.DBOptions())
	case genericoptions.DriverMemory:
		log.Warn("using in-memory store, data will be lost on restart")
		factory = memory.New()
	default:
		err = errors.Errorf("unsupported store driver %q", s.cfg.StoreOptions.Driver)
	}
	if err != nil {
		return err
	}

	store.SetClient(factory)

	return nil
}

// closeDependencies 依次关闭事件生产者、用户缓存与存储。
func (s *apiServer) closeDependencies() {
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			log.Warnf("close producer failed: %s", err.Error())
		}
	}
	if s.userCache != nil {
		if err := s.userCache.Close(); err != nil {
			log.Warnf("close user cache failed: %s", err.Error())
		}
	}
	if factory := store.Client(); factory != nil {
		if err := factory.Close(); err != nil {
			log.Warnf("close store failed: %s", err.Error())
		}
	}
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.GenericServerRunOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	if lastErr = cfg.FeatureOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	if lastErr = cfg.InsecureServing.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	if lastErr = cfg.JwtOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	return
}
