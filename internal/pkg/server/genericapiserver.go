// Package server 通用 API 服务器：gin 引擎、系统路由、中间件安装与 HTTP 生命周期。
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/maxiaolu1981/cretem/nexuscore/component-base/version"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/middleware"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// GenericAPIServer contains state for a generic api server.
type GenericAPIServer struct {
	middlewares []string

	InsecureServingInfo *InsecureServingInfo

	// ShutdownTimeout 关闭时等待进行中请求的最长时间。
	ShutdownTimeout time.Duration

	*gin.Engine
	healthz         bool
	enableMetrics   bool
	enableProfiling bool

	insecureServer *http.Server
}

func initGenericAPIServer(s *GenericAPIServer) {
	s.Setup()
	s.InstallMiddlewares()
	s.InstallAPIs()
}

// InstallAPIs 注册 /healthz、/metrics、/debug/pprof 与 /version。
func (s *GenericAPIServer) InstallAPIs() {
	if s.healthz {
		s.GET("/healthz", func(c *gin.Context) {
			core.WriteResponse(c, nil, map[string]string{"status": "ok"})
		})
	}

	if s.enableMetrics {
		prometheus := ginprometheus.NewPrometheus("gin")
		// 按路由模板统计，避免 ID 进入标签
		prometheus.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			if path := c.FullPath(); path != "" {
				return path
			}
			return "unmatched"
		}
		prometheus.Use(s.Engine)
	}

	if s.enableProfiling {
		pprof.Register(s.Engine)
	}

	s.GET("/version", func(c *gin.Context) {
		core.WriteResponse(c, nil, version.Get())
	})
}

// Setup 路由注册信息写入日志。
func (s *GenericAPIServer) Setup() {
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		log.Infof("%-6s %-s --> %s (%d handlers)", httpMethod, absolutePath, handlerName, nuHandlers)
	}
}

// InstallMiddlewares 先安装 requestid 与 context，再按配置顺序安装其余中间件。
func (s *GenericAPIServer) InstallMiddlewares() {
	s.Use(middleware.RequestID())
	s.Use(middleware.Context())

	for _, m := range s.middlewares {
		if m == "requestid" || m == "context" {
			continue
		}
		mw, ok := middleware.Middlewares[m]
		if !ok {
			log.Warnf("can not find middleware: %s", m)
			continue
		}

		log.Infof("install middleware: %s", m)
		s.Use(mw)
	}
}

// Run 启动 HTTP 服务并阻塞，直到服务被 Close 或监听失败。
func (s *GenericAPIServer) Run() error {
	s.insecureServer = &http.Server{
		Addr:              s.InsecureServingInfo.Address,
		Handler:           s,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	listener, err := net.Listen("tcp", s.InsecureServingInfo.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.InsecureServingInfo.Address, err)
	}

	var eg errgroup.Group
	eg.Go(func() error {
		log.Infof("Start to listening the incoming requests on http address: %s", s.InsecureServingInfo.Address)

		if err := s.insecureServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		log.Infof("Server on %s stopped", s.InsecureServingInfo.Address)
		return nil
	})

	if s.healthz {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.ping(ctx, listener.Addr().String()); err != nil {
			return err
		}
	}

	return eg.Wait()
}

// Close graceful shutdown the api server.
func (s *GenericAPIServer) Close() {
	if s.insecureServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	if err := s.insecureServer.Shutdown(ctx); err != nil {
		log.Warnf("Shutdown insecure server failed: %s", err.Error())
	}
}

// ping 等待 /healthz 返回 200，确认路由已就绪。
func (s *GenericAPIServer) ping(ctx context.Context, address string) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	url := fmt.Sprintf("http://%s/healthz", net.JoinHostPort(host, port))

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				log.Info("The router has been deployed successfully.")
				return nil
			}
		}

		log.Info("Waiting for the router, retry in 1 second.")
		select {
		case <-ctx.Done():
			return fmt.Errorf("can not ping http server within the specified time interval: %w", ctx.Err())
		case <-time.After(time.Second):
		}
	}
}
