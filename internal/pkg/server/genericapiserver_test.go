package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/middleware"
)

func newTestServer(t *testing.T, mutate func(*Config)) *GenericAPIServer {
	t.Helper()
	cfg := NewConfig()
	cfg.Mode = gin.TestMode
	// prometheus 指标注册到全局 registry，测试中只允许创建一次
	cfg.EnableMetrics = false
	cfg.InsecureServing.Address = "127.0.0.1:0"
	if mutate != nil {
		mutate(cfg)
	}
	s, err := cfg.Complete().New()
	require.NoError(t, err)
	return s
}

func TestSystemRoutes(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.Middlewares = []string{"recovery", "secure", "unknown"} })

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "healthz", path: "/healthz", want: http.StatusOK},
		{name: "version", path: "/version", want: http.StatusOK},
		{name: "pprof", path: "/debug/pprof/", want: http.StatusOK},
		{name: "metrics disabled", path: "/metrics", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.XRequestIDKey))
		})
	}

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var resp core.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, core.StatusSuccess, resp.Status)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestHealthzDisabled(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.Healthz = false
		c.EnableProfiling = false
	})

	for _, path := range []string{"/healthz", "/debug/pprof/"} {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}
