package middleware

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// maxLoggedBody 请求体日志的截断长度。
const maxLoggedBody = 1024

// defaultLogFormatter 输出到终端的单行访问日志。
var defaultLogFormatter = func(param gin.LogFormatterParams) string {
	var statusColor, methodColor, resetColor string
	if param.IsOutputColor() {
		statusColor = param.StatusCodeColor()
		methodColor = param.MethodColor()
		resetColor = param.ResetColor()
	}

	if param.Latency > time.Minute {
		param.Latency -= param.Latency % time.Second
	}

	return fmt.Sprintf("%s%3d%s - [%s] \"%v %s%s%s %s\" %s\n",
		statusColor, param.StatusCode, resetColor,
		param.ClientIP,
		param.Latency,
		methodColor, param.Method, resetColor,
		param.Path,
		param.ErrorMessage,
	)
}

// Logger 访问日志，/healthz 与 /metrics 不记录。
func Logger() gin.HandlerFunc {
	return LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{"/healthz", "/metrics"}})
}

// LoggerWithConfig 在请求开始时用 zap 记录请求参数，结束时向 conf.Output 写一行访问日志。
func LoggerWithConfig(conf gin.LoggerConfig) gin.HandlerFunc {
	formatter := conf.Formatter
	if formatter == nil {
		formatter = defaultLogFormatter
	}

	out := conf.Output
	if out == nil {
		out = gin.DefaultWriter
	}

	isTerm := true
	if w, ok := out.(*os.File); !ok || os.Getenv("TERM") == "dumb" ||
		(!isatty.IsTerminal(w.Fd()) && !isatty.IsCygwinTerminal(w.Fd())) {
		isTerm = false
	}
	if isTerm {
		gin.ForceConsoleColor()
	}

	skip := make(map[string]struct{}, len(conf.SkipPaths))
	for _, path := range conf.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		log.L(c).Infow("Incoming request",
			"url", c.Request.URL.String(),
			"method", c.Request.Method,
			"params", c.Params,
			"query", c.Request.URL.Query(),
			"body", readBody(c),
		)

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		param := gin.LogFormatterParams{
			Request:      c.Request,
			TimeStamp:    time.Now(),
			StatusCode:   c.Writer.Status(),
			ClientIP:     c.ClientIP(),
			Method:       c.Request.Method,
			Path:         path,
			ErrorMessage: c.Errors.ByType(gin.ErrorTypePrivate).String(),
			BodySize:     c.Writer.Size(),
			Keys:         c.Keys,
		}
		param.Latency = param.TimeStamp.Sub(start)

		fmt.Fprint(out, formatter(param))
	}
}

// readBody 读取 JSON 请求体用于日志，读取后放回请求。
func readBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		return ""
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(data))

	body := redactPassword(string(data))
	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody] + "...(truncated)"
	}
	return body
}

// redactPassword 请求体中含 password 字段时不记录原文。
func redactPassword(body string) string {
	if strings.Contains(body, `"password"`) {
		return "[redacted: contains password]"
	}
	return body
}
