/*
Package log 基于 zap 的结构化日志封装。

业务代码只依赖本包：
  - 包级函数 Info/Infof/Infow 等直接输出；
  - L(ctx) 从上下文中取出 requestID、userID 并附加到日志字段，适用于一次请求内的日志；
  - WithValues/WithName 创建携带固定字段的子日志器。

程序启动时调用 Init(opts)，退出前调用 Flush。
*/
package log

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 请求上下文中与日志相关的键。
const (
	KeyRequestID = "requestID"
	KeyUserID    = "userID"
)

type zapLogger struct {
	zapLogger *zap.Logger
}

var (
	std = New(NewOptions())
	mu  sync.Mutex
)

// Init 按配置初始化全局日志器。
func Init(opts *Options) {
	mu.Lock()
	defer mu.Unlock()
	std = New(opts)
}

// New 按配置创建日志器。配置非法时回退为 info 级别。
func New(opts *Options) *zapLogger {
	if opts == nil {
		opts = NewOptions()
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(opts.Level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	encodeLevel := zapcore.CapitalLevelEncoder
	if opts.Format == consoleFormat && opts.EnableColor {
		encodeLevel = zapcore.CapitalColorLevelEncoder
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     timeEncoder,
		EncodeDuration: milliSecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	loggerConfig := &zap.Config{
		Level:             zap.NewAtomicLevelAt(zapLevel),
		DisableCaller:     !opts.EnableCaller,
		DisableStacktrace: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         opts.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      opts.OutputPaths,
		ErrorOutputPaths: opts.ErrorOutputPaths,
	}

	l, err := loggerConfig.Build(zap.AddStacktrace(zapcore.PanicLevel), zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	if opts.Name != "" {
		l = l.Named(opts.Name)
	}
	zap.RedirectStdLog(l)

	return &zapLogger{zapLogger: l}
}

// NewLogger 包装已有的 zap.Logger。
func NewLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{zapLogger: l}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func milliSecondsDurationEncoder(d time.Duration, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendFloat64(float64(d) / float64(time.Millisecond))
}

// ZapLogger 返回底层 zap 日志器，供需要 *zap.Logger 的第三方组件使用。
func ZapLogger() *zap.Logger { return std.zapLogger }

func Flush() { std.Flush() }

func (l *zapLogger) Flush() {
	_ = l.zapLogger.Sync()
}

// L 返回携带请求上下文字段的日志器。
func L(ctx context.Context) *zapLogger { return std.L(ctx) }

func (l *zapLogger) L(ctx context.Context) *zapLogger {
	lg := l.clone()
	if ctx == nil {
		return lg
	}
	if requestID := ctx.Value(KeyRequestID); requestID != nil {
		lg.zapLogger = lg.zapLogger.With(zap.Any(KeyRequestID, requestID))
	}
	if userID := ctx.Value(KeyUserID); userID != nil {
		lg.zapLogger = lg.zapLogger.With(zap.Any(KeyUserID, userID))
	}
	return lg
}

func (l *zapLogger) clone() *zapLogger {
	c := *l
	return &c
}

func WithValues(keysAndValues ...interface{}) *zapLogger { return std.WithValues(keysAndValues...) }

func (l *zapLogger) WithValues(keysAndValues ...interface{}) *zapLogger {
	return &zapLogger{zapLogger: l.zapLogger.With(handleFields(l.zapLogger, keysAndValues)...)}
}

func WithName(name string) *zapLogger { return std.WithName(name) }

func (l *zapLogger) WithName(name string) *zapLogger {
	return &zapLogger{zapLogger: l.zapLogger.Named(name)}
}

// handleFields 将 key/value 列表转换为 zap.Field，键必须为字符串且成对出现。
func handleFields(l *zap.Logger, args []interface{}, additional ...zap.Field) []zap.Field {
	if len(args) == 0 {
		return additional
	}

	fields := make([]zap.Field, 0, len(args)/2+len(additional))
	for i := 0; i < len(args); {
		if f, ok := args[i].(zap.Field); ok {
			fields = append(fields, f)
			i++
			continue
		}
		if i == len(args)-1 {
			l.DPanic("odd number of arguments passed as key-value pairs for logging", zap.Any("ignored key", args[i]))
			break
		}
		key, val := args[i], args[i+1]
		keyStr, isString := key.(string)
		if !isString {
			l.DPanic("non-string key argument passed to logging, ignoring all later arguments", zap.Any("invalid key", key))
			break
		}
		fields = append(fields, zap.Any(keyStr, val))
		i += 2
	}

	return append(fields, additional...)
}

func Debug(msg string, fields ...Field) { std.zapLogger.Debug(msg, fields...) }
func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.zapLogger.Debug(msg, fields...)
}

func Debugf(format string, v ...interface{}) { std.zapLogger.Sugar().Debugf(format, v...) }
func (l *zapLogger) Debugf(format string, v ...interface{}) {
	l.zapLogger.Sugar().Debugf(format, v...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Debugw(msg, keysAndValues...)
}
func (l *zapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Debugw(msg, keysAndValues...)
}

func Info(msg string, fields ...Field) { std.zapLogger.Info(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field) {
	l.zapLogger.Info(msg, fields...)
}

func Infof(format string, v ...interface{}) { std.zapLogger.Sugar().Infof(format, v...) }
func (l *zapLogger) Infof(format string, v ...interface{}) {
	l.zapLogger.Sugar().Infof(format, v...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Infow(msg, keysAndValues...)
}
func (l *zapLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Infow(msg, keysAndValues...)
}

func Warn(msg string, fields ...Field) { std.zapLogger.Warn(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.zapLogger.Warn(msg, fields...)
}

func Warnf(format string, v ...interface{}) { std.zapLogger.Sugar().Warnf(format, v...) }
func (l *zapLogger) Warnf(format string, v ...interface{}) {
	l.zapLogger.Sugar().Warnf(format, v...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Warnw(msg, keysAndValues...)
}
func (l *zapLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Warnw(msg, keysAndValues...)
}

func Error(msg string, fields ...Field) { std.zapLogger.Error(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) {
	l.zapLogger.Error(msg, fields...)
}

func Errorf(format string, v ...interface{}) { std.zapLogger.Sugar().Errorf(format, v...) }
func (l *zapLogger) Errorf(format string, v ...interface{}) {
	l.zapLogger.Sugar().Errorf(format, v...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Errorw(msg, keysAndValues...)
}
func (l *zapLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Errorw(msg, keysAndValues...)
}

func Fatalf(format string, v ...interface{}) { std.zapLogger.Sugar().Fatalf(format, v...) }
func (l *zapLogger) Fatalf(format string, v ...interface{}) {
	l.zapLogger.Sugar().Fatalf(format, v...)
}
