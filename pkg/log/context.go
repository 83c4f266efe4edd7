package log

import "context"

type key int

const logContextKey key = iota

// WithContext 将日志器存入 ctx。
func WithContext(ctx context.Context) context.Context {
	return std.WithContext(ctx)
}

func (l *zapLogger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, logContextKey, l)
}

// FromContext 取出 ctx 中的日志器，不存在时返回全局日志器。
func FromContext(ctx context.Context) *zapLogger {
	if ctx != nil {
		if l, ok := ctx.Value(logContextKey).(*zapLogger); ok {
			return l
		}
	}
	return std
}
