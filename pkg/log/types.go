package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field 为 zapcore.Field 的别名，业务代码无需直接引用 zap。
type Field = zapcore.Field

// Level 为 zapcore.Level 的别名。
type Level = zapcore.Level

var (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

var (
	Any      = zap.Any
	Bool     = zap.Bool
	Duration = zap.Duration
	Err      = zap.Error
	Int      = zap.Int
	Int64    = zap.Int64
	String   = zap.String
	Strings  = zap.Strings
	Time     = zap.Time
)
