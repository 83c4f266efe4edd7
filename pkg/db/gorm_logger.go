package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// gormLogger 把 gorm 日志转到 pkg/log。
type gormLogger struct {
	level         logger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger 创建 gorm 日志适配器，level 取值同 MySQLOptions.LogLevel。
func NewGormLogger(level int, slowThreshold time.Duration) logger.Interface {
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowQueryThreshold
	}
	return &gormLogger{level: toGormLogLevel(level), slowThreshold: slowThreshold}
}

func toGormLogLevel(level int) logger.LogLevel {
	switch {
	case level <= 0:
		return logger.Silent
	case level == 1:
		return logger.Error
	case level == 2:
		return logger.Warn
	default:
		return logger.Info
	}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Info {
		log.L(ctx).Infof("[gorm] "+msg, args...)
	}
}

func (g *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Warn {
		log.L(ctx).Warnf("[gorm] "+msg, args...)
	}
}

func (g *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Error {
		log.L(ctx).Errorf("[gorm] "+msg, args...)
	}
}

func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= logger.Error:
		log.L(ctx).Errorw("[gorm] query failed", "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > g.slowThreshold && g.level >= logger.Warn:
		log.L(ctx).Warnw("[gorm] slow query", "threshold", g.slowThreshold, "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.level >= logger.Info:
		log.L(ctx).Debugw("[gorm] query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
