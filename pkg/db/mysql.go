package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// MySQLOptions 定义 mysql 连接参数。
type MySQLOptions struct {
	Host                  string
	Username              string
	Password              string
	Database              string
	MaxIdleConnections    int
	MaxOpenConnections    int
	MaxConnectionLifeTime time.Duration
	// LogLevel 0 静默，1 错误，2 警告，3 全部。
	LogLevel           int
	SlowQueryThreshold time.Duration
	Timeout            time.Duration
	Logger             logger.Interface
}

// DSN 返回 go-sql-driver/mysql 格式的连接串。
func (o *MySQLOptions) DSN() string {
	return fmt.Sprintf(`%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&timeout=10s&readTimeout=30s&writeTimeout=30s`,
		o.Username,
		o.Password,
		o.Host,
		o.Database)
}

// NewMySQL 创建 gorm 连接并配置连接池。
func NewMySQL(opts *MySQLOptions) (*gorm.DB, error) {
	setMySQLDefaults(opts)

	db, err := gorm.Open(mysql.Open(opts.DSN()), &gorm.Config{
		Logger:                 opts.Logger,
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(opts.MaxOpenConnections)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConnections)
	sqlDB.SetConnMaxLifetime(opts.MaxConnectionLifeTime)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Infof("MySQL connection pool initialized: MaxOpenConns=%d, MaxIdleConns=%d, ConnMaxLifetime=%v",
		opts.MaxOpenConnections, opts.MaxIdleConnections, opts.MaxConnectionLifeTime)

	return db, nil
}

func setMySQLDefaults(opts *MySQLOptions) {
	if opts.MaxOpenConnections <= 0 {
		opts.MaxOpenConnections = 100
	}
	if opts.MaxIdleConnections <= 0 {
		opts.MaxIdleConnections = 10
	}
	if opts.MaxConnectionLifeTime <= 0 {
		opts.MaxConnectionLifeTime = time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = NewGormLogger(opts.LogLevel, opts.SlowQueryThreshold)
	}
}
