// Package metrics 定义服务内部的 prometheus 指标，注册到默认 registry，由 /metrics 暴露。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 资源服务指标
	ResourceOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resource_operations_total",
		Help: "Total number of resource service operations",
	}, []string{"resource", "operation", "result"})

	ResourceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resource_operation_duration_seconds",
		Help:    "Duration of resource service operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"resource", "operation"})

	// 存储层指标
	DatabaseOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "database_operations_total",
		Help: "Total number of database operations by type",
	}, []string{"driver", "operation", "collection"})

	DatabaseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "database_errors_total",
		Help: "Total number of database errors",
	}, []string{"driver", "operation", "collection"})

	// 事件生产者指标
	ProducerSuccess = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_producer_success_total",
		Help: "Total number of successfully sent Kafka messages",
	}, []string{"topic", "operation"})

	ProducerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_producer_failures_total",
		Help: "Total number of failed Kafka message sending attempts",
	}, []string{"topic", "operation"})

	// 认证用户缓存
	UserCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "user_cache_lookups_total",
		Help: "Total number of authenticated user cache lookups",
	}, []string{"backend", "result"})

	RateLimitedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_requests_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)

// RecordResourceOperation 记录一次资源服务调用。
func RecordResourceOperation(resource, operation string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ResourceOperations.WithLabelValues(resource, operation, result).Inc()
	ResourceDuration.WithLabelValues(resource, operation).Observe(time.Since(start).Seconds())
}

// RecordDatabaseOperation 记录一次存储层调用。
func RecordDatabaseOperation(driver, operation, collection string, err error) {
	DatabaseOperations.WithLabelValues(driver, operation, collection).Inc()
	if err != nil {
		DatabaseErrors.WithLabelValues(driver, operation, collection).Inc()
	}
}

// RecordProducer 记录一次事件发送结果。
func RecordProducer(topic, operation string, err error) {
	if err != nil {
		ProducerFailures.WithLabelValues(topic, operation).Inc()
		return
	}
	ProducerSuccess.WithLabelValues(topic, operation).Inc()
}
