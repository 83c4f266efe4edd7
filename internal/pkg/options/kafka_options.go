package options

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/producer"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// KafkaOptions 商品事件生产者配置，Brokers 为空时不发送事件。
type KafkaOptions struct {
	Brokers      []string      `json:"brokers"       mapstructure:"brokers"`
	Topic        string        `json:"topic"         mapstructure:"topic"`
	RequiredAcks int           `json:"required-acks" mapstructure:"required-acks"`
	Async        bool          `json:"async"         mapstructure:"async"`
	BatchSize    int           `json:"batch-size"    mapstructure:"batch-size"`
	BatchTimeout time.Duration `json:"batch-timeout" mapstructure:"batch-timeout"`
	MaxRetries   int           `json:"max-retries"   mapstructure:"max-retries"`
	WriteTimeout time.Duration `json:"write-timeout" mapstructure:"write-timeout"`
}

// NewKafkaOptions 创建默认配置。
func NewKafkaOptions() *KafkaOptions {
	return &KafkaOptions{
		Brokers:      []string{},
		Topic:        "product-events",
		RequiredAcks: 1,
		Async:        false,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		MaxRetries:   3,
		WriteTimeout: 5 * time.Second,
	}
}

// Validate 校验 Kafka 配置。
func (o *KafkaOptions) Validate() []error {
	var errs []error

	if len(o.Brokers) == 0 {
		return errs
	}
	if o.Topic == "" {
		errs = append(errs, errors.Errorf("--kafka.topic can not be empty when brokers are set"))
	}
	if o.RequiredAcks < -1 || o.RequiredAcks > 1 {
		errs = append(errs, errors.Errorf("--kafka.required-acks must be -1, 0 or 1, got %d", o.RequiredAcks))
	}
	if o.BatchSize < 1 {
		errs = append(errs, errors.Errorf("--kafka.batch-size must be at least 1"))
	}
	if o.MaxRetries < 0 {
		errs = append(errs, errors.Errorf("--kafka.max-retries can not be negative"))
	}

	return errs
}

// AddFlags 绑定 --kafka.* 参数。
func (o *KafkaOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.Brokers, "kafka.brokers", o.Brokers, "Kafka broker addresses. Leave empty to disable product events.")
	fs.StringVar(&o.Topic, "kafka.topic", o.Topic, "Topic of product create/update/delete events.")
	fs.IntVar(&o.RequiredAcks, "kafka.required-acks", o.RequiredAcks, "0: no ack, 1: leader ack, -1: all replicas ack.")
	fs.BoolVar(&o.Async, "kafka.async", o.Async, "Write events asynchronously.")
	fs.IntVar(&o.BatchSize, "kafka.batch-size", o.BatchSize, "Maximum number of messages per batch.")
	fs.DurationVar(&o.BatchTimeout, "kafka.batch-timeout", o.BatchTimeout, "Time limit for filling a batch.")
	fs.IntVar(&o.MaxRetries, "kafka.max-retries", o.MaxRetries, "Retries of a failed write.")
	fs.DurationVar(&o.WriteTimeout, "kafka.write-timeout", o.WriteTimeout, "Timeout of a synchronous write.")
}

// NewProducer 根据配置创建生产者。
func (o *KafkaOptions) NewProducer() producer.MessageProducer {
	if len(o.Brokers) == 0 {
		return producer.NewNoopProducer()
	}

	return producer.NewProductProducer(producer.Config{
		Brokers:      o.Brokers,
		Topic:        o.Topic,
		RequiredAcks: o.RequiredAcks,
		Async:        o.Async,
		BatchSize:    o.BatchSize,
		BatchTimeout: o.BatchTimeout,
		MaxAttempts:  o.MaxRetries + 1,
		WriteTimeout: o.WriteTimeout,
	})
}
