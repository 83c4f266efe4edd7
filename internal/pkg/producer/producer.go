/*
Package producer 发送商品变更事件到 Kafka。

每条消息的 key 为商品 ID，保证同一商品的事件进入同一分区；
header 中携带 operation 与 requestID。
*/
package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/metrics"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// 事件类型
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// MessageProducer 商品事件生产者。
type MessageProducer interface {
	SendProductCreateMessage(ctx context.Context, product *v1.Product) error
	SendProductUpdateMessage(ctx context.Context, product *v1.Product) error
	SendProductDeleteMessage(ctx context.Context, product *v1.Product) error
	Close() error
}

// Event 为消息体。
type Event struct {
	ID        string      `json:"id"`
	Operation string      `json:"operation"`
	ProductID string      `json:"productId"`
	Product   *v1.Product `json:"product,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// messageWriter 由 *kafka.Writer 实现。
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config 生产者配置。
type Config struct {
	Brokers      []string
	Topic        string
	RequiredAcks int
	Async        bool
	BatchSize    int
	BatchTimeout time.Duration
	MaxAttempts  int
	WriteTimeout time.Duration
}

// ProductProducer 基于 kafka-go 的实现。
type ProductProducer struct {
	writer       messageWriter
	topic        string
	writeTimeout time.Duration
}

var _ MessageProducer = (*ProductProducer)(nil)

// NewProductProducer 创建 kafka 生产者。连接在第一次写入时建立。
func NewProductProducer(cfg Config) *ProductProducer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Async:                  cfg.Async,
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		MaxAttempts:            cfg.MaxAttempts,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			for range messages {
				metrics.RecordProducer(cfg.Topic, "async", err)
			}
			if err != nil {
				log.Errorf("async kafka write failed: topic=%s, messages=%d, error=%v", cfg.Topic, len(messages), err)
			}
		},
	}
	return newProductProducer(w, cfg.Topic, cfg.WriteTimeout)
}

func newProductProducer(w messageWriter, topic string, writeTimeout time.Duration) *ProductProducer {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &ProductProducer{writer: w, topic: topic, writeTimeout: writeTimeout}
}

func (p *ProductProducer) SendProductCreateMessage(ctx context.Context, product *v1.Product) error {
	return p.send(ctx, OperationCreate, product)
}

func (p *ProductProducer) SendProductUpdateMessage(ctx context.Context, product *v1.Product) error {
	return p.send(ctx, OperationUpdate, product)
}

func (p *ProductProducer) SendProductDeleteMessage(ctx context.Context, product *v1.Product) error {
	return p.send(ctx, OperationDelete, product)
}

func (p *ProductProducer) send(ctx context.Context, operation string, product *v1.Product) error {
	event := Event{
		ID:        uuid.NewString(),
		Operation: operation,
		ProductID: product.ID,
		Product:   product,
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal product event")
	}

	headers := []kafka.Header{
		{Key: "operation", Value: []byte(operation)},
		{Key: "eventID", Value: []byte(event.ID)},
	}
	if rid, ok := ctx.Value(log.KeyRequestID).(string); ok && rid != "" {
		headers = append(headers, kafka.Header{Key: "requestID", Value: []byte(rid)})
	}

	// 请求取消不影响事件写入
	writeCtx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:     []byte(product.ID),
		Value:   value,
		Headers: headers,
		Time:    event.Timestamp,
	})
	metrics.RecordProducer(p.topic, operation, err)
	if err != nil {
		log.L(ctx).Errorw("failed to send product event", "topic", p.topic, "operation", operation, "productId", product.ID, "error", err)
		return errors.Wrapf(err, "send product %s event", operation)
	}

	log.L(ctx).Debugw("product event sent", "topic", p.topic, "operation", operation, "productId", product.ID)
	return nil
}

func (p *ProductProducer) Close() error {
	return p.writer.Close()
}

type noopProducer struct{}

// NewNoopProducer 返回丢弃所有事件的生产者，未启用 Kafka 时使用。
func NewNoopProducer() MessageProducer {
	return &noopProducer{}
}

func (n *noopProducer) SendProductCreateMessage(context.Context, *v1.Product) error { return nil }
func (n *noopProducer) SendProductUpdateMessage(context.Context, *v1.Product) error { return nil }
func (n *noopProducer) SendProductDeleteMessage(context.Context, *v1.Product) error { return nil }
func (n *noopProducer) Close() error                                                { return nil }
