package producer

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProductProducer_Send(t *testing.T) {
	w := &fakeWriter{}
	p := newProductProducer(w, "products", 0)
	product := &v1.Product{Base: resource.Base{ID: "665f1c2b9d3e4a0012345678"}, Name: "Lamp"}

	ctx := context.WithValue(context.Background(), log.KeyRequestID, "req-1") //nolint:staticcheck

	tests := []struct {
		name string
		send func() error
		op   string
	}{
		{name: "create", send: func() error { return p.SendProductCreateMessage(ctx, product) }, op: OperationCreate},
		{name: "update", send: func() error { return p.SendProductUpdateMessage(ctx, product) }, op: OperationUpdate},
		{name: "delete", send: func() error { return p.SendProductDeleteMessage(ctx, product) }, op: OperationDelete},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.send())
			require.Len(t, w.messages, i+1)

			msg := w.messages[i]
			assert.Equal(t, product.ID, string(msg.Key))

			var event Event
			require.NoError(t, json.Unmarshal(msg.Value, &event))
			assert.Equal(t, tt.op, event.Operation)
			assert.Equal(t, product.ID, event.ProductID)
			assert.Equal(t, "Lamp", event.Product.Name)

			headers := map[string]string{}
			for _, h := range msg.Headers {
				headers[h.Key] = string(h.Value)
			}
			assert.Equal(t, tt.op, headers["operation"])
			assert.Equal(t, "req-1", headers["requestID"])
			assert.Equal(t, event.ID, headers["eventID"])
			_, err := uuid.Parse(event.ID)
			assert.NoError(t, err)
		})
	}

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProductProducer_SendError(t *testing.T) {
	boom := stderrors.New("broker unavailable")
	p := newProductProducer(&fakeWriter{err: boom}, "products", 0)

	err := p.SendProductCreateMessage(context.Background(), &v1.Product{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNoopProducer(t *testing.T) {
	p := NewNoopProducer()
	assert.NoError(t, p.SendProductCreateMessage(context.Background(), &v1.Product{}))
	assert.NoError(t, p.Close())
}
