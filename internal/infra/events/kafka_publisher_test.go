package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"backoffice/internal/domain/model"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs     []kafka.Message
	err      error
	deadline bool
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, w.deadline = ctx.Deadline()
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() model.LedgerEvent {
	return model.LedgerEvent{
		EventID:      "evt-1",
		EventType:    model.EventPaymentUpdated,
		EventVersion: 1,
		OccurredAt:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Producer:     "backoffice-api",
		ActorUserID:  "admin-1",
		AggregateID:  "order-1",
		Payload:      json.RawMessage(`{"order_id":"order-1","amount_paid":"40.00"}`),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, time.Second)

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "order-1", string(msg.Key))
	assert.True(t, w.deadline)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, map[string]string{"event_type": "OrderPaymentUpdated", "producer": "backoffice-api"}, headers)

	var got model.LedgerEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "evt-1", got.EventID)
	assert.JSONEq(t, `{"order_id":"order-1","amount_paid":"40.00"}`, string(got.Payload))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

// リクエストが終わっても送信は打ち切らない
func TestKafkaPublisher_IgnoresCallerCancel(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Publish(ctx, sampleEvent()))
	assert.Len(t, w.msgs, 1)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newKafkaPublisher(w, time.Second)

	err := p.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, w.err)
	assert.Contains(t, err.Error(), "evt-1")
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ledger_event", line["msg"])
	assert.Equal(t, "OrderPaymentUpdated", line["event_type"])
	assert.Equal(t, "order-1", line["aggregate_id"])
	assert.NoError(t, p.Close())
}
