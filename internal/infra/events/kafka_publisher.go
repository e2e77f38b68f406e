// Package events は台帳イベントの送信先。
// KAFKA_BROKERS があれば Kafka、無ければログ出力。
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backoffice/internal/domain/model"

	"github.com/segmentio/kafka-go"
)

const defaultWriteTimeout = 5 * time.Second

// kafka.Writer のうち使う部分（テストで差し替える）
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	w       messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}, defaultWriteTimeout)
}

func newKafkaPublisher(w messageWriter, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{w: w, timeout: timeout}
}

// Publish は同期で書き込む。キーは注文ID（同じ注文のイベントは同じパーティション）。
func (p *KafkaPublisher) Publish(ctx context.Context, evt model.LedgerEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.AggregateID),
		Value: body,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
			{Key: "producer", Value: []byte(evt.Producer)},
		},
	})
	if err != nil {
		return fmt.Errorf("write ledger event %s: %w", evt.EventID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
