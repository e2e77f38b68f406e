package events

import (
	"context"
	"log/slog"

	"backoffice/internal/domain/model"
)

// LogPublisher は Kafka 未設定時の送信先。イベントを info ログに出す。
type LogPublisher struct {
	l *slog.Logger
}

func NewLogPublisher(l *slog.Logger) *LogPublisher {
	return &LogPublisher{l: l}
}

func (p *LogPublisher) Publish(ctx context.Context, evt model.LedgerEvent) error {
	p.l.InfoContext(ctx, "ledger_event",
		"event_id", evt.EventID,
		"event_type", evt.EventType,
		"aggregate_id", evt.AggregateID,
		"actor_user_id", evt.ActorUserID,
		"payload", string(evt.Payload),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
