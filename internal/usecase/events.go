package usecase

import (
	"context"
	"encoding/json"

	"backoffice/internal/domain/model"
	"backoffice/internal/logging"
)

// EventPublisher は台帳イベントを外部へ流す。
type EventPublisher interface {
	Publish(ctx context.Context, evt model.LedgerEvent) error
}

// ReportCache はレポート結果の JSON キャッシュ。
// Get が返す世代を Set に渡す。Invalidate を挟んだ Set の値は返さない。
type ReportCache interface {
	Get(ctx context.Context, key string, dst any) (gen int64, hit bool, err error)
	Set(ctx context.Context, key string, gen int64, v any) error
	Invalidate(ctx context.Context) error
}

const eventProducer = "backoffice-api"

// LedgerNotifier はコミット後の副作用（イベント送信・キャッシュ破棄）をまとめる。
// 失敗はログに残すだけで、元の操作は成功のまま。
type LedgerNotifier struct {
	pub   EventPublisher
	cache ReportCache
	clock Clock
	ids   IDGenerator
}

func NewLedgerNotifier(pub EventPublisher, cache ReportCache, clock Clock, ids IDGenerator) *LedgerNotifier {
	return &LedgerNotifier{pub: pub, cache: cache, clock: clock, ids: ids}
}

// InvalidateReports はイベントを出さずにレポートキャッシュだけ捨てる（商品・ユーザー変更用）。
func (n *LedgerNotifier) InvalidateReports(ctx context.Context) {
	if n == nil || n.cache == nil {
		return
	}
	if err := n.cache.Invalidate(ctx); err != nil {
		logging.FromContext(ctx).Warn("report_cache_invalidate_error", "error", err)
	}
}

func (n *LedgerNotifier) Notify(ctx context.Context, typ model.LedgerEventType, aggregateID string, payload any) {
	if n == nil {
		return
	}
	l := logging.FromContext(ctx)

	n.InvalidateReports(ctx)

	if n.pub == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		l.Error("ledger_event_marshal_error", "event_type", typ, "error", err)
		return
	}
	actor, _ := ActorFromContext(ctx)
	evt := model.LedgerEvent{
		EventID:      n.ids.NewID(),
		EventType:    typ,
		EventVersion: 1,
		OccurredAt:   n.clock.Now(),
		Producer:     eventProducer,
		ActorUserID:  actor,
		AggregateID:  aggregateID,
		Payload:      body,
	}
	if err := n.pub.Publish(ctx, evt); err != nil {
		l.Warn("ledger_event_publish_error", "event_type", typ, "aggregate_id", aggregateID, "error", err)
	}
}
