package model

import (
	"encoding/json"
	"time"
)

// 台帳イベントの種別。
type LedgerEventType string

const (
	EventOrderCreated   LedgerEventType = "OrderCreated"
	EventStatusChanged  LedgerEventType = "OrderStatusChanged"
	EventPaymentUpdated LedgerEventType = "OrderPaymentUpdated"
	EventOrderDeleted   LedgerEventType = "OrderDeleted"
	EventStockAdjusted  LedgerEventType = "StockAdjusted"
)

// 外部へ流すイベントの封筒。Payload は種別ごとの JSON。
type LedgerEvent struct {
	EventID      string          `json:"event_id"`
	EventType    LedgerEventType `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	ActorUserID  string          `json:"actor_user_id,omitempty"`
	AggregateID  string          `json:"aggregate_id"`
	Payload      json.RawMessage `json:"payload"`
}
