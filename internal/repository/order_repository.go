package repository

import (
	"context"
	"time"

	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderListFilter struct {
	IncludeDeleted bool
	CustomerID     string
	Status         string
	From           *time.Time
	To             *time.Time
}

// 注文の保存・取得。List は created_at の新しい順、同時刻は登録順。
type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)

	UpdateStatus(ctx context.Context, orderID string, status string, at time.Time) error
	UpdateAmountPaid(ctx context.Context, orderID string, amount decimal.Decimal, at time.Time) error
	MarkDeleted(ctx context.Context, orderID string, at time.Time) error
}
