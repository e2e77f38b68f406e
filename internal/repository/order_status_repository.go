package repository

import (
	"backoffice/internal/domain/model"
	"context"
)

// ステータスレジストリ。List は登録順。
type OrderStatusRepository interface {
	List(ctx context.Context) ([]model.OrderStatus, error)
	FindByID(ctx context.Context, id string) (model.OrderStatus, error)
	FindByName(ctx context.Context, name string) (model.OrderStatus, bool, error)
	Create(ctx context.Context, s model.OrderStatus) (model.OrderStatus, error)
	Update(ctx context.Context, s model.OrderStatus) error
	Delete(ctx context.Context, id string) error
}
