package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error

	// Position 順
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]model.OrderItem, error)
}
