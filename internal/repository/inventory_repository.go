package repository

import (
	"backoffice/internal/domain/model"
	"context"
)

type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, productID string, newStock int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error

	// 商品ごとの調整履歴（新しい順）
	ListAdjustments(ctx context.Context, productID string) ([]model.InventoryAdjustment, error)
}
