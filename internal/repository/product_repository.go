package repository

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
// 論理削除済みの商品は FindByIDs 以外では見えない。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	//削除済みも含めて返す（注文の表示用の結合）
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	//stock < threshold の商品
	ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
