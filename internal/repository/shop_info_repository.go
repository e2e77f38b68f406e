package repository

import (
	"backoffice/internal/domain/model"
	"context"
)

// 店舗設定（1行のみ）。未保存なら ErrNotFound。
type ShopInfoRepository interface {
	Get(ctx context.Context) (model.ShopInfo, error)
	Save(ctx context.Context, info model.ShopInfo) error
}
