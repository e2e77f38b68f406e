package repository

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
)

type UserListFilter struct {
	Role *model.Role
}

// ユーザーの保存・取得を約束
type UserRepository interface {
	List(ctx context.Context, f UserListFilter) ([]model.User, error)
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (model.User, error)
	//削除済みも含めて返す（注文の表示用）
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	Count(ctx context.Context, f UserListFilter) (int64, error)

	//emailが重複したら ErrDuplicate
	Create(ctx context.Context, user model.User) (model.User, error)
	Update(ctx context.Context, user model.User) error
	SoftDelete(ctx context.Context, userID string, at time.Time) error
}
