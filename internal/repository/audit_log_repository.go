package repository

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
)

//監査ログの絞り込み条件。

type AuditLogFilter struct {
	ActorUserID  *string
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// NormalizedLimit は 1..200 に収めた件数（既定 50）。
func (f AuditLogFilter) NormalizedLimit() int {
	if f.Limit <= 0 || f.Limit > 200 {
		return 50
	}
	return f.Limit
}

// Window は新しい順に並べた結果から切り出す範囲。
func (f AuditLogFilter) Window() (offset, limit int) {
	return max(f.Offset, 0), f.NormalizedLimit()
}

// Matches は条件をすべて満たすか。期間は両端を含む。
func (f AuditLogFilter) Matches(l model.AuditLog) bool {
	switch {
	case f.ActorUserID != nil && l.ActorUserID != *f.ActorUserID:
		return false
	case f.Action != nil && l.Action != *f.Action:
		return false
	case f.ResourceType != nil && l.ResourceType != *f.ResourceType:
		return false
	case f.ResourceID != nil && l.ResourceID != *f.ResourceID:
		return false
	case f.CreatedFrom != nil && l.CreatedAt.Before(*f.CreatedFrom):
		return false
	case f.CreatedTo != nil && l.CreatedAt.After(*f.CreatedTo):
		return false
	}
	return true
}

// 監査ログの保存・一覧取得の約束。
type AuditLogRepository interface {
	//監査ログを1件保存
	Create(ctx context.Context, log model.AuditLog) error

	//監査ログを条件で一覧取得（新しい順）。
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
