package repository

import (
	"context"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 監査ログは追記のみ。
type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	entry.ID = 0
	return translateErr(r.db.WithContext(ctx).Create(&entry).Error)
}

// 絞り込みは AuditLogFilter.Matches と同じ条件を列に当てる
func auditLogConditions(f repo.AuditLogFilter) []clause.Expression {
	var exprs []clause.Expression
	eq := func(col string, v any) {
		exprs = append(exprs, clause.Eq{Column: clause.Column{Name: col}, Value: v})
	}
	if f.ActorUserID != nil {
		eq("actor_user_id", *f.ActorUserID)
	}
	if f.Action != nil {
		eq("action", *f.Action)
	}
	if f.ResourceType != nil {
		eq("resource_type", *f.ResourceType)
	}
	if f.ResourceID != nil {
		eq("resource_id", *f.ResourceID)
	}
	if f.CreatedFrom != nil {
		exprs = append(exprs, clause.Gte{Column: clause.Column{Name: "created_at"}, Value: *f.CreatedFrom})
	}
	if f.CreatedTo != nil {
		exprs = append(exprs, clause.Lte{Column: clause.Column{Name: "created_at"}, Value: *f.CreatedTo})
	}
	return exprs
}

func (r *AuditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if conds := auditLogConditions(f); len(conds) > 0 {
		q = q.Clauses(clause.Where{Exprs: conds})
	}

	offset, limit := f.Window()
	logs := []model.AuditLog{}
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(limit).Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return logs, nil
}
