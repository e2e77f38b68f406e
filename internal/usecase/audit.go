package usecase

import (
	"context"
	"encoding/json"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
)

// 監査ログを tx 内で1件書く。before/after は nil なら空文字。
func writeAudit(
	ctx context.Context,
	r repo.TxRepos,
	now time.Time,
	action model.AuditAction,
	resType model.AuditResourceType,
	resID string,
	before, after any,
) error {
	actor, _ := ActorFromContext(ctx)
	beforeJSON, err := auditJSON(before)
	if err != nil {
		return err
	}
	afterJSON, err := auditJSON(after)
	if err != nil {
		return err
	}
	return r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actor,
		Action:       action,
		ResourceType: resType,
		ResourceID:   resID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    now,
	})
}

func auditJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type AuditUsecase struct {
	tx repo.TransactionManager
}

func NewAuditUsecase(tx repo.TransactionManager) *AuditUsecase {
	return &AuditUsecase{tx: tx}
}

func (u *AuditUsecase) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedFrom.After(*f.CreatedTo) {
		return []model.AuditLog{}, validationError("from must be <= to")
	}
	if f.Offset < 0 {
		return []model.AuditLog{}, validationError("invalid offset")
	}

	var logs []model.AuditLog
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		logs, err = r.AuditLogs().List(ctx, f)
		return err
	})
	if err != nil {
		return []model.AuditLog{}, dbError(err)
	}
	return logs, nil
}
