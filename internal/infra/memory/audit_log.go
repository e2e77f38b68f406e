package memory

import (
	"context"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/samber/lo"
)

type auditLogRepo struct {
	st *state
}

func (r *auditLogRepo) Create(ctx context.Context, log model.AuditLog) error {
	log.ID = r.st.nextSeq()
	r.st.audits = append(r.st.audits, log)
	return nil
}

func (r *auditLogRepo) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	//新しい順
	out := lo.Reverse(lo.Filter(r.st.audits, func(l model.AuditLog, _ int) bool {
		return f.Matches(l)
	}))

	offset, limit := f.Window()
	if offset >= len(out) {
		return []model.AuditLog{}, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

type shopInfoRepo struct {
	st *state
}

func (r *shopInfoRepo) Get(ctx context.Context) (model.ShopInfo, error) {
	if r.st.shop == nil {
		return model.ShopInfo{}, repo.ErrNotFound
	}
	return *r.st.shop, nil
}

func (r *shopInfoRepo) Save(ctx context.Context, info model.ShopInfo) error {
	info.ID = model.ShopInfoID
	r.st.shop = &info
	return nil
}
