package repository_test

import (
	"testing"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestAuditLogFilter_Matches(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	entry := model.AuditLog{
		ActorUserID:  "admin-1",
		Action:       model.AuditActionRecordPayment,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   "o-1",
		CreatedAt:    at,
	}

	tests := []struct {
		name   string
		filter repo.AuditLogFilter
		want   bool
	}{
		{name: "empty", filter: repo.AuditLogFilter{}, want: true},
		{name: "actor", filter: repo.AuditLogFilter{ActorUserID: lo.ToPtr("admin-1")}, want: true},
		{name: "other actor", filter: repo.AuditLogFilter{ActorUserID: lo.ToPtr("staff-1")}, want: false},
		{name: "other action", filter: repo.AuditLogFilter{Action: lo.ToPtr(model.AuditActionDeleteOrder)}, want: false},
		{name: "resource", filter: repo.AuditLogFilter{ResourceType: lo.ToPtr(model.AuditResourceOrder), ResourceID: lo.ToPtr("o-1")}, want: true},
		{name: "other resource id", filter: repo.AuditLogFilter{ResourceID: lo.ToPtr("o-2")}, want: false},
		{name: "range includes both ends", filter: repo.AuditLogFilter{CreatedFrom: &at, CreatedTo: &at}, want: true},
		{name: "from after", filter: repo.AuditLogFilter{CreatedFrom: lo.ToPtr(at.Add(time.Second))}, want: false},
		{name: "to before", filter: repo.AuditLogFilter{CreatedTo: lo.ToPtr(at.Add(-time.Second))}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(entry))
		})
	}
}

func TestAuditLogFilter_Window(t *testing.T) {
	tests := []struct {
		name       string
		filter     repo.AuditLogFilter
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults", filter: repo.AuditLogFilter{}, wantOffset: 0, wantLimit: 50},
		{name: "given", filter: repo.AuditLogFilter{Limit: 10, Offset: 20}, wantOffset: 20, wantLimit: 10},
		{name: "negative offset", filter: repo.AuditLogFilter{Offset: -3}, wantOffset: 0, wantLimit: 50},
		{name: "limit too large", filter: repo.AuditLogFilter{Limit: 201}, wantOffset: 0, wantLimit: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := tt.filter.Window()
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
