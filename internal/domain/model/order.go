package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文。TotalAmount は作成時に確定し、以後変更しない。
// Status はレジストリ名のラベルで、遷移の制約はない。
type Order struct {
	Seq         int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	ID          string          `gorm:"type:varchar(36);not null;uniqueIndex" json:"id"`
	CustomerID  string          `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	AmountPaid  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount_paid"`
	Status      string          `gorm:"type:varchar(100);not null;index" json:"status"`
	Deleted     bool            `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// Remaining は未払い残高。保存はしない。
func (o Order) Remaining() decimal.Decimal {
	return o.TotalAmount.Sub(o.AmountPaid)
}
