package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。単価は作成時点のスナップショットが正。
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID             string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	Position            int             `gorm:"not null" json:"position"`
	ProductID           string          `gorm:"type:varchar(36);not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time       `gorm:"not null" json:"created_at"`
}

// LineTotal は単価×数量。
func (it OrderItem) LineTotal() decimal.Decimal {
	return it.UnitPriceSnapshot.Mul(decimal.NewFromInt(it.Quantity))
}
