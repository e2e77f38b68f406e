package model

import "time"

// ShopInfoID は店舗設定の唯一の行。
const ShopInfoID int64 = 1

// 店舗設定。請求書のヘッダ・フッタに使う。
type ShopInfo struct {
	ID            int64     `gorm:"primaryKey" json:"-"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Address       string    `gorm:"type:text" json:"address"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone"`
	InvoiceFooter string    `gorm:"type:text" json:"invoice_footer"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
