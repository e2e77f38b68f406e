package model

import "time"

// ステータスの表示色。固定パレット以外は受け付けない。
type StatusColor string

const (
	ColorGray   StatusColor = "gray"
	ColorRed    StatusColor = "red"
	ColorYellow StatusColor = "yellow"
	ColorGreen  StatusColor = "green"
	ColorBlue   StatusColor = "blue"
	ColorIndigo StatusColor = "indigo"
	ColorPurple StatusColor = "purple"
	ColorPink   StatusColor = "pink"
)

// Palette は利用可能な色の一覧（表示順）。
var Palette = []StatusColor{
	ColorGray, ColorRed, ColorYellow, ColorGreen,
	ColorBlue, ColorIndigo, ColorPurple, ColorPink,
}

// Valid はパレットに含まれる色かどうか。
func (c StatusColor) Valid() bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// 注文ステータスのレジストリ1件。
// Seq が登録順で、先頭が新規注文のデフォルト。
type OrderStatus struct {
	Seq       int64       `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        string      `gorm:"type:varchar(36);not null;uniqueIndex" json:"id"`
	Name      string      `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Color     StatusColor `gorm:"type:varchar(20);not null" json:"color"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

// DefaultStatuses は初回起動時に投入するステータス。
var DefaultStatuses = []OrderStatus{
	{Name: "Started", Color: ColorBlue},
	{Name: "First Layer Completed", Color: ColorIndigo},
	{Name: "Final Layer Applied", Color: ColorPurple},
	{Name: "Ready to Ship", Color: ColorYellow},
	{Name: "Completed", Color: ColorGreen},
	{Name: "Cancelled", Color: ColorRed},
}
