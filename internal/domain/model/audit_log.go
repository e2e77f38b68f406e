package model

import "time"

// 監査ログの操作種別。
type AuditAction string

const (
	AuditActionCreateOrder       AuditAction = "CREATE_ORDER"
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionRecordPayment     AuditAction = "RECORD_PAYMENT"
	AuditActionDeleteOrder       AuditAction = "DELETE_ORDER"

	AuditActionCreateProduct AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct AuditAction = "UPDATE_PRODUCT"
	AuditActionDeleteProduct AuditAction = "DELETE_PRODUCT"
	AuditActionUpdateStock   AuditAction = "UPDATE_STOCK"

	AuditActionCreateStatus AuditAction = "CREATE_STATUS"
	AuditActionUpdateStatus AuditAction = "UPDATE_STATUS"
	AuditActionDeleteStatus AuditAction = "DELETE_STATUS"

	AuditActionCreateUser AuditAction = "CREATE_USER"
	AuditActionUpdateUser AuditAction = "UPDATE_USER"
	AuditActionDeleteUser AuditAction = "DELETE_USER"

	AuditActionUpdateShopInfo AuditAction = "UPDATE_SHOP_INFO"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceProduct AuditResourceType = "product"
	AuditResourceOrder   AuditResourceType = "order"
	AuditResourceStatus  AuditResourceType = "order_status"
	AuditResourceUser    AuditResourceType = "user"
	AuditResourceShop    AuditResourceType = "shop_info"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID。認証なしの内部呼び出しは空。
	ActorUserID string `gorm:"type:varchar(36);not null;index" json:"actor_user_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(36);not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
