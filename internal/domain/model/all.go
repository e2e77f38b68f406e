package model

// Tables はマイグレーション対象のモデル一覧。
func Tables() []any {
	return []any{
		&Product{},
		&OrderStatus{},
		&Order{},
		&OrderItem{},
		&User{},
		&ShopInfo{},
		&InventoryAdjustment{},
		&AuditLog{},
	}
}
