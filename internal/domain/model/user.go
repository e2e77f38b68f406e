package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleCustomer   Role = "customer"
	RoleAccountant Role = "accountant"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
	RoleSales      Role = "sales"
	RoleProducer   Role = "producer"
)

var Roles = []Role{
	RoleAdmin, RoleStaff, RoleCustomer, RoleAccountant,
	RoleSupervisor, RoleManager, RoleSales, RoleProducer,
}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// ユーザー（顧客を含む）。注文の CustomerID はこの ID を指す。
type User struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        *string        `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Phone        string         `gorm:"type:varchar(30)" json:"phone"`
	Address      string         `gorm:"type:text" json:"address"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'customer';index" json:"role"`
	PasswordHash string         `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u User) IsDeleted() bool {
	return u.DeletedAt.Valid
}
