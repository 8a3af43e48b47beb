package models

import (
	"time"

	"gorm.io/gorm"
)

// Account 现金账户模型
// CurrentBalance 是派生缓存：initial_balance 加上所有未撤销的交易/转账净额，
// 只允许余额变更逻辑（service 包）修改。
type Account struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"size:50;not null"`
	InitialBalance float64        `json:"initial_balance" gorm:"type:decimal(12,2);not null;default:0"`
	CurrentBalance float64        `json:"current_balance" gorm:"type:decimal(12,2);not null;default:0"`
	Active         bool           `json:"active" gorm:"default:true;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
	User           User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Account) TableName() string {
	return "accounts"
}
