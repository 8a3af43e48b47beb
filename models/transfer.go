package models

import (
	"time"

	"gorm.io/gorm"
)

// Transfer 账户间转账模型
// 只在现金账户之间进行：from 扣减、to 增加，编辑/删除时一并回退。
type Transfer struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	FromAccountID uint           `json:"from_account_id" gorm:"index;not null"`
	ToAccountID   uint           `json:"to_account_id" gorm:"index;not null"`
	Amount        float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date          time.Time      `json:"date" gorm:"not null;index"`
	Description   string         `json:"description" gorm:"size:255"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Transfer) TableName() string {
	return "transfers"
}
