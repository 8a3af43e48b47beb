package models

import (
	"time"

	"gorm.io/gorm"
)

// BalanceAdjustment 余额手动调整审计记录
// 只增不改：每次人工覆盖账户/信用卡余额时写入一条，
// 同一操作内把 NewBalance 写回目标实体。
type BalanceAdjustment struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	AccountID       *uint          `json:"account_id" gorm:"index"`
	CardID          *uint          `json:"card_id" gorm:"index"`
	PreviousBalance float64        `json:"previous_balance" gorm:"type:decimal(12,2);not null"`
	NewBalance      float64        `json:"new_balance" gorm:"type:decimal(12,2);not null"`
	Delta           float64        `json:"delta" gorm:"type:decimal(12,2);not null"`
	Reason          string         `json:"reason" gorm:"size:255;not null"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	User            User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (BalanceAdjustment) TableName() string {
	return "balance_adjustments"
}
