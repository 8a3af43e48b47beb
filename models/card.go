package models

import (
	"time"

	"gorm.io/gorm"
)

// Card 信用卡模型
// CurrentBalance 表示当前欠款（与 Account 符号约定相反）：
// 消费增加欠款，还款/收入减少欠款。
type Card struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	Name            string         `json:"name" gorm:"size:50;not null"`
	InitialBalance  float64        `json:"initial_balance" gorm:"type:decimal(12,2);not null;default:0"`
	CurrentBalance  float64        `json:"current_balance" gorm:"type:decimal(12,2);not null;default:0"`
	CreditLimit     float64        `json:"credit_limit" gorm:"type:decimal(12,2);not null;default:0"`
	StatementCutDay int            `json:"statement_cut_day" gorm:"default:1"` // 账单日（每月几号）
	DueDay          int            `json:"due_day" gorm:"default:1"`           // 还款日（每月几号）
	Active          bool           `json:"active" gorm:"default:true;index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	User            User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Card) TableName() string {
	return "cards"
}
