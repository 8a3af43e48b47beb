package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// PaymentMethodCash 现金账户支付
	PaymentMethodCash = "cash"
	// PaymentMethodCard 信用卡支付
	PaymentMethodCard = "card"
)

// Transaction 交易记录模型
// AccountID 与 CardID 有且仅有一个非空，且必须与 PaymentMethod 对应：
// cash -> AccountID，card -> CardID。
type Transaction struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	Amount        float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date          time.Time      `json:"date" gorm:"not null;index"`
	Description   string         `json:"description" gorm:"size:255"`
	Kind          string         `json:"kind" gorm:"size:10;not null;index"`           // income/expense
	PaymentMethod string         `json:"payment_method" gorm:"size:10;not null;index"` // cash/card
	CategoryID    uint           `json:"category_id" gorm:"index;not null"`
	AccountID     *uint          `json:"account_id" gorm:"index"`
	CardID        *uint          `json:"card_id" gorm:"index"`
	PaidCardID    *uint          `json:"paid_card_id" gorm:"index"` // 还款交易结清的信用卡，普通交易为空
	Notes         string         `json:"notes" gorm:"size:500"`
	Tags          []Tag          `json:"tags" gorm:"many2many:transaction_tags;"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
	Category      Category       `json:"category" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}
