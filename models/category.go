package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// KindIncome 收入
	KindIncome = "income"
	// KindExpense 支出
	KindExpense = "expense"
)

// SystemCategoryCardPayment 系统保留类别：信用卡还款
// 每个用户注册时自动创建，还卡产生的记账交易固定挂在该类别下。
const SystemCategoryCardPayment = "信用卡还款"

// Category 交易类别模型（按用户维护）
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"size:50;not null"`
	Kind      string         `json:"kind" gorm:"size:10;not null;index"`   // income/expense
	Color     string         `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #ef4444
	Sort      int            `json:"sort" gorm:"default:0;index"`
	System    bool           `json:"system" gorm:"default:false"` // 系统保留类别不可改名/删除
	Active    bool           `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}
