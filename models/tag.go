package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag 标签模型，与交易多对多
// 同一用户下标签名不区分大小写唯一（由创建/更新逻辑保证）。
type Tag struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"size:50;not null"`
	Color     string         `json:"color" gorm:"size:20;default:#64748b"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Tag) TableName() string {
	return "tags"
}
