package service

import (
	"moneybook/models"

	"gorm.io/gorm"
)

// 注册时为新用户创建的默认类别（颜色与前端 CSS 保持一致）
var defaultExpenseCategories = []struct {
	Name  string
	Sort  int
	Color string
}{
	{"餐饮", 10, "#ef4444"},
	{"交通", 20, "#3b82f6"},
	{"购物", 30, "#a855f7"},
	{"娱乐", 40, "#ec4899"},
	{"医疗", 50, "#10b981"},
	{"住房", 60, "#14b8a6"},
	{"其他", 70, "#64748b"},
}

var defaultIncomeCategories = []struct {
	Name  string
	Sort  int
	Color string
}{
	{"工资", 10, "#10b981"},
	{"奖金", 20, "#3b82f6"},
	{"理财", 30, "#a855f7"},
	{"其他", 40, "#64748b"},
}

// ProvisionUserDefaults 为新注册用户初始化默认数据
// 包含默认收支类别、系统保留的"信用卡还款"类别和一个零余额的现金账户。
// 与注册在同一事务内执行。
func ProvisionUserDefaults(tx *gorm.DB, userID uint) error {
	var cats []models.Category
	for _, item := range defaultExpenseCategories {
		cats = append(cats, models.Category{
			UserID: userID,
			Name:   item.Name,
			Kind:   models.KindExpense,
			Sort:   item.Sort,
			Color:  item.Color,
		})
	}
	for _, item := range defaultIncomeCategories {
		cats = append(cats, models.Category{
			UserID: userID,
			Name:   item.Name,
			Kind:   models.KindIncome,
			Sort:   item.Sort,
			Color:  item.Color,
		})
	}
	// 系统保留类别：信用卡还款交易固定挂在这里，不可改名/删除
	cats = append(cats, models.Category{
		UserID: userID,
		Name:   models.SystemCategoryCardPayment,
		Kind:   models.KindExpense,
		Sort:   990,
		Color:  "#f59e0b",
		System: true,
	})
	if err := tx.Create(&cats).Error; err != nil {
		return err
	}

	// 默认现金账户
	account := models.Account{
		UserID: userID,
		Name:   "现金",
		Active: true,
	}
	return tx.Create(&account).Error
}
