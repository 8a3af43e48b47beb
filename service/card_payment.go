package service

import (
	"fmt"
	"time"

	"moneybook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayCardInput 信用卡还款输入
type PayCardInput struct {
	CardID    uint
	AccountID uint // 扣款来源账户
	Amount    float64
	Date      time.Time
	Notes     string
}

// PayCard 信用卡还款：账户扣款、信用卡欠款减少、落一笔还款交易
//
// 还款不是独立的台账类型，而是一笔挂在系统保留"信用卡还款"类别下的
// 支出交易（paymentMethod=cash，accountID=来源账户），PaidCardID 记录被
// 结清的信用卡，重算/删除时据此恢复卡侧影响。
// 前置条件：金额大于 0、不超过账户余额、不超过当前欠款（不允许把欠款还成负数）。
// 任一步失败整体回滚，不会出现只扣款不销账的中间状态。
func PayCard(db *gorm.DB, userID uint, in PayCardInput) (*models.Transaction, error) {
	var created models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.Amount <= 0 {
			return NewValidationError("amount", "还款金额必须大于 0")
		}
		if in.Date.IsZero() {
			in.Date = time.Now()
		}

		var account models.Account
		if err := tx.Where("id = ? AND user_id = ?", in.AccountID, userID).First(&account).Error; err != nil {
			return NewNotFoundError("账户")
		}
		var card models.Card
		if err := tx.Where("id = ? AND user_id = ?", in.CardID, userID).First(&card).Error; err != nil {
			return NewNotFoundError("信用卡")
		}
		if !account.Active || !card.Active {
			return NewBusinessRuleError("账户或信用卡已停用")
		}

		amount := Round2(in.Amount)
		if amount > account.CurrentBalance {
			return NewBusinessRuleError("账户余额不足")
		}
		if amount > card.CurrentBalance {
			return NewBusinessRuleError("还款金额超过当前欠款")
		}

		// 系统保留类别在注册时创建，丢失视为数据异常
		var cat models.Category
		if err := tx.Where("user_id = ? AND system = ?", userID, true).First(&cat).Error; err != nil {
			return fmt.Errorf("系统保留类别缺失: %w", err)
		}

		// 账户扣款
		if err := ApplyDelta(tx, AccountTarget(account.ID), -amount); err != nil {
			return err
		}
		// 信用卡欠款减少
		if err := ApplyDelta(tx, CardTarget(card.ID), -amount); err != nil {
			return err
		}

		accountID := account.ID
		cardID := card.ID
		created = models.Transaction{
			UserID:        userID,
			Amount:        amount,
			Date:          in.Date,
			Description:   "还款 - " + card.Name,
			Kind:          models.KindExpense,
			PaymentMethod: models.PaymentMethodCash,
			CategoryID:    cat.ID,
			AccountID:     &accountID,
			PaidCardID:    &cardID,
			Notes:         in.Notes,
		}
		return tx.Omit(clause.Associations).Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
