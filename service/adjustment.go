package service

import (
	"moneybook/models"

	"gorm.io/gorm"
)

// CreateManualAdjustment 人工覆盖账户/信用卡余额
// 写入一条不可变的审计记录，并在同一事务里把新余额写回目标实体。
func CreateManualAdjustment(db *gorm.DB, userID uint, target Target, newBalance float64, reason string) (*models.BalanceAdjustment, error) {
	if reason == "" {
		return nil, NewValidationError("reason", "调整原因不能为空")
	}

	var created models.BalanceAdjustment
	err := db.Transaction(func(tx *gorm.DB) error {
		newBalance = Round2(newBalance)

		var previous float64
		created = models.BalanceAdjustment{
			UserID:     userID,
			NewBalance: newBalance,
			Reason:     reason,
		}

		switch target.Kind {
		case TargetAccount:
			var account models.Account
			if err := tx.Where("id = ? AND user_id = ?", target.ID, userID).First(&account).Error; err != nil {
				return NewNotFoundError("账户")
			}
			previous = account.CurrentBalance
			id := account.ID
			created.AccountID = &id
			if err := tx.Model(&account).Update("current_balance", newBalance).Error; err != nil {
				return err
			}
		case TargetCard:
			// 欠款没有负数语义，多还的钱应记在账户侧
			if newBalance < 0 {
				return NewValidationError("new_balance", "信用卡欠款不能为负数")
			}
			var card models.Card
			if err := tx.Where("id = ? AND user_id = ?", target.ID, userID).First(&card).Error; err != nil {
				return NewNotFoundError("信用卡")
			}
			previous = card.CurrentBalance
			id := card.ID
			created.CardID = &id
			if err := tx.Model(&card).Update("current_balance", newBalance).Error; err != nil {
				return err
			}
		default:
			return NewValidationError("target", "未知的余额目标类型")
		}

		created.PreviousBalance = previous
		created.Delta = SubMoney(newBalance, previous)
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
