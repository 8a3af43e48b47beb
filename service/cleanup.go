package service

import (
	"errors"

	"moneybook/models"

	"gorm.io/gorm"
)

// DeleteAccount 删除账户及其关联数据
//
// 账户本身软删除；它名下的交易、涉及它的转账一并删除，避免悬挂引用。
// 转账的对端账户仍然存在，其余额要先回退对应影响，
// 否则对端的 current_balance 会与剩余流水对不上。
func DeleteAccount(db *gorm.DB, userID uint, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
			return NewNotFoundError("账户")
		}

		// 回退涉及该账户的转账在对端的影响
		var transfers []models.Transfer
		if err := tx.Where("user_id = ? AND (from_account_id = ? OR to_account_id = ?)", userID, id, id).
			Find(&transfers).Error; err != nil {
			return err
		}
		for i := range transfers {
			tr := &transfers[i]
			if tr.FromAccountID == id && tr.ToAccountID != id {
				// 本账户转出，对端曾收款，扣回
				if err := ApplyDelta(tx, AccountTarget(tr.ToAccountID), -tr.Amount); err != nil {
					return err
				}
			} else if tr.ToAccountID == id && tr.FromAccountID != id {
				// 本账户转入，对端曾扣款，加回
				if err := ApplyDelta(tx, AccountTarget(tr.FromAccountID), tr.Amount); err != nil {
					return err
				}
			}
		}
		if err := tx.Where("user_id = ? AND (from_account_id = ? OR to_account_id = ?)", userID, id, id).
			Delete(&models.Transfer{}).Error; err != nil {
			return err
		}

		// 账户名下的还款记录删掉后，对应信用卡的欠款要先加回，
		// 否则卡上 current_balance 与剩余流水重算结果对不上
		var payments []models.Transaction
		if err := tx.Where("user_id = ? AND account_id = ? AND paid_card_id IS NOT NULL", userID, id).
			Find(&payments).Error; err != nil {
			return err
		}
		for i := range payments {
			p := &payments[i]
			if err := ApplyDelta(tx, CardTarget(*p.PaidCardID), p.Amount); err != nil {
				var nf *NotFoundError
				if errors.As(err, &nf) {
					// 卡已不存在，无需回退
					continue
				}
				return err
			}
		}

		// 账户名下的交易随账户一起删除
		if err := tx.Where("user_id = ? AND account_id = ?", userID, id).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}

		return tx.Delete(&account).Error
	})
}

// DeleteCard 删除信用卡及其名下交易
// 历史还款在来源账户上的支出保留（钱确实从账户划走了），
// 只清掉这些记录对已删卡的引用。
func DeleteCard(db *gorm.DB, userID uint, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
			return NewNotFoundError("信用卡")
		}

		if err := tx.Where("user_id = ? AND card_id = ?", userID, id).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND paid_card_id = ?", userID, id).
			Update("paid_card_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&card).Error
	})
}

// DeleteCategory 删除类别及其名下交易
// 名下每笔交易先撤销余额影响再删除，保证账户/信用卡余额仍与剩余流水一致；
// 系统保留类别不可删除。
func DeleteCategory(db *gorm.DB, userID uint, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error; err != nil {
			return NewNotFoundError("类别")
		}
		if cat.System {
			return NewBusinessRuleError("系统保留类别不可删除")
		}

		var transactions []models.Transaction
		if err := tx.Where("user_id = ? AND category_id = ?", userID, id).
			Find(&transactions).Error; err != nil {
			return err
		}
		for i := range transactions {
			t := &transactions[i]
			delta := TransactionDelta(t.Kind, t.PaymentMethod, t.Amount)
			if err := ApplyDelta(tx, TransactionTarget(t), -delta); err != nil {
				return err
			}
		}
		if len(transactions) > 0 {
			if err := tx.Where("user_id = ? AND category_id = ?", userID, id).
				Delete(&models.Transaction{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&cat).Error
	})
}

// DeleteTag 删除标签，仅清理与交易的关联，不影响余额
func DeleteTag(db *gorm.DB, userID uint, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
			return NewNotFoundError("标签")
		}
		if err := tx.Exec("DELETE FROM transaction_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}
