package service

import (
	"time"

	"moneybook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionInput 创建/更新交易的输入
// TagIDs 为 nil 表示不修改标签关联，空切片表示清空。
type TransactionInput struct {
	Amount        float64
	Date          time.Time
	Description   string
	Kind          string
	PaymentMethod string
	CategoryID    uint
	AccountID     *uint
	CardID        *uint
	Notes         string
	TagIDs        []uint
}

// validateTransactionInput 校验交易输入并返回余额目标
// 规则：kind/payment_method 枚举合法；金额非负；账户/信用卡二选一且与
// payment_method 对应；类别、目标实体均属于当前用户且可用。
func validateTransactionInput(tx *gorm.DB, userID uint, in *TransactionInput) (Target, error) {
	if in.Kind != models.KindIncome && in.Kind != models.KindExpense {
		return Target{}, NewValidationError("kind", "必须为 income 或 expense")
	}
	if in.PaymentMethod != models.PaymentMethodCash && in.PaymentMethod != models.PaymentMethodCard {
		return Target{}, NewValidationError("payment_method", "必须为 cash 或 card")
	}
	if in.Amount < 0 {
		return Target{}, NewValidationError("amount", "金额不能为负数")
	}
	if in.Date.IsZero() {
		return Target{}, NewValidationError("date", "日期不能为空")
	}
	if in.CategoryID == 0 {
		return Target{}, NewValidationError("category_id", "类别不能为空")
	}

	// 账户/信用卡二选一，且与支付方式对应
	switch in.PaymentMethod {
	case models.PaymentMethodCash:
		if in.AccountID == nil || in.CardID != nil {
			return Target{}, NewValidationError("account_id", "现金支付必须且只能指定账户")
		}
	case models.PaymentMethodCard:
		if in.CardID == nil || in.AccountID != nil {
			return Target{}, NewValidationError("card_id", "信用卡支付必须且只能指定信用卡")
		}
	}

	// 类别归属与收支方向
	var cat models.Category
	if err := tx.Where("id = ? AND user_id = ?", in.CategoryID, userID).First(&cat).Error; err != nil {
		return Target{}, NewNotFoundError("类别")
	}
	if cat.Kind != in.Kind {
		return Target{}, NewValidationError("category_id", "类别收支方向与交易不一致")
	}

	// 目标实体归属
	if in.PaymentMethod == models.PaymentMethodCash {
		var account models.Account
		if err := tx.Where("id = ? AND user_id = ?", *in.AccountID, userID).First(&account).Error; err != nil {
			return Target{}, NewNotFoundError("账户")
		}
		if !account.Active {
			return Target{}, NewBusinessRuleError("账户已停用")
		}
		return AccountTarget(account.ID), nil
	}

	var card models.Card
	if err := tx.Where("id = ? AND user_id = ?", *in.CardID, userID).First(&card).Error; err != nil {
		return Target{}, NewNotFoundError("信用卡")
	}
	if !card.Active {
		return Target{}, NewBusinessRuleError("信用卡已停用")
	}
	return CardTarget(card.ID), nil
}

// loadOwnedTags 加载并校验标签归属
func loadOwnedTags(tx *gorm.DB, userID uint, tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ? AND user_id = ?", tagIDs, userID).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, NewNotFoundError("标签")
	}
	return tags, nil
}

// CreateTransaction 创建交易并应用余额影响
// 插入、记账、打标签在同一个数据库事务内完成。
func CreateTransaction(db *gorm.DB, userID uint, in TransactionInput) (*models.Transaction, error) {
	var created models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		target, err := validateTransactionInput(tx, userID, &in)
		if err != nil {
			return err
		}

		tags, err := loadOwnedTags(tx, userID, in.TagIDs)
		if err != nil {
			return err
		}

		created = models.Transaction{
			UserID:        userID,
			Amount:        Round2(in.Amount),
			Date:          in.Date,
			Description:   in.Description,
			Kind:          in.Kind,
			PaymentMethod: in.PaymentMethod,
			CategoryID:    in.CategoryID,
			AccountID:     in.AccountID,
			CardID:        in.CardID,
			Notes:         in.Notes,
		}
		if err := tx.Omit(clause.Associations).Create(&created).Error; err != nil {
			return err
		}

		if err := ApplyDelta(tx, target, TransactionDelta(created.Kind, created.PaymentMethod, created.Amount)); err != nil {
			return err
		}

		if len(tags) > 0 {
			if err := tx.Model(&created).Association("Tags").Append(&tags); err != nil {
				return err
			}
			created.Tags = tags
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTransaction 更新交易：先撤销原余额影响，再写入新值并重新应用
// 金额、目标实体、类别、支付方式可能同时变化（含账户↔信用卡互换），
// 直接算净增量容易出错，因此固定走"撤销-重放"两段式，整体包在一个事务里。
func UpdateTransaction(db *gorm.DB, userID uint, id uint, in TransactionInput) (*models.Transaction, error) {
	var updated models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
			return NewNotFoundError("交易记录")
		}
		if existing.PaidCardID != nil {
			return NewBusinessRuleError("信用卡还款记录不支持修改，请删除后重新还款")
		}

		// 撤销原影响
		oldDelta := TransactionDelta(existing.Kind, existing.PaymentMethod, existing.Amount)
		if err := ApplyDelta(tx, TransactionTarget(&existing), -oldDelta); err != nil {
			return err
		}

		target, err := validateTransactionInput(tx, userID, &in)
		if err != nil {
			return err
		}

		tags, err := loadOwnedTags(tx, userID, in.TagIDs)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"amount":         Round2(in.Amount),
			"date":           in.Date,
			"description":    in.Description,
			"kind":           in.Kind,
			"payment_method": in.PaymentMethod,
			"category_id":    in.CategoryID,
			"account_id":     in.AccountID,
			"card_id":        in.CardID,
			"notes":          in.Notes,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		// 应用新影响
		if err := ApplyDelta(tx, target, TransactionDelta(in.Kind, in.PaymentMethod, in.Amount)); err != nil {
			return err
		}

		// 显式传入 TagIDs 时整体替换标签
		if in.TagIDs != nil {
			if err := tx.Model(&existing).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		if err := tx.Preload("Tags").Preload("Category").First(&updated, existing.ID).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction 删除交易：撤销余额影响后移除记录，返回删除前的快照
func DeleteTransaction(db *gorm.DB, userID uint, id uint) (*models.Transaction, error) {
	var snapshot models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&snapshot).Error; err != nil {
			return NewNotFoundError("交易记录")
		}

		delta := TransactionDelta(snapshot.Kind, snapshot.PaymentMethod, snapshot.Amount)
		if err := ApplyDelta(tx, TransactionTarget(&snapshot), -delta); err != nil {
			return err
		}

		// 删除还款记录时把欠款加回对应信用卡
		if snapshot.PaidCardID != nil {
			if err := ApplyDelta(tx, CardTarget(*snapshot.PaidCardID), snapshot.Amount); err != nil {
				return err
			}
		}

		// 清理标签关联后删除
		if err := tx.Model(&snapshot).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&snapshot).Error
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
