package service

import (
	"time"

	"moneybook/models"

	"gorm.io/gorm"
)

// TransferInput 创建/更新转账的输入
type TransferInput struct {
	FromAccountID uint
	ToAccountID   uint
	Amount        float64
	Date          time.Time
	Description   string
}

// validateTransferInput 校验转账输入并返回两端账户
func validateTransferInput(tx *gorm.DB, userID uint, in *TransferInput) (*models.Account, *models.Account, error) {
	if in.Amount <= 0 {
		return nil, nil, NewValidationError("amount", "转账金额必须大于 0")
	}
	if in.Date.IsZero() {
		return nil, nil, NewValidationError("date", "日期不能为空")
	}
	if in.FromAccountID == in.ToAccountID {
		return nil, nil, NewBusinessRuleError("转出账户与转入账户不能相同")
	}

	var from models.Account
	if err := tx.Where("id = ? AND user_id = ?", in.FromAccountID, userID).First(&from).Error; err != nil {
		return nil, nil, NewNotFoundError("转出账户")
	}
	var to models.Account
	if err := tx.Where("id = ? AND user_id = ?", in.ToAccountID, userID).First(&to).Error; err != nil {
		return nil, nil, NewNotFoundError("转入账户")
	}
	if !from.Active || !to.Active {
		return nil, nil, NewBusinessRuleError("转账账户已停用")
	}
	return &from, &to, nil
}

// CreateTransfer 创建转账：扣转出、加转入、落转账记录，三步同一事务
// 余额不足直接拒绝，两端余额保持不变。
func CreateTransfer(db *gorm.DB, userID uint, in TransferInput) (*models.Transfer, error) {
	var created models.Transfer
	err := db.Transaction(func(tx *gorm.DB) error {
		from, _, err := validateTransferInput(tx, userID, &in)
		if err != nil {
			return err
		}

		amount := Round2(in.Amount)
		if from.CurrentBalance < amount {
			return NewBusinessRuleError("转出账户余额不足")
		}

		if err := ApplyDelta(tx, AccountTarget(in.FromAccountID), -amount); err != nil {
			return err
		}
		if err := ApplyDelta(tx, AccountTarget(in.ToAccountID), amount); err != nil {
			return err
		}

		created = models.Transfer{
			UserID:        userID,
			FromAccountID: in.FromAccountID,
			ToAccountID:   in.ToAccountID,
			Amount:        amount,
			Date:          in.Date,
			Description:   in.Description,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTransfer 更新转账
// 先把两端账户恢复到转账前的余额，再按恢复后的余额校验新金额，
// 最后以新的两端/金额重新应用——转出、转入账户本身都可能被改掉。
func UpdateTransfer(db *gorm.DB, userID uint, id uint, in TransferInput) (*models.Transfer, error) {
	var updated models.Transfer
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Transfer
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
			return NewNotFoundError("转账记录")
		}

		// 恢复原余额：转出方加回，转入方扣回
		if err := ApplyDelta(tx, AccountTarget(existing.FromAccountID), existing.Amount); err != nil {
			return err
		}
		if err := ApplyDelta(tx, AccountTarget(existing.ToAccountID), -existing.Amount); err != nil {
			return err
		}

		_, _, err := validateTransferInput(tx, userID, &in)
		if err != nil {
			return err
		}

		// 余额校验要基于恢复后的转出账户
		var from models.Account
		if err := tx.Where("id = ? AND user_id = ?", in.FromAccountID, userID).First(&from).Error; err != nil {
			return NewNotFoundError("转出账户")
		}
		amount := Round2(in.Amount)
		if from.CurrentBalance < amount {
			return NewBusinessRuleError("转出账户余额不足")
		}

		if err := ApplyDelta(tx, AccountTarget(in.FromAccountID), -amount); err != nil {
			return err
		}
		if err := ApplyDelta(tx, AccountTarget(in.ToAccountID), amount); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"from_account_id": in.FromAccountID,
			"to_account_id":   in.ToAccountID,
			"amount":          amount,
			"date":            in.Date,
			"description":     in.Description,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&updated, existing.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransfer 删除转账：恢复两端余额后移除记录，返回删除前的快照
func DeleteTransfer(db *gorm.DB, userID uint, id uint) (*models.Transfer, error) {
	var snapshot models.Transfer
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&snapshot).Error; err != nil {
			return NewNotFoundError("转账记录")
		}

		if err := ApplyDelta(tx, AccountTarget(snapshot.FromAccountID), snapshot.Amount); err != nil {
			return err
		}
		if err := ApplyDelta(tx, AccountTarget(snapshot.ToAccountID), -snapshot.Amount); err != nil {
			return err
		}
		return tx.Delete(&snapshot).Error
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
