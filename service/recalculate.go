package service

import (
	"moneybook/models"

	"gorm.io/gorm"
)

// RecalculateResult 重算结果汇总
type RecalculateResult struct {
	Accounts     int `json:"accounts"`     // 参与重算的账户数
	Cards        int `json:"cards"`        // 参与重算的信用卡数
	Transactions int `json:"transactions"` // 重放的交易数
	Transfers    int `json:"transfers"`    // 重放的转账数
}

// RecalculateAll 全量重算指定用户的余额
//
// 把所有账户/信用卡重置为 initial_balance，再按 (date, created_at) 升序
// 重放全部历史交易和转账。这是系统对余额漂移唯一的自愈手段，幂等：
// 连续执行两次结果相同。手动调整记录不参与重放，重算得到的是纯台账事实。
func RecalculateAll(db *gorm.DB, userID uint) (*RecalculateResult, error) {
	var result RecalculateResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// 余额归位到初始值
		accounts := tx.Model(&models.Account{}).
			Where("user_id = ?", userID).
			Update("current_balance", gorm.Expr("initial_balance"))
		if accounts.Error != nil {
			return accounts.Error
		}
		cards := tx.Model(&models.Card{}).
			Where("user_id = ?", userID).
			Update("current_balance", gorm.Expr("initial_balance"))
		if cards.Error != nil {
			return cards.Error
		}
		result.Accounts = int(accounts.RowsAffected)
		result.Cards = int(cards.RowsAffected)

		// 按原始应用顺序重放交易
		var transactions []models.Transaction
		if err := tx.Where("user_id = ?", userID).
			Order("date ASC, created_at ASC, id ASC").
			Find(&transactions).Error; err != nil {
			return err
		}
		for i := range transactions {
			t := &transactions[i]
			delta := TransactionDelta(t.Kind, t.PaymentMethod, t.Amount)
			if err := ApplyDelta(tx, TransactionTarget(t), delta); err != nil {
				return err
			}
			// 还款交易同时恢复信用卡侧的销账
			if t.PaidCardID != nil {
				if err := ApplyDelta(tx, CardTarget(*t.PaidCardID), -t.Amount); err != nil {
					return err
				}
			}
		}
		result.Transactions = len(transactions)

		// 重放转账
		var transfers []models.Transfer
		if err := tx.Where("user_id = ?", userID).
			Order("date ASC, created_at ASC, id ASC").
			Find(&transfers).Error; err != nil {
			return err
		}
		for i := range transfers {
			tr := &transfers[i]
			if err := ApplyDelta(tx, AccountTarget(tr.FromAccountID), -tr.Amount); err != nil {
				return err
			}
			if err := ApplyDelta(tx, AccountTarget(tr.ToAccountID), tr.Amount); err != nil {
				return err
			}
		}
		result.Transfers = len(transfers)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
