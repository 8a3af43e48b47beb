package service

import (
	"time"

	"moneybook/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TargetKind 余额目标类型
type TargetKind string

const (
	// TargetAccount 现金账户
	TargetAccount TargetKind = "account"
	// TargetCard 信用卡
	TargetCard TargetKind = "card"
)

// Target 余额变更目标：账户或信用卡二选一
// 交易行里的 account_id/card_id 两个可空外键在核心逻辑中统一收敛为该类型，
// 避免两个都空或都非空的脏状态。
type Target struct {
	Kind TargetKind
	ID   uint
}

// AccountTarget 账户目标
func AccountTarget(id uint) Target {
	return Target{Kind: TargetAccount, ID: id}
}

// CardTarget 信用卡目标
func CardTarget(id uint) Target {
	return Target{Kind: TargetCard, ID: id}
}

// TransactionTarget 取交易的余额目标
func TransactionTarget(t *models.Transaction) Target {
	if t.PaymentMethod == models.PaymentMethodCard && t.CardID != nil {
		return CardTarget(*t.CardID)
	}
	if t.AccountID != nil {
		return AccountTarget(*t.AccountID)
	}
	return Target{}
}

// Round2 金额四舍五入到分
// 余额增量全部走 decimal 运算，避免 float64 累积误差
func Round2(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return v
}

// TransactionDelta 计算一笔交易对其目标余额的带符号增量
//
// 符号约定：
//
//	账户   收入 +    支出 -
//	信用卡 支出 +（欠款增加）  收入/还款 -（欠款减少）
//
// 撤销一笔交易就是以相反符号再次应用。
func TransactionDelta(kind, paymentMethod string, amount float64) float64 {
	amount = Round2(amount)
	switch paymentMethod {
	case models.PaymentMethodCard:
		if kind == models.KindExpense {
			return amount
		}
		return -amount
	default:
		if kind == models.KindIncome {
			return amount
		}
		return -amount
	}
}

// ApplyDelta 把带符号增量写入目标实体的 current_balance
// 单条 UPDATE 内完成读加写，依赖所在数据库事务的行锁保证原子性；
// 不做乐观锁版本校验。
func ApplyDelta(tx *gorm.DB, target Target, delta float64) error {
	delta = Round2(delta)

	var model interface{}
	switch target.Kind {
	case TargetAccount:
		model = &models.Account{}
	case TargetCard:
		model = &models.Card{}
	default:
		return NewValidationError("target", "未知的余额目标类型")
	}

	result := tx.Model(model).
		Where("id = ?", target.ID).
		Updates(map[string]interface{}{
			"current_balance": gorm.Expr("ROUND(current_balance + ?, 2)", delta),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if target.Kind == TargetCard {
			return NewNotFoundError("信用卡")
		}
		return NewNotFoundError("账户")
	}
	return nil
}

// AddMoney 金额相加（decimal 精度）
func AddMoney(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).Float64()
	return v
}

// SubMoney 金额相减（decimal 精度）
func SubMoney(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).Float64()
	return v
}
