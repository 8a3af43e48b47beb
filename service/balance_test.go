package service

import (
	"testing"

	"moneybook/models"

	"github.com/stretchr/testify/assert"
)

func TestTransactionDelta(t *testing.T) {
	// 账户：收入为正、支出为负
	assert.Equal(t, 100.0, TransactionDelta(models.KindIncome, models.PaymentMethodCash, 100))
	assert.Equal(t, -50.0, TransactionDelta(models.KindExpense, models.PaymentMethodCash, 50))

	// 信用卡：支出欠款增加、收入/还款欠款减少
	assert.Equal(t, 88.5, TransactionDelta(models.KindExpense, models.PaymentMethodCard, 88.5))
	assert.Equal(t, -200.0, TransactionDelta(models.KindIncome, models.PaymentMethodCard, 200))

	// 撤销 = 取反后再次应用
	delta := TransactionDelta(models.KindExpense, models.PaymentMethodCash, 75)
	assert.Equal(t, 0.0, AddMoney(delta, -delta))
}

func TestTransactionDeltaRounding(t *testing.T) {
	// 金额统一归一到分
	assert.Equal(t, 10.01, TransactionDelta(models.KindIncome, models.PaymentMethodCash, 10.005))
	assert.Equal(t, -0.1, TransactionDelta(models.KindExpense, models.PaymentMethodCash, 0.1))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 925.0, Round2(925.0000000001))
	assert.Equal(t, -50.0, Round2(-50))
	assert.Equal(t, 1.24, Round2(1.235))
}

func TestAddSubMoney(t *testing.T) {
	// float64 直接相加会产生 0.30000000000000004 之类的毛刺
	assert.Equal(t, 0.3, AddMoney(0.1, 0.2))
	assert.Equal(t, 925.0, SubMoney(1000, 75))
	assert.Equal(t, 1000.0, AddMoney(925, 75))
	assert.Equal(t, -25.5, SubMoney(50, 75.5))
}

func TestTransactionTarget(t *testing.T) {
	accountID := uint(3)
	cardID := uint(7)

	cash := models.Transaction{PaymentMethod: models.PaymentMethodCash, AccountID: &accountID}
	assert.Equal(t, AccountTarget(3), TransactionTarget(&cash))

	card := models.Transaction{PaymentMethod: models.PaymentMethodCard, CardID: &cardID}
	assert.Equal(t, CardTarget(7), TransactionTarget(&card))
}

// 规格场景：初始 1000，支出 50 → 950，改成 75 → 925，删除 → 1000
func TestBalanceScenarioRoundTrip(t *testing.T) {
	balance := 1000.0

	create := TransactionDelta(models.KindExpense, models.PaymentMethodCash, 50)
	balance = AddMoney(balance, create)
	assert.Equal(t, 950.0, balance)

	// 编辑：撤销旧影响，应用新影响
	balance = AddMoney(balance, -create)
	edited := TransactionDelta(models.KindExpense, models.PaymentMethodCash, 75)
	balance = AddMoney(balance, edited)
	assert.Equal(t, 925.0, balance)

	// 删除：再次撤销
	balance = AddMoney(balance, -edited)
	assert.Equal(t, 1000.0, balance)
}
