package service

import (
	"testing"
	"time"

	"moneybook/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateAll(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	// 余额归位
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `cards`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// 两笔交易：现金收入、信用卡支出
	accountID := uint(3)
	cardID := uint(7)
	rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "date", "description", "kind", "payment_method", "category_id", "account_id", "card_id", "paid_card_id", "notes", "created_at", "updated_at", "deleted_at"}).
		AddRow(1, 1, 100.0, time.Now(), "工资", models.KindIncome, models.PaymentMethodCash, 5, accountID, nil, nil, "", time.Now(), time.Now(), nil).
		AddRow(2, 1, 40.0, time.Now(), "晚餐", models.KindExpense, models.PaymentMethodCard, 6, nil, cardID, nil, "", time.Now(), time.Now(), nil)
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `cards`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// 一笔转账
	mock.ExpectQuery("SELECT .* FROM `transfers`").
		WillReturnRows(transferRows(4, 1, 3, 9, 200))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := RecalculateAll(db, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Accounts)
	assert.Equal(t, 1, result.Cards)
	assert.Equal(t, 2, result.Transactions)
	assert.Equal(t, 1, result.Transfers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecalculateAllReplaysCardPayments(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `cards`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// 一笔还款交易：账户侧支出 + 信用卡侧销账都要被重放
	accountID := uint(3)
	paidCardID := uint(7)
	rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "date", "description", "kind", "payment_method", "category_id", "account_id", "card_id", "paid_card_id", "notes", "created_at", "updated_at", "deleted_at"}).
		AddRow(1, 1, 300.0, time.Now(), "还款", models.KindExpense, models.PaymentMethodCash, 12, accountID, nil, paidCardID, "", time.Now(), time.Now(), nil)
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `cards`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT .* FROM `transfers`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	result, err := RecalculateAll(db, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Transactions)
	assert.Equal(t, 0, result.Transfers)
	require.NoError(t, mock.ExpectationsWereMet())
}
