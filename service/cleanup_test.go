package service

import (
	"testing"
	"time"

	"moneybook/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestDeleteAccountRestoresCardDebt(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	// 账户名下有一笔信用卡还款：删除账户时欠款要加回卡上
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(3, 1, 700))
	mock.ExpectQuery("SELECT .* FROM `transfers`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `transfers`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(transactionRows(9, 1, 300, models.KindExpense, models.PaymentMethodCash, uintPtr(3), nil, uintPtr(7)))
	mock.ExpectExec("UPDATE `cards`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := DeleteAccount(db, 1, 3)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccountRevertsTransferPeer(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	// 该账户曾向账户 4 转出 200：删除时对端要扣回
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(3, 1, 800))
	mock.ExpectQuery("SELECT .* FROM `transfers`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "from_account_id", "to_account_id", "amount", "date", "created_at", "updated_at", "deleted_at"}).
			AddRow(5, 1, 3, 4, 200, time.Now(), time.Now(), time.Now(), nil))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `transfers`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := DeleteAccount(db, 1, 3)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccountNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := DeleteAccount(db, 1, 404)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.NoError(t, mock.ExpectationsWereMet())
}
