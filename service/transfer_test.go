package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transferRows(id, userID, from, to uint, amount float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "from_account_id", "to_account_id", "amount", "date", "description", "created_at", "updated_at", "deleted_at"}).
		AddRow(id, userID, from, to, amount, time.Now(), "转账", time.Now(), time.Now(), nil)
}

func TestCreateTransfer(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(1, 1, 500))
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(2, 1, 100))
	// 扣转出、加转入、落转账记录
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `transfers`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	created, err := CreateTransfer(db, 1, TransferInput{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        200,
		Date:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, created.Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransferInsufficientFunds(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	// 余额 100 转 200：拒绝且两边都不产生任何写入
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(1, 1, 100))
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(2, 1, 0))
	mock.ExpectRollback()

	_, err := CreateTransfer(db, 1, TransferInput{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        200,
		Date:          time.Now(),
	})
	var br *BusinessRuleError
	require.ErrorAs(t, err, &br)
	assert.Contains(t, br.Message, "余额不足")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransferSameAccount(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := CreateTransfer(db, 1, TransferInput{
		FromAccountID: 1,
		ToAccountID:   1,
		Amount:        10,
		Date:          time.Now(),
	})
	var br *BusinessRuleError
	require.ErrorAs(t, err, &br)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransferAmountValidation(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := CreateTransfer(db, 1, TransferInput{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        0,
		Date:          time.Now(),
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTransfer(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	// 删除转账：转出方加回、转入方扣回
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `transfers`").
		WillReturnRows(transferRows(4, 1, 1, 2, 200))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `transfers`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	snapshot, err := DeleteTransfer(db, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 200.0, snapshot.Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTransferInsufficientAfterRestore(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	// 原转账 100（1→2），改成 1000：恢复后转出账户只有 600，应拒绝并整体回滚
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `transfers`").
		WillReturnRows(transferRows(4, 1, 1, 2, 100))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(1, 1, 600))
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(2, 1, 300))
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows(1, 1, 600))
	mock.ExpectRollback()

	_, err := UpdateTransfer(db, 1, 4, TransferInput{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        1000,
		Date:          time.Now(),
	})
	var br *BusinessRuleError
	require.ErrorAs(t, err, &br)
	require.NoError(t, mock.ExpectationsWereMet())
}
