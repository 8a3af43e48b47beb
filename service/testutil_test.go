package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB 基于 sqlmock 构造 gorm 连接，服务层测试共用
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

func accountRows(id, userID uint, balance float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "initial_balance", "current_balance", "active", "created_at", "updated_at", "deleted_at"}).
		AddRow(id, userID, "现金", 0, balance, true, time.Now(), time.Now(), nil)
}

func cardRows(id, userID uint, debt float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "initial_balance", "current_balance", "credit_limit", "statement_cut_day", "due_day", "active", "created_at", "updated_at", "deleted_at"}).
		AddRow(id, userID, "信用卡", 0, debt, 10000, 1, 15, true, time.Now(), time.Now(), nil)
}

func categoryRows(id, userID uint, name, kind string, system bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "kind", "color", "sort", "system", "active", "created_at", "updated_at", "deleted_at"}).
		AddRow(id, userID, name, kind, "#ef4444", 10, system, true, time.Now(), time.Now(), nil)
}
