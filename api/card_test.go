package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cards`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/cards", NewCardHandler().Create)

	body := `{"name":"招行信用卡","initial_balance":200,"credit_limit":20000,"statement_cut_day":5,"due_day":23}`
	req := httptest.NewRequest("POST", "/cards", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 200.0, data["current_balance"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardHandler_Create_InvalidCutDay(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/cards", NewCardHandler().Create)

	body := `{"name":"招行信用卡","statement_cut_day":40}`
	req := httptest.NewRequest("POST", "/cards", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestCardHandler_Pay_InvalidAmount(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/cards/:id/pay", NewCardHandler().Pay)

	body := `{"account_id":1,"amount":0}`
	req := httptest.NewRequest("POST", "/cards/2/pay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestCardHandler_Pay_InvalidDate(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/cards/:id/pay", NewCardHandler().Pay)

	body := `{"account_id":1,"amount":100,"date":"01/15/2025"}`
	req := httptest.NewRequest("POST", "/cards/2/pay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "日期格式错误")
}
