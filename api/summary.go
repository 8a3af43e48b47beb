package api

import (
	"time"

	"moneybook/database"
	"moneybook/middleware"
	"moneybook/models"
	"moneybook/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 统计处理器
type SummaryHandler struct{}

// NewSummaryHandler 创建统计处理器
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// NetWorthResponse 净资产返回
type NetWorthResponse struct {
	TotalAssets float64 `json:"total_assets" example:"12000.00"` // 账户余额合计
	TotalDebt   float64 `json:"total_debt" example:"3500.00"`    // 信用卡欠款合计
	NetWorth    float64 `json:"net_worth" example:"8500.00"`     // 净资产 = 资产 - 欠款
}

// IncomeExpenseSummaryResponse 收支汇总返回
type IncomeExpenseSummaryResponse struct {
	TotalIncome  float64 `json:"total_income" example:"5000.00"` // 收入总和
	TotalExpense float64 `json:"total_expense" example:"123.45"` // 支出总和
	Balance      float64 `json:"balance" example:"4876.55"`      // 收支差额
}

// CategoryStatItem 分类统计项
type CategoryStatItem struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Color        string  `json:"color"`
	Total        float64 `json:"total"`
	Count        int64   `json:"count"`
	Percentage   float64 `json:"percentage"` // 占该方向总额百分比
}

// NetWorth 获取净资产
// @Summary 获取净资产
// @Description 汇总全部启用账户余额与启用信用卡欠款，净资产 = 资产 - 欠款
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=NetWorthResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/net-worth [get]
func (h *SummaryHandler) NetWorth(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var totalAssets float64
	var totalDebt float64
	database.DB.Model(&models.Account{}).
		Where("user_id = ? AND active = ?", userID, true).
		Select("COALESCE(SUM(current_balance), 0)").Scan(&totalAssets)
	database.DB.Model(&models.Card{}).
		Where("user_id = ? AND active = ?", userID, true).
		Select("COALESCE(SUM(current_balance), 0)").Scan(&totalDebt)

	Success(c, NetWorthResponse{
		TotalAssets: service.Round2(totalAssets),
		TotalDebt:   service.Round2(totalDebt),
		NetWorth:    service.SubMoney(totalAssets, totalDebt),
	})
}

// IncomeExpense 获取收支汇总
// @Summary 获取收支汇总
// @Description 按时间范围统计当前用户的收入总和与支出总和。不传 start_date/end_date 则统计全部时间。还款流水不计入支出。
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (YYYY-MM-DD)"
// @Param end_date query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {object} Response{data=IncomeExpenseSummaryResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/summary [get]
func (h *SummaryHandler) IncomeExpense(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	incomeQ := database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND kind = ?", userID, models.KindIncome)
	expenseQ := database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND kind = ? AND paid_card_id IS NULL", userID, models.KindExpense)

	if startStr := c.Query("start_date"); startStr != "" {
		if t, err := time.ParseInLocation("2006-01-02", startStr, time.Local); err == nil {
			incomeQ = incomeQ.Where("date >= ?", t)
			expenseQ = expenseQ.Where("date >= ?", t)
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if t, err := time.ParseInLocation("2006-01-02", endStr, time.Local); err == nil {
			t = t.Add(24*time.Hour - time.Second)
			incomeQ = incomeQ.Where("date <= ?", t)
			expenseQ = expenseQ.Where("date <= ?", t)
		}
	}

	var totalIncome float64
	var totalExpense float64
	incomeQ.Select("COALESCE(SUM(amount), 0)").Scan(&totalIncome)
	expenseQ.Select("COALESCE(SUM(amount), 0)").Scan(&totalExpense)

	Success(c, IncomeExpenseSummaryResponse{
		TotalIncome:  service.Round2(totalIncome),
		TotalExpense: service.Round2(totalExpense),
		Balance:      service.SubMoney(totalIncome, totalExpense),
	})
}

// ByCategory 获取分类统计
// @Summary 获取分类统计
// @Description 按分类统计某方向的交易总额和笔数，附占比。默认统计支出。
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param kind query string false "方向 income/expense，默认expense"
// @Param start_date query string false "开始日期 (YYYY-MM-DD)"
// @Param end_date query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {object} Response{data=[]CategoryStatItem} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/by-category [get]
func (h *SummaryHandler) ByCategory(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	kind := c.DefaultQuery("kind", models.KindExpense)
	if kind != models.KindIncome && kind != models.KindExpense {
		BadRequest(c, "无效的分类方向")
		return
	}

	query := database.DB.Model(&models.Transaction{}).
		Select("transactions.category_id, categories.name AS category_name, categories.color, COALESCE(SUM(transactions.amount), 0) AS total, COUNT(transactions.id) AS count").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.kind = ? AND transactions.deleted_at IS NULL", userID, kind)

	if startStr := c.Query("start_date"); startStr != "" {
		if t, err := time.ParseInLocation("2006-01-02", startStr, time.Local); err == nil {
			query = query.Where("transactions.date >= ?", t)
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if t, err := time.ParseInLocation("2006-01-02", endStr, time.Local); err == nil {
			t = t.Add(24*time.Hour - time.Second)
			query = query.Where("transactions.date <= ?", t)
		}
	}

	var items []CategoryStatItem
	if err := query.Group("transactions.category_id, categories.name, categories.color").
		Order("total DESC").Scan(&items).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	var grandTotal float64
	for _, item := range items {
		grandTotal += item.Total
	}
	if grandTotal > 0 {
		for i := range items {
			items[i].Percentage = service.Round2(items[i].Total / grandTotal * 100)
		}
	}

	Success(c, items)
}
