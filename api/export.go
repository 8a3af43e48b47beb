package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"moneybook/database"
	"moneybook/middleware"
	"moneybook/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// parseExportRange 解析导出时间范围
func parseExportRange(c *gin.Context) (time.Time, time.Time, string, string, bool) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")

	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始日期和结束日期")
		return time.Time{}, time.Time{}, "", "", false
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, "", "", false
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, "", "", false
	}
	end = end.Add(24*time.Hour - time.Second)

	return start, end, startStr, endStr, true
}

// queryExportTransactions 按范围查询交易，带分类预加载
func queryExportTransactions(userID uint, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := database.DB.Preload("Category").Preload("Tags").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&transactions).Error
	return transactions, err
}

// transactionSource 资金端展示名
func transactionSource(t *models.Transaction) string {
	if t.AccountID != nil {
		return fmt.Sprintf("账户#%d", *t.AccountID)
	}
	if t.CardID != nil {
		return fmt.Sprintf("信用卡#%d", *t.CardID)
	}
	return ""
}

// kindLabel 方向中文名
func kindLabel(kind string) string {
	if kind == models.KindIncome {
		return "收入"
	}
	return "支出"
}

// ExportCSV 导出交易记录为 CSV
// @Summary 导出交易记录
// @Description 根据时间范围导出交易记录为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, startStr, endStr, ok := parseExportRange(c)
	if !ok {
		return
	}

	transactions, err := queryExportTransactions(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "方向", "金额", "分类", "资金端", "描述", "备注", "交易时间", "创建时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	for _, t := range transactions {
		row := []string{
			fmt.Sprintf("%d", t.ID),
			kindLabel(t.Kind),
			fmt.Sprintf("%.2f", t.Amount),
			t.Category.Name,
			transactionSource(&t),
			t.Description,
			t.Notes,
			t.Date.Format("2006-01-02 15:04:05"),
			t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", startStr, endStr)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出交易记录为 JSON
// @Summary 导出交易记录为 JSON
// @Description 根据时间范围导出交易记录为 JSON 格式，附汇总信息
// @Tags 导出
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]models.Transaction} "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, startStr, endStr, ok := parseExportRange(c)
	if !ok {
		return
	}

	transactions, err := queryExportTransactions(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	var totalIncome, totalExpense float64
	for _, t := range transactions {
		if t.Kind == models.KindIncome {
			totalIncome += t.Amount
		} else {
			totalExpense += t.Amount
		}
	}

	Success(c, gin.H{
		"start_date":    startStr,
		"end_date":      endStr,
		"total_count":   len(transactions),
		"total_income":  totalIncome,
		"total_expense": totalExpense,
		"transactions":  transactions,
	})
}

// ExportExcel 导出交易记录为 Excel
// @Summary 导出交易记录为 Excel
// @Description 根据时间范围导出交易记录为 xlsx 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, startStr, endStr, ok := parseExportRange(c)
	if !ok {
		return
	}

	transactions, err := queryExportTransactions(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "交易记录"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "方向", "金额", "分类", "资金端", "描述", "备注", "交易时间", "创建时间"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, t := range transactions {
		values := []interface{}{
			t.ID,
			kindLabel(t.Kind),
			t.Amount,
			t.Category.Name,
			transactionSource(&t),
			t.Description,
			t.Notes,
			t.Date.Format("2006-01-02 15:04:05"),
			t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", startStr, endStr)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
