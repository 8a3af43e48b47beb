package api

import (
	"strconv"
	"time"

	"moneybook/database"
	"moneybook/middleware"
	"moneybook/models"
	"moneybook/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 交易处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// TransactionRequest 创建/更新交易请求
type TransactionRequest struct {
	Amount        float64 `json:"amount" binding:"gte=0" example:"38.50"`
	Date          string  `json:"date" binding:"required" example:"2025-01-15 12:30:00"`
	Description   string  `json:"description" binding:"omitempty,max=100" example:"午餐"`
	Kind          string  `json:"kind" binding:"required,oneof=income expense" example:"expense"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=cash card" example:"cash"`
	CategoryID    uint    `json:"category_id" binding:"required" example:"1"`
	AccountID     *uint   `json:"account_id"`
	CardID        *uint   `json:"card_id"`
	Notes         string  `json:"notes" binding:"omitempty,max=200"`
	TagIDs        []uint  `json:"tag_ids"`
}

// parseTransactionDate 支持两种日期格式
func parseTransactionDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// toInput 转为服务层输入
func (req *TransactionRequest) toInput(date time.Time) service.TransactionInput {
	return service.TransactionInput{
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
		Kind:          req.Kind,
		PaymentMethod: req.PaymentMethod,
		CategoryID:    req.CategoryID,
		AccountID:     req.AccountID,
		CardID:        req.CardID,
		Notes:         req.Notes,
		TagIDs:        req.TagIDs,
	}
}

// Create 创建交易
// @Summary 创建交易
// @Description 记一笔收入或支出，资金端余额同步变动
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户/信用卡/分类不存在"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为 YYYY-MM-DD 或 YYYY-MM-DD HH:mm:ss")
		return
	}

	transaction, err := service.CreateTransaction(database.DB, userID, req.toInput(date))
	if err != nil {
		FailWithServiceError(c, err, "创建交易失败")
		return
	}

	SuccessWithMessage(c, "创建成功", transaction)
}

// List 获取交易列表
// @Summary 获取交易列表
// @Description 分页获取当前用户交易，支持按时间、分类、方向、资金端和标签筛选
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页条数，默认20，最大100"
// @Param start_date query string false "开始日期 YYYY-MM-DD"
// @Param end_date query string false "结束日期 YYYY-MM-DD"
// @Param kind query string false "方向 income/expense"
// @Param category_id query int false "分类ID"
// @Param account_id query int false "账户ID"
// @Param card_id query int false "信用卡ID"
// @Param tag_id query int false "标签ID"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.Transaction{}).Where("transactions.user_id = ?", userID)

	if startDate := c.Query("start_date"); startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			query = query.Where("transactions.date >= ?", t)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			query = query.Where("transactions.date < ?", t.AddDate(0, 0, 1))
		}
	}
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("transactions.kind = ?", kind)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("transactions.category_id = ?", categoryID)
	}
	if accountID := c.Query("account_id"); accountID != "" {
		query = query.Where("transactions.account_id = ?", accountID)
	}
	if cardID := c.Query("card_id"); cardID != "" {
		query = query.Where("transactions.card_id = ?", cardID)
	}
	if tagID := c.Query("tag_id"); tagID != "" {
		query = query.Joins("JOIN transaction_tags ON transaction_tags.transaction_id = transactions.id").
			Where("transaction_tags.tag_id = ?", tagID)
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	if err := query.Preload("Category").Preload("Tags").
		Order("transactions.date DESC, transactions.id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, gin.H{
		"list":      transactions,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get 获取交易详情
// @Summary 获取交易详情
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var transaction models.Transaction
	if err := database.DB.Preload("Category").Preload("Tags").
		Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "交易不存在")
		return
	}

	Success(c, transaction)
}

// Update 更新交易
// @Summary 更新交易
// @Description 修改交易内容，先回退旧的余额影响再套用新影响；还款流水不可修改
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 404 {object} Response "交易不存在"
// @Failure 422 {object} Response "还款流水不可修改"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为 YYYY-MM-DD 或 YYYY-MM-DD HH:mm:ss")
		return
	}

	transaction, err := service.UpdateTransaction(database.DB, userID, uint(id), req.toInput(date))
	if err != nil {
		FailWithServiceError(c, err, "更新交易失败")
		return
	}

	SuccessWithMessage(c, "更新成功", transaction)
}

// Delete 删除交易
// @Summary 删除交易
// @Description 删除交易并回退余额影响，还款流水同时恢复卡片欠款
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if _, err := service.DeleteTransaction(database.DB, userID, uint(id)); err != nil {
		FailWithServiceError(c, err, "删除交易失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
