package api

import (
	"strconv"

	"moneybook/database"
	"moneybook/middleware"
	"moneybook/models"
	"moneybook/service"

	"github.com/gin-gonic/gin"
)

// TransferHandler 转账处理器
type TransferHandler struct{}

// NewTransferHandler 创建转账处理器
func NewTransferHandler() *TransferHandler {
	return &TransferHandler{}
}

// TransferRequest 创建/更新转账请求
type TransferRequest struct {
	FromAccountID uint    `json:"from_account_id" binding:"required" example:"1"`
	ToAccountID   uint    `json:"to_account_id" binding:"required" example:"2"`
	Amount        float64 `json:"amount" binding:"required,gt=0" example:"500.00"`
	Date          string  `json:"date" binding:"required" example:"2025-01-15"`
	Description   string  `json:"description" binding:"omitempty,max=100"`
}

// Create 创建转账
// @Summary 账户间转账
// @Description 在两个现金账户间转账，转出方余额必须足够
// @Tags 转账
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferRequest true "转账信息"
// @Success 200 {object} Response{data=models.Transfer} "转账成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户不存在"
// @Failure 422 {object} Response "转出账户余额不足"
// @Router /api/v1/transfers [post]
func (h *TransferHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为 YYYY-MM-DD 或 YYYY-MM-DD HH:mm:ss")
		return
	}

	transfer, err := service.CreateTransfer(database.DB, userID, service.TransferInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
	})
	if err != nil {
		FailWithServiceError(c, err, "转账失败")
		return
	}

	SuccessWithMessage(c, "转账成功", transfer)
}

// List 获取转账列表
// @Summary 获取转账列表
// @Tags 转账
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页条数，默认20，最大100"
// @Param account_id query int false "只看涉及该账户的转账"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/transfers [get]
func (h *TransferHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.Transfer{}).Where("user_id = ?", userID)
	if accountID := c.Query("account_id"); accountID != "" {
		query = query.Where("from_account_id = ? OR to_account_id = ?", accountID, accountID)
	}

	var total int64
	query.Count(&total)

	var transfers []models.Transfer
	if err := query.Order("date DESC, id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&transfers).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, gin.H{
		"list":      transfers,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get 获取转账详情
// @Summary 获取转账详情
// @Tags 转账
// @Produce json
// @Security BearerAuth
// @Param id path int true "转账ID"
// @Success 200 {object} Response{data=models.Transfer} "获取成功"
// @Failure 404 {object} Response "转账不存在"
// @Router /api/v1/transfers/{id} [get]
func (h *TransferHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var transfer models.Transfer
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transfer).Error; err != nil {
		NotFound(c, "转账不存在")
		return
	}

	Success(c, transfer)
}

// Update 更新转账
// @Summary 更新转账
// @Description 先恢复两端余额再按新内容重新转账
// @Tags 转账
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "转账ID"
// @Param request body TransferRequest true "转账信息"
// @Success 200 {object} Response{data=models.Transfer} "更新成功"
// @Failure 404 {object} Response "转账不存在"
// @Failure 422 {object} Response "转出账户余额不足"
// @Router /api/v1/transfers/{id} [put]
func (h *TransferHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为 YYYY-MM-DD 或 YYYY-MM-DD HH:mm:ss")
		return
	}

	transfer, err := service.UpdateTransfer(database.DB, userID, uint(id), service.TransferInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
	})
	if err != nil {
		FailWithServiceError(c, err, "更新转账失败")
		return
	}

	SuccessWithMessage(c, "更新成功", transfer)
}

// Delete 删除转账
// @Summary 删除转账
// @Description 删除转账并恢复两端账户余额
// @Tags 转账
// @Produce json
// @Security BearerAuth
// @Param id path int true "转账ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "转账不存在"
// @Router /api/v1/transfers/{id} [delete]
func (h *TransferHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if _, err := service.DeleteTransfer(database.DB, userID, uint(id)); err != nil {
		FailWithServiceError(c, err, "删除转账失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
