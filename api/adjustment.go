package api

import (
	"strconv"

	"moneybook/database"
	"moneybook/middleware"
	"moneybook/models"
	"moneybook/service"

	"github.com/gin-gonic/gin"
)

// AdjustmentHandler 余额调整处理器
type AdjustmentHandler struct{}

// NewAdjustmentHandler 创建余额调整处理器
func NewAdjustmentHandler() *AdjustmentHandler {
	return &AdjustmentHandler{}
}

// AdjustBalanceRequest 手动调整余额请求
// account_id 和 card_id 二选一。账户余额允许调成负数（透支），
// 信用卡欠款不能为负，该规则在服务层校验。
type AdjustBalanceRequest struct {
	AccountID  *uint   `json:"account_id"`
	CardID     *uint   `json:"card_id"`
	NewBalance float64 `json:"new_balance" example:"1234.56"`
	Reason     string  `json:"reason" binding:"required,min=1,max=200" example:"对账修正"`
}

// Create 手动调整余额
// @Summary 手动调整余额
// @Description 将账户余额或信用卡欠款直接改为指定值并记录调整原因，调整不参与重算
// @Tags 余额调整
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdjustBalanceRequest true "调整信息"
// @Success 200 {object} Response{data=models.BalanceAdjustment} "调整成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户或信用卡不存在"
// @Router /api/v1/adjustments [post]
func (h *AdjustmentHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if (req.AccountID == nil) == (req.CardID == nil) {
		BadRequest(c, "account_id 和 card_id 必须二选一")
		return
	}

	var target service.Target
	if req.AccountID != nil {
		target = service.AccountTarget(*req.AccountID)
	} else {
		target = service.CardTarget(*req.CardID)
	}

	adjustment, err := service.CreateManualAdjustment(database.DB, userID, target, req.NewBalance, req.Reason)
	if err != nil {
		FailWithServiceError(c, err, "调整失败")
		return
	}

	SuccessWithMessage(c, "调整成功", adjustment)
}

// List 获取调整记录
// @Summary 获取余额调整记录
// @Tags 余额调整
// @Produce json
// @Security BearerAuth
// @Param account_id query int false "账户ID"
// @Param card_id query int false "信用卡ID"
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页条数，默认20"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/adjustments [get]
func (h *AdjustmentHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.BalanceAdjustment{}).Where("user_id = ?", userID)
	if accountID := c.Query("account_id"); accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}
	if cardID := c.Query("card_id"); cardID != "" {
		query = query.Where("card_id = ?", cardID)
	}

	var total int64
	query.Count(&total)

	var adjustments []models.BalanceAdjustment
	if err := query.Order("id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&adjustments).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, gin.H{
		"list":      adjustments,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Recalculate 全量重算余额
// @Summary 全量重算余额
// @Description 把所有账户和信用卡重置为期初值，按时间顺序重放全部交易与转账
// @Tags 余额调整
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.RecalculateResult} "重算完成"
// @Router /api/v1/recalculate [post]
func (h *AdjustmentHandler) Recalculate(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result, err := service.RecalculateAll(database.DB, userID)
	if err != nil {
		FailWithServiceError(c, err, "重算失败")
		return
	}

	SuccessWithMessage(c, "重算完成", result)
}
