package api

import (
	"strconv"
	"strings"
	"time"

	"moneybook/database"
	"moneybook/middleware"
	"moneybook/models"
	"moneybook/service"

	"github.com/gin-gonic/gin"
)

// CardHandler 信用卡处理器
type CardHandler struct{}

// NewCardHandler 创建信用卡处理器
func NewCardHandler() *CardHandler {
	return &CardHandler{}
}

// CreateCardRequest 创建信用卡请求
type CreateCardRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=50" example:"招行信用卡"`
	InitialBalance  float64 `json:"initial_balance" binding:"omitempty,gte=0" example:"0"`
	CreditLimit     float64 `json:"credit_limit" binding:"omitempty,gte=0" example:"20000"`
	StatementCutDay int     `json:"statement_cut_day" binding:"omitempty,min=1,max=31" example:"5"`
	DueDay          int     `json:"due_day" binding:"omitempty,min=1,max=31" example:"23"`
}

// UpdateCardRequest 更新信用卡请求
type UpdateCardRequest struct {
	Name            string   `json:"name" binding:"omitempty,min=1,max=50"`
	CreditLimit     *float64 `json:"credit_limit" binding:"omitempty,gte=0"`
	StatementCutDay *int     `json:"statement_cut_day" binding:"omitempty,min=1,max=31"`
	DueDay          *int     `json:"due_day" binding:"omitempty,min=1,max=31"`
	Active          *bool    `json:"active"`
}

// PayCardRequest 信用卡还款请求
type PayCardRequest struct {
	AccountID uint    `json:"account_id" binding:"required" example:"1"`
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"500.00"`
	Date      string  `json:"date" binding:"omitempty" example:"2025-01-15 10:00:00"`
	Notes     string  `json:"notes" binding:"omitempty,max=200"`
}

// Create 创建信用卡
// @Summary 创建信用卡
// @Description 创建一张信用卡，当前欠款初始化为期初欠款
// @Tags 信用卡
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCardRequest true "信用卡信息"
// @Success 200 {object} Response{data=models.Card} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "卡片名称不能为空")
		return
	}

	initial := service.Round2(req.InitialBalance)
	card := models.Card{
		UserID:          userID,
		Name:            req.Name,
		InitialBalance:  initial,
		CurrentBalance:  initial,
		CreditLimit:     service.Round2(req.CreditLimit),
		StatementCutDay: req.StatementCutDay,
		DueDay:          req.DueDay,
		Active:          true,
	}
	if err := database.DB.Create(&card).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建信用卡失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", card)
}

// List 获取信用卡列表
// @Summary 获取信用卡列表
// @Tags 信用卡
// @Produce json
// @Security BearerAuth
// @Param active query bool false "仅看启用/停用卡片"
// @Success 200 {object} Response{data=[]models.Card} "获取成功"
// @Router /api/v1/cards [get]
func (h *CardHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if activeStr := c.Query("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			query = query.Where("active = ?", active)
		}
	}

	var cards []models.Card
	if err := query.Order("id ASC").Find(&cards).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, cards)
}

// Get 获取信用卡详情
// @Summary 获取信用卡详情
// @Tags 信用卡
// @Produce json
// @Security BearerAuth
// @Param id path int true "信用卡ID"
// @Success 200 {object} Response{data=models.Card} "获取成功"
// @Failure 404 {object} Response "信用卡不存在"
// @Router /api/v1/cards/{id} [get]
func (h *CardHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var card models.Card
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		NotFound(c, "信用卡不存在")
		return
	}

	Success(c, card)
}

// Update 更新信用卡
// @Summary 更新信用卡
// @Description 更新卡片名称、额度、账单日等，欠款请走交易/还款/手动调整
// @Tags 信用卡
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "信用卡ID"
// @Param request body UpdateCardRequest true "信用卡信息"
// @Success 200 {object} Response{data=models.Card} "更新成功"
// @Failure 404 {object} Response "信用卡不存在"
// @Router /api/v1/cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var card models.Card
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		NotFound(c, "信用卡不存在")
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.CreditLimit != nil {
		updates["credit_limit"] = service.Round2(*req.CreditLimit)
	}
	if req.StatementCutDay != nil {
		updates["statement_cut_day"] = *req.StatementCutDay
	}
	if req.DueDay != nil {
		updates["due_day"] = *req.DueDay
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		SuccessWithMessage(c, "无需更新", card)
		return
	}

	if err := database.DB.Model(&card).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&card, card.ID)
	SuccessWithMessage(c, "更新成功", card)
}

// Delete 删除信用卡
// @Summary 删除信用卡
// @Description 删除卡片及其名下交易，还款流水保留但解除关联
// @Tags 信用卡
// @Produce json
// @Security BearerAuth
// @Param id path int true "信用卡ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "信用卡不存在"
// @Router /api/v1/cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := service.DeleteCard(database.DB, userID, uint(id)); err != nil {
		FailWithServiceError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// Pay 信用卡还款
// @Summary 信用卡还款
// @Description 从现金账户向信用卡还款，同时扣减账户余额与卡片欠款，并生成一笔还款流水
// @Tags 信用卡
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "信用卡ID"
// @Param request body PayCardRequest true "还款信息"
// @Success 200 {object} Response{data=models.Transaction} "还款成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户或信用卡不存在"
// @Failure 422 {object} Response "余额不足或超出欠款"
// @Router /api/v1/cards/{id}/pay [post]
func (h *CardHandler) Pay(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var req PayCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02 15:04:05", req.Date)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", req.Date)
			if err != nil {
				BadRequest(c, "日期格式错误，应为 YYYY-MM-DD 或 YYYY-MM-DD HH:mm:ss")
				return
			}
		}
		date = parsed
	}

	payment, err := service.PayCard(database.DB, userID, service.PayCardInput{
		CardID:    uint(id),
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Date:      date,
		Notes:     req.Notes,
	})
	if err != nil {
		FailWithServiceError(c, err, "还款失败")
		return
	}

	SuccessWithMessage(c, "还款成功", payment)
}
