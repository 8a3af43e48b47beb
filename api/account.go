package api

import (
	"strconv"
	"strings"

	"moneybook/database"
	"moneybook/middleware"
	"moneybook/models"
	"moneybook/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler 现金账户处理器
type AccountHandler struct{}

// NewAccountHandler 创建现金账户处理器
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// CreateAccountRequest 创建账户请求
type CreateAccountRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=50" example:"工资卡"`
	InitialBalance float64 `json:"initial_balance" binding:"omitempty,gte=0" example:"1000.00"`
}

// UpdateAccountRequest 更新账户请求
// 余额不在这里修改：派生余额只能通过交易/转账变动，或走手动调整接口留痕。
type UpdateAccountRequest struct {
	Name   string `json:"name" binding:"omitempty,min=1,max=50"`
	Active *bool  `json:"active"`
}

// Create 创建账户
// @Summary 创建现金账户
// @Description 创建一个现金账户，当前余额初始化为期初余额
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "账户名称不能为空")
		return
	}

	initial := service.Round2(req.InitialBalance)
	account := models.Account{
		UserID:         userID,
		Name:           req.Name,
		InitialBalance: initial,
		CurrentBalance: initial,
		Active:         true,
	}
	if err := database.DB.Create(&account).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建账户失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", account)
}

// List 获取账户列表
// @Summary 获取账户列表
// @Description 获取当前用户的全部现金账户
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param active query bool false "仅看启用/停用账户"
// @Success 200 {object} Response{data=[]models.Account} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if activeStr := c.Query("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			query = query.Where("active = ?", active)
		}
	}

	var accounts []models.Account
	if err := query.Order("id ASC").Find(&accounts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, accounts)
}

// Get 获取单个账户
// @Summary 获取账户详情
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=models.Account} "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		NotFound(c, "账户不存在")
		return
	}

	Success(c, account)
}

// Update 更新账户
// @Summary 更新账户
// @Description 更新账户名称或启用状态，余额请走交易/手动调整
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Param request body UpdateAccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "更新成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		NotFound(c, "账户不存在")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			BadRequest(c, "账户名称不能为空")
			return
		}
		updates["name"] = req.Name
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		SuccessWithMessage(c, "无需更新", account)
		return
	}

	if err := database.DB.Model(&account).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&account, account.ID)
	SuccessWithMessage(c, "更新成功", account)
}

// Delete 删除账户
// @Summary 删除账户
// @Description 删除账户及其名下交易和涉及它的转账，转账对端余额会先回退
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := service.DeleteAccount(database.DB, userID, uint(id)); err != nil {
		FailWithServiceError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
