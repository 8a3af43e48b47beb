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

// CategoryHandler 分类处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=30" example:"餐饮"`
	Kind  string `json:"kind" binding:"required,oneof=income expense" example:"expense"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#ef4444"`
	Sort  int    `json:"sort" binding:"omitempty,gte=0" example:"10"`
}

// UpdateCategoryRequest 更新分类请求
// 分类方向创建后不可改：历史交易的正负号依赖方向。
type UpdateCategoryRequest struct {
	Name  string `json:"name" binding:"omitempty,min=1,max=30"`
	Color string `json:"color" binding:"omitempty,max=20"`
	Sort  *int   `json:"sort" binding:"omitempty,gte=0"`
}

// Create 创建分类
// @Summary 创建分类
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "分类信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "分类名称不能为空")
		return
	}

	// 同方向下名称不重复
	var count int64
	database.DB.Model(&models.Category{}).
		Where("user_id = ? AND kind = ? AND name = ?", userID, req.Kind, req.Name).
		Count(&count)
	if count > 0 {
		BadRequest(c, "同方向下已存在同名分类")
		return
	}

	category := models.Category{
		UserID: userID,
		Name:   req.Name,
		Kind:   req.Kind,
		Color:  req.Color,
		Sort:   req.Sort,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建分类失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", category)
}

// List 获取分类列表
// @Summary 获取分类列表
// @Tags 分类
// @Produce json
// @Security BearerAuth
// @Param kind query string false "按方向筛选 income/expense"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if kind := c.Query("kind"); kind != "" {
		if kind != models.KindIncome && kind != models.KindExpense {
			BadRequest(c, "无效的分类方向")
			return
		}
		query = query.Where("kind = ?", kind)
	}

	var categories []models.Category
	if err := query.Order("sort ASC, id ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, categories)
}

// Update 更新分类
// @Summary 更新分类
// @Description 更新分类名称、颜色、排序，系统分类不可修改
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Param request body UpdateCategoryRequest true "分类信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 404 {object} Response "分类不存在"
// @Failure 422 {object} Response "系统分类不可修改"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var category models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		NotFound(c, "分类不存在")
		return
	}
	if category.System {
		UnprocessableEntity(c, "系统分类不可修改")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			BadRequest(c, "分类名称不能为空")
			return
		}
		var count int64
		database.DB.Model(&models.Category{}).
			Where("user_id = ? AND kind = ? AND name = ? AND id != ?", userID, category.Kind, name, category.ID).
			Count(&count)
		if count > 0 {
			BadRequest(c, "同方向下已存在同名分类")
			return
		}
		updates["name"] = name
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if len(updates) == 0 {
		SuccessWithMessage(c, "无需更新", category)
		return
	}

	if err := database.DB.Model(&category).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&category, category.ID)
	SuccessWithMessage(c, "更新成功", category)
}

// Delete 删除分类
// @Summary 删除分类
// @Description 删除分类及其名下交易，相关余额影响会先回退；系统分类不可删除
// @Tags 分类
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "分类不存在"
// @Failure 422 {object} Response "系统分类不可删除"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := service.DeleteCategory(database.DB, userID, uint(id)); err != nil {
		FailWithServiceError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
