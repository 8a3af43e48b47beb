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

// TagHandler 标签处理器
type TagHandler struct{}

// NewTagHandler 创建标签处理器
func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// TagRequest 创建/更新标签请求
type TagRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=30" example:"出差"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#3b82f6"`
}

// Create 创建标签
// @Summary 创建标签
// @Description 同一用户下标签名不区分大小写唯一
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TagRequest true "标签信息"
// @Success 200 {object} Response{data=models.Tag} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 422 {object} Response "标签已存在"
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "标签名称不能为空")
		return
	}

	var count int64
	database.DB.Model(&models.Tag{}).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(req.Name)).
		Count(&count)
	if count > 0 {
		UnprocessableEntity(c, "标签已存在")
		return
	}

	tag := models.Tag{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}
	if err := database.DB.Create(&tag).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建标签失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", tag)
}

// List 获取标签列表
// @Summary 获取标签列表
// @Tags 标签
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Tag} "获取成功"
// @Router /api/v1/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var tags []models.Tag
	if err := database.DB.Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, tags)
}

// Update 更新标签
// @Summary 更新标签
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Param request body TagRequest true "标签信息"
// @Success 200 {object} Response{data=models.Tag} "更新成功"
// @Failure 404 {object} Response "标签不存在"
// @Failure 422 {object} Response "标签已存在"
// @Router /api/v1/tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var tag models.Tag
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
		NotFound(c, "标签不存在")
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "标签名称不能为空")
		return
	}

	var count int64
	database.DB.Model(&models.Tag{}).
		Where("user_id = ? AND LOWER(name) = ? AND id != ?", userID, strings.ToLower(req.Name), tag.ID).
		Count(&count)
	if count > 0 {
		UnprocessableEntity(c, "标签已存在")
		return
	}

	updates := map[string]interface{}{"name": req.Name}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if err := database.DB.Model(&tag).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&tag, tag.ID)
	SuccessWithMessage(c, "更新成功", tag)
}

// Delete 删除标签
// @Summary 删除标签
// @Description 删除标签并解除与交易的关联，交易本身不受影响
// @Tags 标签
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "标签不存在"
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := service.DeleteTag(database.DB, userID, uint(id)); err != nil {
		FailWithServiceError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
