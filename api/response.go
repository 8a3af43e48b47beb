package api

import (
	"errors"
	"net/http"

	"moneybook/service"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	List     interface{} `json:"list"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// UnprocessableEntity 422 错误响应（业务规则不满足）
func UnprocessableEntity(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// FailWithServiceError 把服务层类型化错误映射为对应的 HTTP 响应
// 校验错误 400、目标不存在 404、业务规则 422，其余按内部错误处理。
func FailWithServiceError(c *gin.Context, err error, fallback string) {
	var ve *service.ValidationError
	var nf *service.NotFoundError
	var br *service.BusinessRuleError
	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Error())
	case errors.As(err, &nf):
		NotFound(c, nf.Error())
	case errors.As(err, &br):
		UnprocessableEntity(c, br.Error())
	default:
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}
