package service

import "fmt"

// ValidationError 参数校验错误（字段级）
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError 创建校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError 目标不存在或不属于当前用户
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + "不存在"
}

// NewNotFoundError 创建不存在错误
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// BusinessRuleError 业务规则错误（余额不足、超额还款、同账户转账等）
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NewBusinessRuleError 创建业务规则错误
func NewBusinessRuleError(message string) *BusinessRuleError {
	return &BusinessRuleError{Message: message}
}
