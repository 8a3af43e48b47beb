package service

import (
	"testing"

	"moneybook/config"

	"github.com/stretchr/testify/assert"
)

func newTestEmailService() *EmailService {
	return NewEmailService(&config.EmailConfig{})
}

func TestGenerateResetEmailBody(t *testing.T) {
	s := newTestEmailService()
	body := s.generateResetEmailBody("张三", "https://example.com/reset?token=abc")
	assert.Contains(t, body, "张三")
	assert.Contains(t, body, "https://example.com/reset?token=abc")
	assert.Contains(t, body, "重置密码")
	assert.Contains(t, body, "30 分钟")
}

func TestSendPasswordResetEmailDisabled(t *testing.T) {
	s := newTestEmailService()
	err := s.SendPasswordResetEmail("a@b.com", "张三", "https://example.com/reset")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "未启用")
}
