package config

import (
	_ "embed"
)

// DefaultConfigYAML 嵌入的默认配置，外部配置文件可逐项覆盖
//
//go:embed default.yaml
var DefaultConfigYAML []byte

// SafeErrorMessage 生产环境（release 模式）下返回兜底文案，
// 避免把内部错误详情暴露给客户端；开发环境返回真实错误便于调试。
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
