// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Note NoteServiceConfig // Note related config // 笔记相关配置
}

// NoteServiceConfig note service configuration
// NoteServiceConfig 笔记服务配置
type NoteServiceConfig struct {
	DateLocale string // Locale of the creation date month name (en / zh / ru) // 创建日期月份名称使用的区域
}
