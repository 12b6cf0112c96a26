// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名创建或更新表结构，table 为空时使用模型默认表名
func AutoMigrate(db *gorm.DB, key string, table string) error {
	if table != "" {
		db = db.Table(table)
	}
	switch key {
	case "Note":
		return db.AutoMigrate(&Note{})
	}
	return nil
}
