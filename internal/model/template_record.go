package model

import "time"

// TemplateRecord 模板在数据库中的存储行
// 模板本体整段存 JSON，列表用的摘要字段单独落列方便过滤排序
type TemplateRecord struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"size:255;not null"`
	Description  string    `gorm:"size:1000"`
	Entity       string    `gorm:"size:100;index"`
	Category     string    `gorm:"size:100;index"`
	SectionCount int       `gorm:"default:0"`
	Document     string    `gorm:"type:text"` // 模板 JSON 序列化
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (TemplateRecord) TableName() string {
	return "report_templates"
}
