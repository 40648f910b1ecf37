package registry

import (
	"errors"
	"time"

	"github.com/openreportkit/backend/internal/model"
)

// ErrNotFound 模板不存在
var ErrNotFound = errors.New("template not found")

// Summary 模板摘要，列表接口返回的裁剪视图
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Entity       string    `json:"entity,omitempty"`
	Category     string    `json:"category,omitempty"`
	SectionCount int       `json:"section_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListFilter 列表过滤条件
type ListFilter struct {
	Category string // 精确匹配分类
	Entity   string // 精确匹配实体
	Query    string // 名称/描述子串匹配
}

// Registry 模板注册中心
// Save 会在 ID 缺失时生成新 ID 并补时间戳；Load 对不存在的 ID 返回
// ErrNotFound；存储损坏的模板在 List 时记日志并跳过，不中断整个列表
type Registry interface {
	Save(tpl *model.ReportTemplate) (string, error)
	Load(id string) (*model.ReportTemplate, error)
	Delete(id string) (bool, error)
	List(filter ListFilter) ([]Summary, error)
	Duplicate(id, newName string) (string, error)
}

// toSummary 模板转摘要
func toSummary(t *model.ReportTemplate) Summary {
	return Summary{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Entity:       t.Entity,
		Category:     t.Category,
		SectionCount: len(t.Sections),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// matchFilter 摘要是否满足过滤条件
func matchFilter(s Summary, filter ListFilter) bool {
	if filter.Category != "" && s.Category != filter.Category {
		return false
	}
	if filter.Entity != "" && s.Entity != filter.Entity {
		return false
	}
	if filter.Query != "" && !containsFold(s.Name, filter.Query) && !containsFold(s.Description, filter.Query) {
		return false
	}
	return true
}
