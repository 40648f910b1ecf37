package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/internal/model"
)

// dbRegistry 数据库存储实现
// 摘要字段冗余落列，List 不需要反序列化模板本体
type dbRegistry struct {
	db *gorm.DB
}

// NewDBRegistry 创建数据库存储的注册中心
func NewDBRegistry(db *gorm.DB) Registry {
	return &dbRegistry{db: db}
}

// Save 保存模板
func (r *dbRegistry) Save(tpl *model.ReportTemplate) (string, error) {
	now := time.Now()
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
		tpl.CreatedAt = now
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	data, err := model.MarshalTemplate(tpl)
	if err != nil {
		return "", err
	}

	record := model.TemplateRecord{
		ID:           tpl.ID,
		Name:         tpl.Name,
		Description:  tpl.Description,
		Entity:       tpl.Entity,
		Category:     tpl.Category,
		SectionCount: len(tpl.Sections),
		Document:     string(data),
		CreatedAt:    tpl.CreatedAt,
		UpdatedAt:    tpl.UpdatedAt,
	}

	if err := r.db.Save(&record).Error; err != nil {
		return "", fmt.Errorf("failed to save template: %w", err)
	}

	klog.V(6).Infof("模板已保存: id=%s name=%s", tpl.ID, tpl.Name)
	return tpl.ID, nil
}

// Load 按 ID 加载模板
// 记录不存在返回 ErrNotFound；Document 列损坏是硬错误
func (r *dbRegistry) Load(id string) (*model.ReportTemplate, error) {
	var record model.TemplateRecord
	result := r.db.First(&record, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load template: %w", result.Error)
	}

	tpl, err := model.UnmarshalTemplate([]byte(record.Document))
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// Delete 删除模板
func (r *dbRegistry) Delete(id string) (bool, error) {
	result := r.db.Delete(&model.TemplateRecord{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete template: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// List 列出模板摘要，过滤在 SQL 层完成，按 UpdatedAt 倒序
func (r *dbRegistry) List(filter ListFilter) ([]Summary, error) {
	query := r.db.Model(&model.TemplateRecord{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var records []model.TemplateRecord
	if err := query.Order("updated_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	summaries := make([]Summary, len(records))
	for i, rec := range records {
		summaries[i] = Summary{
			ID:           rec.ID,
			Name:         rec.Name,
			Description:  rec.Description,
			Entity:       rec.Entity,
			Category:     rec.Category,
			SectionCount: rec.SectionCount,
			CreatedAt:    rec.CreatedAt,
			UpdatedAt:    rec.UpdatedAt,
		}
	}
	return summaries, nil
}

// Duplicate 复制模板：清掉身份和时间戳后重新保存
func (r *dbRegistry) Duplicate(id, newName string) (string, error) {
	tpl, err := r.Load(id)
	if err != nil {
		return "", err
	}

	tpl.ID = ""
	tpl.CreatedAt = time.Time{}
	tpl.UpdatedAt = time.Time{}
	if newName != "" {
		tpl.Name = newName
	} else {
		tpl.Name = tpl.Name + " (Copy)"
	}

	return r.Save(tpl)
}
