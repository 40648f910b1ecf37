package service

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/registry"
)

var (
	ErrTemplateNotFound = errors.New("report template not found")
	ErrUnknownEntity    = errors.New("unknown entity")
)

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	Description     string          `json:"description"`
	Entity          string          `json:"entity"`
	Category        string          `json:"category"`
	Sections        []model.Section `json:"sections"`
	Theme           *model.Theme    `json:"theme"`
	HeaderText      string          `json:"header_text"`
	FooterText      string          `json:"footer_text"`
	ShowPageNumbers bool            `json:"show_page_numbers"`
}

// UpdateTemplateRequest 更新模板请求
type UpdateTemplateRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	Description     string          `json:"description"`
	Entity          string          `json:"entity"`
	Category        string          `json:"category"`
	Sections        []model.Section `json:"sections"`
	Theme           *model.Theme    `json:"theme"`
	HeaderText      string          `json:"header_text"`
	FooterText      string          `json:"footer_text"`
	ShowPageNumbers bool            `json:"show_page_numbers"`
}

// AddSectionRequest 追加节请求
// Order 为 0 时追加到末尾，否则按 Order 插入
type AddSectionRequest struct {
	Section model.Section `json:"section" binding:"required"`
}

// TemplateService 模板管理服务接口
type TemplateService interface {
	List(ctx context.Context, filter registry.ListFilter) ([]registry.Summary, error)
	Get(ctx context.Context, id string) (*model.ReportTemplate, error)
	Create(ctx context.Context, req CreateTemplateRequest) (*model.ReportTemplate, error)
	Update(ctx context.Context, id string, req UpdateTemplateRequest) (*model.ReportTemplate, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id, newName string) (*model.ReportTemplate, error)
	AddSection(ctx context.Context, id string, req AddSectionRequest) (*model.ReportTemplate, error)
	Entities(ctx context.Context) []model.EntityDef
}

// templateService 实现
// 注册中心由外部注入，测试时可以换成临时目录或内存库
type templateService struct {
	reg registry.Registry
}

// NewTemplateService 创建服务实例
func NewTemplateService(reg registry.Registry) TemplateService {
	return &templateService{reg: reg}
}

// List 模板摘要列表
func (s *templateService) List(ctx context.Context, filter registry.ListFilter) ([]registry.Summary, error) {
	summaries, err := s.reg.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return summaries, nil
}

// Get 获取模板详情
func (s *templateService) Get(ctx context.Context, id string) (*model.ReportTemplate, error) {
	tpl, err := s.reg.Load(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return tpl, nil
}

// Create 创建模板
func (s *templateService) Create(ctx context.Context, req CreateTemplateRequest) (*model.ReportTemplate, error) {
	if req.Entity != "" && model.FindEntityDef(req.Entity) == nil {
		return nil, ErrUnknownEntity
	}

	tpl := &model.ReportTemplate{
		Name:            req.Name,
		Description:     req.Description,
		Entity:          req.Entity,
		Category:        req.Category,
		Sections:        req.Sections,
		Theme:           model.DefaultTheme(),
		HeaderText:      req.HeaderText,
		FooterText:      req.FooterText,
		ShowPageNumbers: req.ShowPageNumbers,
	}
	if req.Theme != nil {
		tpl.Theme = *req.Theme
	}

	if err := validateSections(tpl.Sections); err != nil {
		return nil, err
	}

	if _, err := s.reg.Save(tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	klog.V(6).Infof("模板已创建: id=%s name=%s", tpl.ID, tpl.Name)
	return tpl, nil
}

// Update 更新模板
func (s *templateService) Update(ctx context.Context, id string, req UpdateTemplateRequest) (*model.ReportTemplate, error) {
	tpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Entity != "" && model.FindEntityDef(req.Entity) == nil {
		return nil, ErrUnknownEntity
	}
	if err := validateSections(req.Sections); err != nil {
		return nil, err
	}

	tpl.Name = req.Name
	tpl.Description = req.Description
	tpl.Entity = req.Entity
	tpl.Category = req.Category
	tpl.Sections = req.Sections
	tpl.HeaderText = req.HeaderText
	tpl.FooterText = req.FooterText
	tpl.ShowPageNumbers = req.ShowPageNumbers
	if req.Theme != nil {
		tpl.Theme = *req.Theme
	}

	if _, err := s.reg.Save(tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return tpl, nil
}

// Delete 删除模板
func (s *templateService) Delete(ctx context.Context, id string) error {
	deleted, err := s.reg.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if !deleted {
		return ErrTemplateNotFound
	}
	return nil
}

// Duplicate 复制模板
func (s *templateService) Duplicate(ctx context.Context, id, newName string) (*model.ReportTemplate, error) {
	newID, err := s.reg.Duplicate(id, newName)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to duplicate template: %w", err)
	}
	return s.Get(ctx, newID)
}

// AddSection 向模板追加或插入一个节
func (s *templateService) AddSection(ctx context.Context, id string, req AddSectionRequest) (*model.ReportTemplate, error) {
	tpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateSections([]model.Section{req.Section}); err != nil {
		return nil, err
	}

	if req.Section.Order == 0 {
		tpl.AppendSection(req.Section.Config, req.Section.Condition)
	} else {
		tpl.InsertSection(req.Section.Order, req.Section.Config, req.Section.Condition)
	}

	if _, err := s.reg.Save(tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return tpl, nil
}

// Entities 内置实体目录
func (s *templateService) Entities(ctx context.Context) []model.EntityDef {
	return model.EntityDefs
}

// validateSections 校验节配置的基本不变量
// 字段 path 不能为空；表格至少声明一列
func validateSections(sections []model.Section) error {
	for _, section := range sections {
		switch cfg := section.Config.(type) {
		case model.FieldGridConfig:
			for _, f := range cfg.Fields {
				if f.Path == "" {
					return fmt.Errorf("field grid contains field with empty path")
				}
			}
		case model.DataTableConfig:
			if len(cfg.Columns) == 0 {
				return fmt.Errorf("data table %q declares no columns", cfg.Source)
			}
			for _, c := range cfg.Columns {
				if c.Path == "" {
					return fmt.Errorf("data table %q contains column with empty path", cfg.Source)
				}
			}
		case nil:
			return fmt.Errorf("section %s has no config", section.Kind)
		}
	}
	return nil
}
