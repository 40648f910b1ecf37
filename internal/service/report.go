package service

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/registry"
	"github.com/openreportkit/backend/internal/render"
)

// ReportService 报表生成服务接口
type ReportService interface {
	// Render 用给定模板和数据生成报表
	Render(ctx context.Context, tpl *model.ReportTemplate, data map[string]any) ([]byte, error)

	// RenderByID 按模板 ID 生成报表，模板不存在返回 ErrTemplateNotFound
	RenderByID(ctx context.Context, id string, data map[string]any) ([]byte, error)
}

// reportService 实现
type reportService struct {
	reg      registry.Registry
	renderer *render.Renderer
}

// NewReportService 创建服务实例
func NewReportService(reg registry.Registry, renderer *render.Renderer) ReportService {
	return &reportService{reg: reg, renderer: renderer}
}

// Render 渲染报表
func (s *reportService) Render(ctx context.Context, tpl *model.ReportTemplate, data map[string]any) ([]byte, error) {
	out, err := s.renderer.Render(tpl, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	klog.V(6).Infof("报表生成完成: template=%s bytes=%d", tpl.Name, len(out))
	return out, nil
}

// RenderByID 按 ID 渲染报表
func (s *reportService) RenderByID(ctx context.Context, id string, data map[string]any) ([]byte, error) {
	tpl, err := s.reg.Load(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	return s.Render(ctx, tpl, data)
}
