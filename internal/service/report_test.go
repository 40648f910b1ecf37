package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreportkit/backend/internal/docbuilder"
	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/registry"
	"github.com/openreportkit/backend/internal/render"
	"github.com/openreportkit/backend/internal/vocab"
)

func newTestReportService(t *testing.T) (ReportService, registry.Registry) {
	t.Helper()

	reg, err := registry.NewFileRegistry(t.TempDir())
	require.NoError(t, err)

	renderer := render.NewRenderer(func(theme model.Theme) docbuilder.Builder {
		return docbuilder.NewMarkdownBuilder(theme)
	})
	return NewReportService(reg, renderer), reg
}

func TestReportServiceRenderByID(t *testing.T) {
	svc, reg := newTestReportService(t)

	tpl := &model.ReportTemplate{
		Name: "状态报告",
		Sections: []model.Section{
			{Kind: vocab.SectionTitle, Order: 0, Config: model.TitleConfig{Text: "{ProjectName} 状态"}},
			{Kind: vocab.SectionFieldGrid, Order: 1, Config: model.FieldGridConfig{
				ShowLabels: true,
				Fields:     []model.FieldDef{{Path: "Status", Format: vocab.FormatText}},
			}},
		},
	}
	id, err := reg.Save(tpl)
	require.NoError(t, err)

	out, err := svc.RenderByID(context.Background(), id, map[string]any{
		"ProjectName": "站前广场",
		"Status":      "Open",
	})
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "# 站前广场 状态")
	assert.Contains(t, doc, "**Status:** Open")
}

func TestReportServiceRenderByIDNotFound(t *testing.T) {
	svc, _ := newTestReportService(t)

	_, err := svc.RenderByID(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestReportServiceRenderInline(t *testing.T) {
	svc, _ := newTestReportService(t)

	tpl := &model.ReportTemplate{
		Sections: []model.Section{
			{Kind: vocab.SectionText, Order: 0, Config: model.TextConfig{Content: "合计 {Total}"}},
		},
	}

	out, err := svc.Render(context.Background(), tpl, map[string]any{"Total": 42})
	require.NoError(t, err)
	assert.Contains(t, string(out), "合计 42")
}
