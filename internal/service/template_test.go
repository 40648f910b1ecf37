package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/registry"
	"github.com/openreportkit/backend/internal/vocab"
)

func newTestTemplateService(t *testing.T) TemplateService {
	t.Helper()
	reg, err := registry.NewFileRegistry(t.TempDir())
	require.NoError(t, err)
	return NewTemplateService(reg)
}

func TestTemplateServiceCreateAndGet(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	tpl, err := svc.Create(ctx, CreateTemplateRequest{
		Name:   "发票汇总",
		Entity: "invoice",
		Sections: []model.Section{
			{Kind: vocab.SectionTitle, Order: 0, Config: model.TitleConfig{Text: "发票汇总"}},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, model.DefaultTheme(), tpl.Theme, "未指定主题时用默认主题")

	loaded, err := svc.Get(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "发票汇总", loaded.Name)
}

func TestTemplateServiceCreateUnknownEntity(t *testing.T) {
	svc := newTestTemplateService(t)

	_, err := svc.Create(context.Background(), CreateTemplateRequest{
		Name:   "未知实体",
		Entity: "spaceship",
	})
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestTemplateServiceCreateRejectsEmptyFieldPath(t *testing.T) {
	svc := newTestTemplateService(t)

	_, err := svc.Create(context.Background(), CreateTemplateRequest{
		Name: "坏模板",
		Sections: []model.Section{
			{Kind: vocab.SectionFieldGrid, Order: 0, Config: model.FieldGridConfig{
				Fields: []model.FieldDef{{Path: ""}},
			}},
		},
	})
	assert.ErrorContains(t, err, "empty path")
}

func TestTemplateServiceCreateRejectsTableWithoutColumns(t *testing.T) {
	svc := newTestTemplateService(t)

	_, err := svc.Create(context.Background(), CreateTemplateRequest{
		Name: "坏模板",
		Sections: []model.Section{
			{Kind: vocab.SectionDataTable, Order: 0, Config: model.DataTableConfig{Source: "Items"}},
		},
	})
	assert.ErrorContains(t, err, "no columns")
}

func TestTemplateServiceGetNotFound(t *testing.T) {
	svc := newTestTemplateService(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateServiceDeleteNotFound(t *testing.T) {
	svc := newTestTemplateService(t)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateServiceAddSection(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	tpl, err := svc.Create(ctx, CreateTemplateRequest{Name: "增量模板"})
	require.NoError(t, err)

	updated, err := svc.AddSection(ctx, tpl.ID, AddSectionRequest{
		Section: model.Section{Kind: vocab.SectionHeader, Config: model.HeaderConfig{Text: "附加节"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Sections, 1)
	assert.Equal(t, 10, updated.Sections[0].Order, "Order 为 0 时追加到末尾")

	updated, err = svc.AddSection(ctx, tpl.ID, AddSectionRequest{
		Section: model.Section{Kind: vocab.SectionDivider, Order: 5, Config: model.DividerConfig{}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Sections, 2)
	assert.Equal(t, 5, updated.Sections[1].Order)
}

func TestTemplateServiceDuplicate(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	tpl, err := svc.Create(ctx, CreateTemplateRequest{Name: "原始"})
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, tpl.ID, "副本")
	require.NoError(t, err)
	assert.NotEqual(t, tpl.ID, dup.ID)
	assert.Equal(t, "副本", dup.Name)
}

func TestTemplateServiceUpdate(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	tpl, err := svc.Create(ctx, CreateTemplateRequest{Name: "旧名字"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, tpl.ID, UpdateTemplateRequest{
		Name:     "新名字",
		Category: "financial",
	})
	require.NoError(t, err)
	assert.Equal(t, "新名字", updated.Name)
	assert.Equal(t, "financial", updated.Category)
}

func TestTemplateServiceList(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateTemplateRequest{Name: "a", Category: "financial"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTemplateRequest{Name: "b", Category: "progress"})
	require.NoError(t, err)

	all, err := svc.List(ctx, registry.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	financial, err := svc.List(ctx, registry.ListFilter{Category: "financial"})
	require.NoError(t, err)
	require.Len(t, financial, 1)
	assert.Equal(t, "a", financial[0].Name)
}
