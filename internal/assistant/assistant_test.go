package assistant

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreportkit/backend/internal/docbuilder"
	tplmodel "github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/registry"
	"github.com/openreportkit/backend/internal/render"
	"github.com/openreportkit/backend/internal/service"
	"github.com/openreportkit/backend/internal/vocab"
)

// fakeGenerator 固定回复的 Generator，记录最后一次的提示词
type fakeGenerator struct {
	reply      string
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if len(input) > 0 {
		f.lastPrompt = input[len(input)-1].Content
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func newTestAssistant(t *testing.T, gen Generator) (Assistant, service.TemplateService) {
	t.Helper()

	reg, err := registry.NewFileRegistry(t.TempDir())
	require.NoError(t, err)

	renderer := render.NewRenderer(func(theme tplmodel.Theme) docbuilder.Builder {
		return docbuilder.NewMarkdownBuilder(theme)
	})

	templates := service.NewTemplateService(reg)
	reports := service.NewReportService(reg, renderer)
	return New(gen, templates, reports), templates
}

func TestAssistantCreateTemplate(t *testing.T) {
	gen := &fakeGenerator{reply: `好的，为你起草如下模板：
{"name":"发票汇总","entity":"invoice","sections":[{"kind":"title","order":0,"title_config":{"text":"发票汇总"}}]}`}

	a, templates := newTestAssistant(t, gen)

	reply, err := a.Handle(context.Background(), ChatRequest{Message: "创建一个发票汇总模板"})
	require.NoError(t, err)

	assert.Equal(t, IntentCreateTemplate, reply.Intent)
	assert.NotEmpty(t, reply.TemplateID)
	assert.Contains(t, gen.lastPrompt, "invoice", "提示词应携带实体目录")

	tpl, err := templates.Get(context.Background(), reply.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, "发票汇总", tpl.Name)
	assert.Len(t, tpl.Sections, 1)
}

func TestAssistantCreateTemplateBadReply(t *testing.T) {
	gen := &fakeGenerator{reply: "抱歉，我不知道怎么做"}
	a, _ := newTestAssistant(t, gen)

	_, err := a.Handle(context.Background(), ChatRequest{Message: "创建一个模板"})
	assert.ErrorContains(t, err, "not a valid template")
}

func TestAssistantAddSection(t *testing.T) {
	gen := &fakeGenerator{reply: `{"kind":"data_table","order":20,"data_table_config":{"source":"Items","show_header":true,"columns":[{"path":"Amount","format":"currency"}],"totals":["Amount"]}}`}
	a, templates := newTestAssistant(t, gen)

	tpl, err := templates.Create(context.Background(), service.CreateTemplateRequest{Name: "底板"})
	require.NoError(t, err)

	reply, err := a.Handle(context.Background(), ChatRequest{
		Message:    "给模板添加一个金额合计表",
		TemplateID: tpl.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, IntentAddSection, reply.Intent)

	updated, err := templates.Get(context.Background(), tpl.ID)
	require.NoError(t, err)
	require.Len(t, updated.Sections, 1)
	assert.Equal(t, vocab.SectionDataTable, updated.Sections[0].Kind)
}

func TestAssistantAddSectionWithoutTemplateID(t *testing.T) {
	a, _ := newTestAssistant(t, &fakeGenerator{})

	reply, err := a.Handle(context.Background(), ChatRequest{Message: "添加一节"})
	require.NoError(t, err)
	assert.Equal(t, IntentAddSection, reply.Intent)
	assert.Contains(t, reply.Reply, "指定")
}

func TestAssistantListTemplates(t *testing.T) {
	a, templates := newTestAssistant(t, &fakeGenerator{})

	_, err := templates.Create(context.Background(), service.CreateTemplateRequest{Name: "发票汇总"})
	require.NoError(t, err)

	reply, err := a.Handle(context.Background(), ChatRequest{Message: "列出所有模板"})
	require.NoError(t, err)
	assert.Equal(t, IntentListTemplates, reply.Intent)
	assert.Contains(t, reply.Reply, "发票汇总")
}

func TestAssistantPreview(t *testing.T) {
	a, templates := newTestAssistant(t, &fakeGenerator{})

	tpl, err := templates.Create(context.Background(), service.CreateTemplateRequest{
		Name: "预览模板",
		Sections: []tplmodel.Section{
			{Kind: vocab.SectionText, Order: 0, Config: tplmodel.TextConfig{Content: "状态 {Status}"}},
		},
	})
	require.NoError(t, err)

	reply, err := a.Handle(context.Background(), ChatRequest{
		Message:    "预览一下",
		TemplateID: tpl.ID,
		Data:       map[string]any{"Status": "Open"},
	})
	require.NoError(t, err)
	assert.Equal(t, IntentPreview, reply.Intent)
	assert.Contains(t, reply.Preview, "状态 Open")
}

func TestAssistantHelpFallback(t *testing.T) {
	a, _ := newTestAssistant(t, &fakeGenerator{})

	reply, err := a.Handle(context.Background(), ChatRequest{Message: "你好"})
	require.NoError(t, err)
	assert.Equal(t, IntentHelp, reply.Intent)
	assert.NotEmpty(t, reply.Reply)
}
