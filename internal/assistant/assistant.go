package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/registry"
	"github.com/openreportkit/backend/internal/service"
	"github.com/openreportkit/backend/internal/utils"
)

// ChatRequest 会话请求
type ChatRequest struct {
	Message    string         `json:"message" binding:"required"`
	TemplateID string         `json:"template_id"`
	Data       map[string]any `json:"data"`
}

// ChatReply 会话响应
type ChatReply struct {
	Intent     Intent                `json:"intent"`
	Reply      string                `json:"reply"`
	TemplateID string                `json:"template_id,omitempty"`
	Template   *model.ReportTemplate `json:"template,omitempty"`
	Preview    string                `json:"preview,omitempty"`
}

// Assistant 模板助手：对话驱动模板的创建和修改
type Assistant interface {
	Handle(ctx context.Context, req ChatRequest) (*ChatReply, error)
}

// assistant 实现
// 意图分类是关键词驱动的，LLM 只负责把自然语言起草成模板/节 JSON
type assistant struct {
	generator Generator
	templates service.TemplateService
	reports   service.ReportService
}

// New 创建助手实例
func New(generator Generator, templates service.TemplateService, reports service.ReportService) Assistant {
	return &assistant{
		generator: generator,
		templates: templates,
		reports:   reports,
	}
}

const draftTemplatePrompt = `你是报表模板设计助手。根据用户描述生成一个报表模板的 JSON。
JSON 结构：{"name","description","entity","category","sections":[{"kind","order","condition"?,"<kind>_config"}]}
可用的节类型 kind：title, header, field_grid, data_table, text, image, signature, divider, spacer, page_break
字段格式 format：text, currency, number, decimal, percent, date, datetime, boolean
可用实体及字段：
%s
只输出 JSON，不要解释。

用户描述：%s`

const draftSectionPrompt = `你是报表模板设计助手。根据用户描述生成一个模板节的 JSON。
结构：{"kind","order","condition"?,"<kind>_config"}，kind 取
title/header/field_grid/data_table/text/image/signature/divider/spacer/page_break 之一。
只输出 JSON，不要解释。

用户描述：%s`

const helpReply = `我可以帮你管理报表模板：
- "创建一个发票汇总模板" —— 根据描述起草新模板
- "给模板加一节合计表格" —— 向现有模板添加节
- "列出模板" —— 查看已有模板
- "预览" —— 用当前数据渲染模板`

// Handle 处理一条用户消息
func (a *assistant) Handle(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	intent := ClassifyIntent(req.Message)
	klog.V(6).Infof("意图分类: intent=%s message=%q", intent, req.Message)

	switch intent {
	case IntentCreateTemplate:
		return a.createTemplate(ctx, req)
	case IntentAddSection:
		return a.addSection(ctx, req)
	case IntentListTemplates:
		return a.listTemplates(ctx)
	case IntentPreview:
		return a.preview(ctx, req)
	default:
		return &ChatReply{Intent: IntentHelp, Reply: helpReply}, nil
	}
}

// createTemplate 由 LLM 起草模板并保存
func (a *assistant) createTemplate(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	prompt := fmt.Sprintf(draftTemplatePrompt, entityCatalog(), req.Message)

	resp, err := a.generator.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return nil, fmt.Errorf("failed to draft template: %w", err)
	}

	draft, err := model.UnmarshalTemplate([]byte(utils.ExtractJSON(resp.Content)))
	if err != nil {
		return nil, fmt.Errorf("model reply is not a valid template: %w", err)
	}
	klog.V(6).Infof("模板草稿: %s", utils.ToJSON(draft))

	tpl, err := a.templates.Create(ctx, service.CreateTemplateRequest{
		Name:        draft.Name,
		Description: draft.Description,
		Entity:      draft.Entity,
		Category:    draft.Category,
		Sections:    draft.Sections,
	})
	if err != nil {
		return nil, err
	}

	return &ChatReply{
		Intent:     IntentCreateTemplate,
		Reply:      fmt.Sprintf("已创建模板「%s」，共 %d 个节。", tpl.Name, len(tpl.Sections)),
		TemplateID: tpl.ID,
		Template:   tpl,
	}, nil
}

// addSection 由 LLM 起草一个节并加入模板
func (a *assistant) addSection(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if req.TemplateID == "" {
		return &ChatReply{Intent: IntentAddSection, Reply: "请先指定要修改的模板。"}, nil
	}

	prompt := fmt.Sprintf(draftSectionPrompt, req.Message)
	resp, err := a.generator.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return nil, fmt.Errorf("failed to draft section: %w", err)
	}

	var section model.Section
	if err := section.UnmarshalJSON([]byte(utils.ExtractJSON(resp.Content))); err != nil {
		return nil, fmt.Errorf("model reply is not a valid section: %w", err)
	}
	klog.V(6).Infof("节草稿: %s", utils.ToJSON(&section))

	tpl, err := a.templates.AddSection(ctx, req.TemplateID, service.AddSectionRequest{Section: section})
	if err != nil {
		return nil, err
	}

	return &ChatReply{
		Intent:     IntentAddSection,
		Reply:      fmt.Sprintf("已添加 %s 节，模板现有 %d 个节。", section.Kind, len(tpl.Sections)),
		TemplateID: tpl.ID,
		Template:   tpl,
	}, nil
}

// listTemplates 列出模板
func (a *assistant) listTemplates(ctx context.Context) (*ChatReply, error) {
	summaries, err := a.templates.List(ctx, registry.ListFilter{})
	if err != nil {
		return nil, err
	}

	if len(summaries) == 0 {
		return &ChatReply{Intent: IntentListTemplates, Reply: "还没有任何模板。"}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "共 %d 个模板：\n", len(summaries))
	for _, s := range summaries {
		fmt.Fprintf(&b, "- %s（%d 个节，id=%s）\n", s.Name, s.SectionCount, s.ID)
	}

	return &ChatReply{Intent: IntentListTemplates, Reply: b.String()}, nil
}

// preview 用请求里携带的数据渲染模板
func (a *assistant) preview(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if req.TemplateID == "" {
		return &ChatReply{Intent: IntentPreview, Reply: "请先指定要预览的模板。"}, nil
	}

	out, err := a.reports.RenderByID(ctx, req.TemplateID, req.Data)
	if err != nil {
		return nil, err
	}

	return &ChatReply{
		Intent:     IntentPreview,
		Reply:      "预览已生成。",
		TemplateID: req.TemplateID,
		Preview:    string(out),
	}, nil
}

// entityCatalog 实体目录的提示词片段
func entityCatalog() string {
	var b strings.Builder
	for _, def := range model.EntityDefs {
		fmt.Fprintf(&b, "- %s（%s）：", def.Name, def.Title)
		for i, f := range def.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s:%s", f.Path, f.Format)
		}
		b.WriteString("\n")
	}
	return b.String()
}
