package assistant

import "strings"

// Intent 用户意图
type Intent string

const (
	IntentCreateTemplate Intent = "create_template"
	IntentAddSection     Intent = "add_section"
	IntentListTemplates  Intent = "list_templates"
	IntentPreview        Intent = "preview"
	IntentHelp           Intent = "help"
)

// intentKeywords 关键词表，命中即分发，按声明顺序取第一个命中的意图
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentAddSection, []string{"加一节", "添加", "加个", "add section", "add a section", "insert"}},
	{IntentCreateTemplate, []string{"创建", "新建", "做一个", "create", "new template", "build a template"}},
	{IntentListTemplates, []string{"列表", "列出", "查看模板", "有哪些", "list", "show templates"}},
	{IntentPreview, []string{"预览", "生成", "渲染", "preview", "render", "generate"}},
}

// ClassifyIntent 关键词驱动的意图分类
// 没有命中任何关键词时回落到帮助
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)

	for _, entry := range intentKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.intent
			}
		}
	}

	return IntentHelp
}
