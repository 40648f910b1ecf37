package docbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/vocab"
)

// MarkdownBuilder 以 Markdown 为载体的文档构建器
// 主题中只有字体颜色等排版属性对 Markdown 无意义，按惯例忽略
type MarkdownBuilder struct {
	theme           model.Theme
	header          string
	footer          string
	showPageNumbers bool
	body            strings.Builder
}

// NewMarkdownBuilder 创建 Markdown 构建器会话
func NewMarkdownBuilder(theme model.Theme) *MarkdownBuilder {
	return &MarkdownBuilder{theme: theme}
}

// AddTitle 标题横幅
func (b *MarkdownBuilder) AddTitle(text, subtitle string) {
	b.body.WriteString("# " + text + "\n\n")
	if subtitle != "" {
		b.body.WriteString("_" + subtitle + "_\n\n")
	}
}

// AddHeading 小节标题，level 限制在 1-4
func (b *MarkdownBuilder) AddHeading(text string, level int) {
	if level < 1 {
		level = 2
	}
	if level > 4 {
		level = 4
	}
	b.body.WriteString(strings.Repeat("#", level+1) + " " + text + "\n\n")
}

// AddFieldGrid 标签/取值栅格，Markdown 下退化为两列表格
func (b *MarkdownBuilder) AddFieldGrid(entries []GridEntry, columns int, showLabels, striped bool) {
	for _, e := range entries {
		if showLabels && e.Label != "" {
			b.body.WriteString("**" + e.Label + ":** " + e.Value + "\n\n")
		} else {
			b.body.WriteString(e.Value + "\n\n")
		}
	}
}

// AddDataTable 数据表格
func (b *MarkdownBuilder) AddDataTable(columns []TableColumn, rows [][]string, showHeader, showRowNumbers, striped bool, totals []string) {
	if len(columns) == 0 {
		return
	}

	writeRow := func(cells []string) {
		b.body.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	labels := make([]string, 0, len(columns)+1)
	seps := make([]string, 0, len(columns)+1)
	if showRowNumbers {
		labels = append(labels, "#")
		seps = append(seps, "---")
	}
	for _, c := range columns {
		labels = append(labels, c.Label)
		switch c.Align {
		case vocab.AlignRight:
			seps = append(seps, "---:")
		case vocab.AlignCenter:
			seps = append(seps, ":---:")
		default:
			seps = append(seps, "---")
		}
	}

	if showHeader {
		writeRow(labels)
	} else {
		writeRow(make([]string, len(labels)))
	}
	writeRow(seps)

	for i, row := range rows {
		cells := row
		if showRowNumbers {
			cells = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		writeRow(cells)
	}

	if totals != nil {
		cells := make([]string, 0, len(columns)+1)
		if showRowNumbers {
			cells = append(cells, "")
		}
		for _, t := range totals {
			if t != "" {
				t = "**" + t + "**"
			}
			cells = append(cells, t)
		}
		writeRow(cells)
	}

	b.body.WriteString("\n")
}

// AddParagraph 普通段落
func (b *MarkdownBuilder) AddParagraph(text string) {
	b.body.WriteString(text + "\n\n")
}

// AddImage 图片，caption 作为替代文本
func (b *MarkdownBuilder) AddImage(source string, width, height int, align vocab.Alignment, caption string) {
	b.body.WriteString(fmt.Sprintf("![%s](%s)\n\n", caption, source))
	if caption != "" {
		b.body.WriteString("_" + caption + "_\n\n")
	}
}

// AddDivider 分隔线
func (b *MarkdownBuilder) AddDivider() {
	b.body.WriteString("---\n\n")
}

// AddSpacer 垂直留白，Markdown 下用空行近似
func (b *MarkdownBuilder) AddSpacer(points int) {
	b.body.WriteString("\n")
}

// AddPageBreak 分页符
func (b *MarkdownBuilder) AddPageBreak() {
	b.body.WriteString("\n<div style=\"page-break-after: always\"></div>\n\n")
}

// ConfigureHeaderFooter 配置页眉页脚
func (b *MarkdownBuilder) ConfigureHeaderFooter(header, footer string, showPageNumbers bool) {
	b.header = header
	b.footer = footer
	b.showPageNumbers = showPageNumbers
}

// ToBytes 产出最终文档
func (b *MarkdownBuilder) ToBytes() ([]byte, error) {
	var out strings.Builder
	if b.header != "" {
		out.WriteString("> " + b.header + "\n\n")
	}
	out.WriteString(b.body.String())
	if b.footer != "" {
		out.WriteString("> " + b.footer + "\n")
	}
	return []byte(out.String()), nil
}
