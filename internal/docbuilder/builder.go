package docbuilder

import "github.com/openreportkit/backend/internal/vocab"

// GridEntry 栅格中的一项
type GridEntry struct {
	Label string
	Value string
}

// TableColumn 表格列头
type TableColumn struct {
	Label string
	Width int
	Align vocab.Alignment
}

// Builder 文档构建器
// 渲染器只向它追加带样式的内容，最终由 ToBytes 产出文档字节
// 具体文档格式（markdown、docx 等）由实现决定，一次渲染一个会话
type Builder interface {
	AddTitle(text, subtitle string)
	AddHeading(text string, level int)
	AddFieldGrid(entries []GridEntry, columns int, showLabels, striped bool)
	// AddDataTable totals 为合计行，长度与 columns 一致，空串表示该列无合计
	AddDataTable(columns []TableColumn, rows [][]string, showHeader, showRowNumbers, striped bool, totals []string)
	AddParagraph(text string)
	AddImage(source string, width, height int, align vocab.Alignment, caption string)
	AddDivider()
	AddSpacer(points int)
	AddPageBreak()
	ConfigureHeaderFooter(header, footer string, showPageNumbers bool)
	ToBytes() ([]byte, error)
}
