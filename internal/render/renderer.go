package render

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/internal/docbuilder"
	"github.com/openreportkit/backend/internal/model"
)

// BuilderFactory 按主题开启一个新的文档构建器会话
// 每次渲染独立建会话，渲染之间不共享可变状态
type BuilderFactory func(theme model.Theme) docbuilder.Builder

// Renderer 节渲染器：把模板和数据绑定成文档
type Renderer struct {
	newBuilder BuilderFactory
}

// NewRenderer 创建渲染器
func NewRenderer(factory BuilderFactory) *Renderer {
	return &Renderer{newBuilder: factory}
}

// Render 渲染模板
// 节按 Order 稳定排序后逐个渲染；条件为假的节整个跳过，不留占位
// 渲染不修改模板本身
func (r *Renderer) Render(tpl *model.ReportTemplate, data any) ([]byte, error) {
	klog.V(6).Infof("开始渲染模板: name=%s sections=%d", tpl.Name, len(tpl.Sections))

	builder := r.newBuilder(tpl.Theme)

	if tpl.HeaderText != "" || tpl.FooterText != "" || tpl.ShowPageNumbers {
		builder.ConfigureHeaderFooter(
			Interpolate(tpl.HeaderText, data),
			Interpolate(tpl.FooterText, data),
			tpl.ShowPageNumbers,
		)
	}

	sections := make([]model.Section, len(tpl.Sections))
	copy(sections, tpl.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})

	for _, section := range sections {
		if !Evaluate(section.Condition, data) {
			klog.V(6).Infof("条件不满足，跳过节: kind=%s order=%d", section.Kind, section.Order)
			continue
		}
		r.renderSection(builder, section, data)
	}

	out, err := builder.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to build document: %w", err)
	}
	return out, nil
}

// renderSection 按节类型分发
// 只认 Kind 对应的配置，节上多余的配置不参与渲染
func (r *Renderer) renderSection(builder docbuilder.Builder, section model.Section, data any) {
	switch cfg := section.Config.(type) {
	case model.TitleConfig:
		builder.AddTitle(Interpolate(cfg.Text, data), Interpolate(cfg.Subtitle, data))

	case model.HeaderConfig:
		level := cfg.Level
		if level == 0 {
			level = 2
		}
		builder.AddHeading(Interpolate(cfg.Text, data), level)

	case model.FieldGridConfig:
		r.renderFieldGrid(builder, cfg, data)

	case model.DataTableConfig:
		r.renderDataTable(builder, cfg, data)

	case model.TextConfig:
		for _, line := range strings.Split(Interpolate(cfg.Content, data), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			builder.AddParagraph(line)
		}

	case model.ImageConfig:
		source := r.imageSource(cfg, data)
		if source == "" {
			return
		}
		builder.AddImage(source, cfg.Width, cfg.Height, cfg.Align, cfg.Caption)

	case model.SignatureConfig:
		builder.AddSpacer(24)
		if cfg.Field != "" {
			if source := fmt.Sprint(Resolve(data, cfg.Field)); source != "" && source != "<nil>" {
				builder.AddImage(source, 0, 0, "", "")
			}
		}
		builder.AddParagraph("____________________")
		if cfg.Label != "" {
			builder.AddParagraph(cfg.Label)
		}
		if cfg.ShowDate {
			builder.AddParagraph("Date: ____________")
		}

	case model.DividerConfig:
		builder.AddDivider()

	case model.SpacerConfig:
		points := cfg.Points
		if points == 0 {
			points = 12
		}
		builder.AddSpacer(points)

	case model.PageBreakConfig:
		builder.AddPageBreak()

	default:
		klog.V(6).Infof("节缺少配置，跳过: kind=%s", section.Kind)
	}
}

// renderFieldGrid 标签/取值栅格
func (r *Renderer) renderFieldGrid(builder docbuilder.Builder, cfg model.FieldGridConfig, data any) {
	columns := cfg.Columns
	if columns == 0 {
		columns = 2
	}

	entries := make([]docbuilder.GridEntry, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		if f.Path == "" {
			continue
		}
		label := f.Label
		if label == "" {
			label = humanizeLabel(f.Path)
		}
		entries = append(entries, docbuilder.GridEntry{
			Label: label,
			Value: formatField(Resolve(data, f.Path), f),
		})
	}

	builder.AddFieldGrid(entries, columns, cfg.ShowLabels, cfg.Striped)
}

// renderDataTable 数据表格：解析源序列，排序、截断、格式化、合计
func (r *Renderer) renderDataTable(builder docbuilder.Builder, cfg model.DataTableConfig, data any) {
	if len(cfg.Columns) == 0 {
		klog.V(6).Infof("表格未声明任何列，跳过: source=%s", cfg.Source)
		return
	}

	rows := toSequence(Resolve(data, cfg.Source))
	if len(rows) == 0 {
		msg := cfg.EmptyMessage
		if msg == "" {
			msg = "No records found."
		}
		builder.AddParagraph(msg)
		return
	}

	if cfg.SortBy != "" {
		// toSequence 可能原样返回调用方的切片，排序前复制，渲染不改动输入数据
		rows = append([]any(nil), rows...)
		sort.SliceStable(rows, func(i, j int) bool {
			cmp, ok := compare(Resolve(rows[i], cfg.SortBy), Resolve(rows[j], cfg.SortBy))
			if !ok {
				return false
			}
			if cfg.SortDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if cfg.MaxRows > 0 && len(rows) > cfg.MaxRows {
		rows = rows[:cfg.MaxRows]
	}

	columns := make([]docbuilder.TableColumn, len(cfg.Columns))
	for i, c := range cfg.Columns {
		label := c.Label
		if label == "" {
			label = humanizeLabel(c.Path)
		}
		columns[i] = docbuilder.TableColumn{Label: label, Width: c.Width, Align: c.Align}
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(cfg.Columns))
		for j, c := range cfg.Columns {
			cells[i][j] = formatField(Resolve(row, c.Path), c.FieldDef)
		}
	}

	var totals []string
	if len(cfg.Totals) > 0 {
		totals = make([]string, len(cfg.Columns))
		for j, c := range cfg.Columns {
			if !containsString(cfg.Totals, c.Path) {
				continue
			}
			// 非数字和缺失按 0 计，合计永不失败
			sum := 0.0
			for _, row := range rows {
				if f, ok := toFloat(Resolve(row, c.Path)); ok {
					sum += f
				}
			}
			totals[j] = Format(sum, c.Format, c.FormatOptions)
		}
	}

	builder.AddDataTable(columns, cells, cfg.ShowHeader, cfg.ShowRowNumbers, cfg.Striped, totals)
}

// imageSource 图片地址：优先取数据字段（内嵌 base64），否则用静态引用
func (r *Renderer) imageSource(cfg model.ImageConfig, data any) string {
	if cfg.Field != "" {
		v := Resolve(data, cfg.Field)
		if v == nil {
			return ""
		}
		s := fmt.Sprint(v)
		if s == "" || strings.HasPrefix(s, "data:") {
			return s
		}
		if _, err := base64.StdEncoding.DecodeString(s); err == nil {
			return "data:image/png;base64," + s
		}
		return s
	}
	return cfg.Source
}

// formatField 字段格式化，值缺失时优先用字段自身的默认值
func formatField(value any, f model.FieldDef) string {
	if value == nil && f.Default != "" {
		return f.Default
	}
	return Format(value, f.Format, f.FormatOptions)
}

// humanizeLabel 由 path 末段生成标签：内部大写字母前补空格
// 如 Items[0].UnitPrice -> "Unit Price"
func humanizeLabel(path string) string {
	segment := path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		segment = path[i+1:]
	}
	if i := strings.IndexByte(segment, '['); i > 0 {
		segment = segment[:i]
	}

	var b strings.Builder
	for i, ch := range segment {
		if i > 0 && ch >= 'A' && ch <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
