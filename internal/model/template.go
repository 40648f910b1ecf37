package model

import (
	"time"

	"github.com/openreportkit/backend/internal/vocab"
)

// ReportTemplate 报表模板
// 由节（Section）按 Order 排序组成，渲染时只读，不会被渲染过程修改
type ReportTemplate struct {
	ID              string    `json:"id,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Entity          string    `json:"entity,omitempty"`   // 关联的实体类型，如 project, invoice
	Category        string    `json:"category,omitempty"` // 分类，如 financial, progress
	Sections        []Section `json:"sections"`
	Theme           Theme     `json:"theme"`
	HeaderText      string    `json:"header_text,omitempty"`
	FooterText      string    `json:"footer_text,omitempty"`
	ShowPageNumbers bool      `json:"show_page_numbers"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// AppendSection 追加一个节，Order 取当前最大值加 10
func (t *ReportTemplate) AppendSection(cfg SectionConfig, cond *Condition) {
	maxOrder := 0
	for _, s := range t.Sections {
		if s.Order > maxOrder {
			maxOrder = s.Order
		}
	}
	t.Sections = append(t.Sections, Section{
		Kind:      cfg.Kind(),
		Order:     maxOrder + 10,
		Condition: cond,
		Config:    cfg,
	})
}

// InsertSection 按指定 Order 插入一个节
// Order 不要求连续或唯一，渲染时按 Order 稳定排序
func (t *ReportTemplate) InsertSection(order int, cfg SectionConfig, cond *Condition) {
	t.Sections = append(t.Sections, Section{
		Kind:      cfg.Kind(),
		Order:     order,
		Condition: cond,
		Config:    cfg,
	})
}

// Section 模板中的一个可渲染单元
// Kind 与 Config 一一对应：每个节只携带一种配置，渲染器只按 Kind 分发
type Section struct {
	Kind      vocab.SectionKind
	Order     int
	Condition *Condition
	Config    SectionConfig
}

// SectionConfig 节配置的标记接口
// 每种节类型一个实现，保证"一个节只有一种配置"由类型系统约束
type SectionConfig interface {
	Kind() vocab.SectionKind
}

// TitleConfig 标题横幅
type TitleConfig struct {
	Text     string `json:"text"`
	Subtitle string `json:"subtitle,omitempty"`
}

// HeaderConfig 小节标题
type HeaderConfig struct {
	Text  string `json:"text"`
	Level int    `json:"level,omitempty"` // 1-4，默认 2
}

// FieldGridConfig 标签/取值栅格
type FieldGridConfig struct {
	Fields     []FieldDef `json:"fields"`
	Columns    int        `json:"columns,omitempty"` // 默认 2
	ShowLabels bool       `json:"show_labels"`
	Striped    bool       `json:"striped,omitempty"`
}

// DataTableConfig 数据表格
type DataTableConfig struct {
	Source         string      `json:"source"` // 指向数据中的序列，如 Items
	Columns        []ColumnDef `json:"columns"`
	SortBy         string      `json:"sort_by,omitempty"`
	SortDesc       bool        `json:"sort_desc,omitempty"`
	MaxRows        int         `json:"max_rows,omitempty"`
	Totals         []string    `json:"totals,omitempty"` // 需要合计的列 path
	ShowHeader     bool        `json:"show_header"`
	ShowRowNumbers bool        `json:"show_row_numbers,omitempty"`
	Striped        bool        `json:"striped,omitempty"`
	EmptyMessage   string      `json:"empty_message,omitempty"`
}

// TextConfig 自由文本段落，支持 {path} 插值，按换行拆分段落
type TextConfig struct {
	Content string `json:"content"`
}

// ImageConfig 图片
// Field 与 Source 二选一：Field 指向数据中的 base64 内容，Source 为静态引用
type ImageConfig struct {
	Field   string          `json:"field,omitempty"`
	Source  string          `json:"source,omitempty"`
	Width   int             `json:"width,omitempty"`
	Height  int             `json:"height,omitempty"`
	Align   vocab.Alignment `json:"align,omitempty"`
	Caption string          `json:"caption,omitempty"`
}

// SignatureConfig 签名栏
type SignatureConfig struct {
	Label    string `json:"label,omitempty"`
	Field    string `json:"field,omitempty"` // 指向数据中的签名图片（base64）
	ShowDate bool   `json:"show_date,omitempty"`
}

// DividerConfig 分隔线
type DividerConfig struct{}

// SpacerConfig 垂直留白
type SpacerConfig struct {
	Points int `json:"points,omitempty"` // 默认 12
}

// PageBreakConfig 分页
type PageBreakConfig struct{}

func (TitleConfig) Kind() vocab.SectionKind     { return vocab.SectionTitle }
func (HeaderConfig) Kind() vocab.SectionKind    { return vocab.SectionHeader }
func (FieldGridConfig) Kind() vocab.SectionKind { return vocab.SectionFieldGrid }
func (DataTableConfig) Kind() vocab.SectionKind { return vocab.SectionDataTable }
func (TextConfig) Kind() vocab.SectionKind      { return vocab.SectionText }
func (ImageConfig) Kind() vocab.SectionKind     { return vocab.SectionImage }
func (SignatureConfig) Kind() vocab.SectionKind { return vocab.SectionSignature }
func (DividerConfig) Kind() vocab.SectionKind   { return vocab.SectionDivider }
func (SpacerConfig) Kind() vocab.SectionKind    { return vocab.SectionSpacer }
func (PageBreakConfig) Kind() vocab.SectionKind { return vocab.SectionPageBreak }

// FieldDef 字段定义：path 指向数据，format 决定显示格式
type FieldDef struct {
	Path          string           `json:"path"`
	Label         string           `json:"label,omitempty"` // 为空时由 path 末段自动生成
	Format        vocab.FormatKind `json:"format,omitempty"`
	FormatOptions map[string]any   `json:"format_options,omitempty"`
	Default       string           `json:"default,omitempty"`
}

// ColumnDef 表格列定义
type ColumnDef struct {
	FieldDef
	Width int             `json:"width,omitempty"`
	Align vocab.Alignment `json:"align,omitempty"`
}

// Condition 节可见性条件
type Condition struct {
	Field string            `json:"field"`
	Op    vocab.ConditionOp `json:"op"`
	Value any               `json:"value,omitempty"`
}

// Theme 模板主题，纯样式数据，由 DocumentBuilder 消费
type Theme struct {
	PrimaryColor   string            `json:"primary_color,omitempty"`
	SecondaryColor string            `json:"secondary_color,omitempty"`
	TextColor      string            `json:"text_color,omitempty"`
	FontName       string            `json:"font_name,omitempty"`
	TitleFontSize  int               `json:"title_font_size,omitempty"`
	BodyFontSize   int               `json:"body_font_size,omitempty"`
	MarginTop      int               `json:"margin_top,omitempty"`
	MarginBottom   int               `json:"margin_bottom,omitempty"`
	MarginLeft     int               `json:"margin_left,omitempty"`
	MarginRight    int               `json:"margin_right,omitempty"`
	Orientation    vocab.Orientation `json:"orientation,omitempty"`
}

// DefaultTheme 默认主题
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   "#1F4E79",
		SecondaryColor: "#D6E4F0",
		TextColor:      "#333333",
		FontName:       "Calibri",
		TitleFontSize:  20,
		BodyFontSize:   11,
		MarginTop:      72,
		MarginBottom:   72,
		MarginLeft:     72,
		MarginRight:    72,
		Orientation:    vocab.OrientationPortrait,
	}
}
