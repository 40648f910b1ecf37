package vocab

// SectionKind 模板节类型
type SectionKind string

const (
	SectionTitle     SectionKind = "title"
	SectionHeader    SectionKind = "header"
	SectionFieldGrid SectionKind = "field_grid"
	SectionDataTable SectionKind = "data_table"
	SectionText      SectionKind = "text"
	SectionImage     SectionKind = "image"
	SectionSignature SectionKind = "signature"
	SectionDivider   SectionKind = "divider"
	SectionSpacer    SectionKind = "spacer"
	SectionPageBreak SectionKind = "page_break"
)

// FormatKind 字段显示格式
// 模板模型与格式化器共用同一份声明，避免两处枚举漂移
type FormatKind string

const (
	FormatText     FormatKind = "text"
	FormatCurrency FormatKind = "currency"
	FormatNumber   FormatKind = "number"
	FormatDecimal  FormatKind = "decimal"
	FormatPercent  FormatKind = "percent"
	FormatDate     FormatKind = "date"
	FormatDateTime FormatKind = "datetime"
	FormatBoolean  FormatKind = "boolean"
)

// ConditionOp 条件运算符
type ConditionOp string

const (
	OpExists   ConditionOp = "exists"
	OpNotEmpty ConditionOp = "not_empty"
	OpEq       ConditionOp = "eq"
	OpNe       ConditionOp = "ne"
	OpGt       ConditionOp = "gt"
	OpLt       ConditionOp = "lt"
	OpGte      ConditionOp = "gte"
	OpLte      ConditionOp = "lte"
	OpContains ConditionOp = "contains"
	OpIn       ConditionOp = "in"
)

// Alignment 对齐方式
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Orientation 页面方向
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)
