package model

import "github.com/openreportkit/backend/internal/vocab"

// EntityField 实体字段描述
type EntityField struct {
	Path   string
	Label  string
	Format vocab.FormatKind
}

// EntityDef 实体定义：用数据表驱动，不为每个实体写一个类型
type EntityDef struct {
	Name   string
	Title  string
	Fields []EntityField
}

// EntityDefs 内置实体目录
// 助手起草模板、列表过滤时引用；新增实体只需加一行数据
var EntityDefs = []EntityDef{
	{
		Name:  "project",
		Title: "工程项目",
		Fields: []EntityField{
			{"ProjectName", "项目名称", vocab.FormatText},
			{"ProjectNumber", "项目编号", vocab.FormatText},
			{"Status", "状态", vocab.FormatText},
			{"StartDate", "开工日期", vocab.FormatDate},
			{"EndDate", "竣工日期", vocab.FormatDate},
			{"ContractAmount", "合同金额", vocab.FormatCurrency},
			{"PercentComplete", "完成进度", vocab.FormatPercent},
		},
	},
	{
		Name:  "invoice",
		Title: "工程款发票",
		Fields: []EntityField{
			{"InvoiceNumber", "发票编号", vocab.FormatText},
			{"InvoiceDate", "开票日期", vocab.FormatDate},
			{"DueDate", "到期日期", vocab.FormatDate},
			{"Subtotal", "小计", vocab.FormatCurrency},
			{"TaxAmount", "税额", vocab.FormatCurrency},
			{"Total", "合计", vocab.FormatCurrency},
			{"Paid", "已付款", vocab.FormatBoolean},
		},
	},
	{
		Name:  "change_order",
		Title: "变更单",
		Fields: []EntityField{
			{"Number", "变更编号", vocab.FormatText},
			{"Description", "变更说明", vocab.FormatText},
			{"Amount", "变更金额", vocab.FormatCurrency},
			{"Status", "状态", vocab.FormatText},
			{"ApprovedDate", "批准日期", vocab.FormatDate},
		},
	},
	{
		Name:  "daily_log",
		Title: "施工日志",
		Fields: []EntityField{
			{"LogDate", "日期", vocab.FormatDate},
			{"Weather", "天气", vocab.FormatText},
			{"CrewCount", "出勤人数", vocab.FormatNumber},
			{"HoursWorked", "工时", vocab.FormatDecimal},
			{"Notes", "备注", vocab.FormatText},
		},
	},
	{
		Name:  "punch_item",
		Title: "整改项",
		Fields: []EntityField{
			{"Title", "事项", vocab.FormatText},
			{"Location", "位置", vocab.FormatText},
			{"AssignedTo", "责任人", vocab.FormatText},
			{"DueDate", "限期", vocab.FormatDate},
			{"Resolved", "已闭合", vocab.FormatBoolean},
		},
	},
}

// FindEntityDef 按名称查找实体定义，找不到返回 nil
func FindEntityDef(name string) *EntityDef {
	for i := range EntityDefs {
		if EntityDefs[i].Name == name {
			return &EntityDefs[i]
		}
	}
	return nil
}
