package docbuilder

import "github.com/openreportkit/backend/internal/vocab"

// Call Recorder 记录的一次构建器调用
type Call struct {
	Method string
	Args   []any
}

// Recorder 测试用构建器：只记录调用序列，不产出真实文档
type Recorder struct {
	Calls []Call
}

// NewRecorder 创建 Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(method string, args ...any) {
	r.Calls = append(r.Calls, Call{Method: method, Args: args})
}

// Methods 按顺序返回调用的方法名
func (r *Recorder) Methods() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Method
	}
	return out
}

func (r *Recorder) AddTitle(text, subtitle string) {
	r.record("AddTitle", text, subtitle)
}

func (r *Recorder) AddHeading(text string, level int) {
	r.record("AddHeading", text, level)
}

func (r *Recorder) AddFieldGrid(entries []GridEntry, columns int, showLabels, striped bool) {
	r.record("AddFieldGrid", entries, columns, showLabels, striped)
}

func (r *Recorder) AddDataTable(columns []TableColumn, rows [][]string, showHeader, showRowNumbers, striped bool, totals []string) {
	r.record("AddDataTable", columns, rows, showHeader, showRowNumbers, striped, totals)
}

func (r *Recorder) AddParagraph(text string) {
	r.record("AddParagraph", text)
}

func (r *Recorder) AddImage(source string, width, height int, align vocab.Alignment, caption string) {
	r.record("AddImage", source, width, height, align, caption)
}

func (r *Recorder) AddDivider() {
	r.record("AddDivider")
}

func (r *Recorder) AddSpacer(points int) {
	r.record("AddSpacer", points)
}

func (r *Recorder) AddPageBreak() {
	r.record("AddPageBreak")
}

func (r *Recorder) ConfigureHeaderFooter(header, footer string, showPageNumbers bool) {
	r.record("ConfigureHeaderFooter", header, footer, showPageNumbers)
}

func (r *Recorder) ToBytes() ([]byte, error) {
	r.record("ToBytes")
	return nil, nil
}
