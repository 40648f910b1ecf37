package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreportkit/backend/internal/vocab"
)

func TestSectionMarshalEmitsOnlyKindConfig(t *testing.T) {
	s := Section{
		Kind:  vocab.SectionTitle,
		Order: 1,
		Config: TitleConfig{
			Text:     "月度报告",
			Subtitle: "{ProjectName}",
		},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "title", raw["kind"])
	assert.Contains(t, raw, "title_config")
	assert.NotContains(t, raw, "header_config")
}

func TestSectionRoundTrip(t *testing.T) {
	original := Section{
		Kind:      vocab.SectionDataTable,
		Order:     3,
		Condition: &Condition{Field: "Items", Op: vocab.OpNotEmpty},
		Config: DataTableConfig{
			Source:     "Items",
			ShowHeader: true,
			Totals:     []string{"Amount"},
			Columns: []ColumnDef{
				{FieldDef: FieldDef{Path: "Amount", Format: vocab.FormatCurrency}, Align: vocab.AlignRight},
			},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Section
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestSectionUnmarshalIgnoresStrayConfigs(t *testing.T) {
	// kind 之外多带的配置不参与解码，渲染只认 kind 对应的那份
	raw := `{
		"kind": "header",
		"order": 1,
		"header_config": {"text": "进度", "level": 2},
		"text_config": {"content": "stray"}
	}`

	var s Section
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, HeaderConfig{Text: "进度", Level: 2}, s.Config)
}

func TestSectionUnmarshalMissingKind(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"order": 1}`), &s)
	assert.Error(t, err)
}

func TestSectionUnmarshalMissingConfig(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"kind": "title", "order": 1}`), &s)
	assert.ErrorContains(t, err, "title_config")
}

func TestSectionUnmarshalUnknownKind(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"kind": "hologram", "order": 1}`), &s)
	assert.ErrorContains(t, err, "unknown section kind")
}

func TestSectionUnmarshalBareDivider(t *testing.T) {
	var s Section
	require.NoError(t, json.Unmarshal([]byte(`{"kind": "divider", "order": 9}`), &s))
	assert.Equal(t, DividerConfig{}, s.Config)

	require.NoError(t, json.Unmarshal([]byte(`{"kind": "spacer", "order": 9}`), &s))
	assert.Equal(t, SpacerConfig{}, s.Config)
}

func TestUnmarshalTemplateMalformed(t *testing.T) {
	_, err := UnmarshalTemplate([]byte(`{not json`))
	assert.ErrorContains(t, err, "malformed template")
}

func TestTemplateRoundTrip(t *testing.T) {
	tpl := &ReportTemplate{
		Name:   "发票汇总",
		Entity: "invoice",
		Theme:  DefaultTheme(),
		Sections: []Section{
			{Kind: vocab.SectionTitle, Order: 0, Config: TitleConfig{Text: "发票汇总"}},
			{Kind: vocab.SectionPageBreak, Order: 10, Config: PageBreakConfig{}},
		},
	}

	data, err := MarshalTemplate(tpl)
	require.NoError(t, err)

	decoded, err := UnmarshalTemplate(data)
	require.NoError(t, err)
	assert.Equal(t, tpl, decoded)
}

func TestAppendSectionOrders(t *testing.T) {
	tpl := &ReportTemplate{}
	tpl.AppendSection(TitleConfig{Text: "a"}, nil)
	tpl.AppendSection(HeaderConfig{Text: "b"}, nil)

	require.Len(t, tpl.Sections, 2)
	assert.Equal(t, 10, tpl.Sections[0].Order)
	assert.Equal(t, 20, tpl.Sections[1].Order)
	assert.Equal(t, vocab.SectionHeader, tpl.Sections[1].Kind)
}
