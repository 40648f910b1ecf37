package docbuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/vocab"
)

func TestMarkdownBuilderDocument(t *testing.T) {
	b := NewMarkdownBuilder(model.DefaultTheme())
	b.ConfigureHeaderFooter("页眉", "页脚", true)
	b.AddTitle("月度报告", "三月")
	b.AddHeading("概况", 2)
	b.AddFieldGrid([]GridEntry{{Label: "状态", Value: "进行中"}}, 2, true, false)
	b.AddDataTable(
		[]TableColumn{{Label: "金额", Align: vocab.AlignRight}},
		[][]string{{"$10.00"}, {"$5.00"}},
		true, false, false,
		[]string{"$15.00"},
	)
	b.AddDivider()

	out, err := b.ToBytes()
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "> 页眉\n"))
	assert.Contains(t, doc, "# 月度报告\n")
	assert.Contains(t, doc, "_三月_\n")
	assert.Contains(t, doc, "### 概况\n")
	assert.Contains(t, doc, "**状态:** 进行中\n")
	assert.Contains(t, doc, "| 金额 |\n| ---: |\n")
	assert.Contains(t, doc, "| $10.00 |\n| $5.00 |\n| **$15.00** |\n")
	assert.Contains(t, doc, "---\n")
	assert.True(t, strings.HasSuffix(doc, "> 页脚\n"))
}

func TestMarkdownBuilderRowNumbers(t *testing.T) {
	b := NewMarkdownBuilder(model.Theme{})
	b.AddDataTable(
		[]TableColumn{{Label: "项"}},
		[][]string{{"a"}, {"b"}},
		true, true, false, nil,
	)

	out, err := b.ToBytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "| 1 | a |\n| 2 | b |\n")
}

func TestMarkdownBuilderHeadingLevelClamped(t *testing.T) {
	b := NewMarkdownBuilder(model.Theme{})
	b.AddHeading("深层", 9)

	out, err := b.ToBytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "##### 深层\n")
}
