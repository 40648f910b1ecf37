package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"ProjectName": "站前广场",
		"Year":        2025,
		"Contact":     map[string]any{"Name": "王工"},
	}

	assert.Equal(t, "项目：站前广场（2025）", Interpolate("项目：{ProjectName}（{Year}）", data))
	assert.Equal(t, "负责人 王工", Interpolate("负责人 {Contact.Name}", data))
}

func TestInterpolateUnresolvedIsEmpty(t *testing.T) {
	assert.Equal(t, "report for ", Interpolate("report for {Missing}", map[string]any{}))
}

func TestInterpolateNoPlaceholders(t *testing.T) {
	assert.Equal(t, "plain text", Interpolate("plain text", map[string]any{}))
}

func TestInterpolateUnclosedBrace(t *testing.T) {
	assert.Equal(t, "broken {text", Interpolate("broken {text", map[string]any{"text": "x"}))
}
