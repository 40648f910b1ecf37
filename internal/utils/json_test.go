package utils

import "testing"

// TestExtractJSONFromProse 验证从带说明文字的回复中提取 JSON
func TestExtractJSONFromProse(t *testing.T) {
	content := "好的，模板如下：\n```json\n{\"name\":\"发票汇总\",\"sections\":[{\"kind\":\"title\"}]}\n```\n需要调整请告诉我。"

	got := ExtractJSON(content)
	want := `{"name":"发票汇总","sections":[{"kind":"title"}]}`
	if got != want {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

// TestExtractJSONNested 验证嵌套花括号按配对截取
func TestExtractJSONNested(t *testing.T) {
	content := `前缀 {"a":{"b":{"c":1}}} 后缀 {"d":2}`

	got := ExtractJSON(content)
	if got != `{"a":{"b":{"c":1}}}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

// TestExtractJSONNoObject 没有 JSON 时原样返回
func TestExtractJSONNoObject(t *testing.T) {
	content := "这里没有任何结构化内容"
	if got := ExtractJSON(content); got != content {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestToJSON(t *testing.T) {
	got := ToJSON(map[string]int{"a": 1})
	if got != `{"a":1}` {
		t.Fatalf("unexpected json: %q", got)
	}
}
