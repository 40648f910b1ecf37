package render

import (
	"fmt"
	"strings"
)

// Interpolate 把文本中的 {path} 占位符替换为解析结果
// 解析不到替换为空串；不支持转义，写不出字面大括号——这是刻意保持的
// 纯文本替换，不是模板语言
func Interpolate(text string, data any) string {
	if !strings.ContainsRune(text, '{') {
		return text
	}

	var b strings.Builder
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			b.WriteString(text)
			break
		}

		close := strings.IndexByte(text[open:], '}')
		if close < 0 {
			b.WriteString(text)
			break
		}
		close += open

		b.WriteString(text[:open])

		path := text[open+1 : close]
		if v := Resolve(data, path); v != nil {
			b.WriteString(fmt.Sprint(v))
		}

		text = text[close+1:]
	}

	return b.String()
}
