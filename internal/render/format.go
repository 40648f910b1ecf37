package render

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/internal/vocab"
)

// Format 把原始值按声明的格式转成显示字符串
// 格式化是显示层行为，必须全函数：任何输入都返回字符串，绝不报错
// 数值/日期解析失败一律退化为 fmt.Sprint，仅在 V(8) 留痕
func Format(value any, kind vocab.FormatKind, opts map[string]any) string {
	if value == nil {
		return optString(opts, "default", "")
	}

	switch kind {
	case vocab.FormatCurrency:
		f, ok := toFloat(value)
		if !ok {
			klog.V(8).Infof("货币格式化回退: value=%v", value)
			return fmt.Sprint(value)
		}
		decimals := optInt(opts, "decimals", 2)
		prefix := optString(opts, "prefix", "$")
		return prefix + groupThousands(strconv.FormatFloat(f, 'f', decimals, 64))

	case vocab.FormatNumber:
		f, ok := toFloat(value)
		if !ok {
			klog.V(8).Infof("数字格式化回退: value=%v", value)
			return fmt.Sprint(value)
		}
		if f == float64(int64(f)) {
			return groupThousands(strconv.FormatInt(int64(f), 10))
		}
		return groupThousands(strconv.FormatFloat(f, 'f', 2, 64))

	case vocab.FormatDecimal:
		f, ok := toFloat(value)
		if !ok {
			return fmt.Sprint(value)
		}
		return strconv.FormatFloat(f, 'f', optInt(opts, "decimals", 2), 64)

	case vocab.FormatPercent:
		f, ok := toFloat(value)
		if !ok {
			return fmt.Sprint(value)
		}
		decimals := optInt(opts, "decimals", 1)
		suffix := optString(opts, "suffix", "%")
		return strconv.FormatFloat(f, 'f', decimals, 64) + suffix

	case vocab.FormatDate:
		return formatDate(value, optString(opts, "format", "YYYY-MM-DD"), true)

	case vocab.FormatDateTime:
		return formatDate(value, optString(opts, "format", "YYYY-MM-DD HH:mm"), false)

	case vocab.FormatBoolean:
		if b, ok := value.(bool); ok {
			if b {
				return "Yes"
			}
			return "No"
		}
		return fmt.Sprint(value)

	default: // text
		if isTruthy(value) {
			return fmt.Sprint(value)
		}
		return ""
	}
}

// formatDate 日期格式化
// time.Time 直接套 token 格式；字符串尽力解析，失败时原样截断，绝不报错
func formatDate(value any, tokens string, dateOnly bool) string {
	switch v := value.(type) {
	case time.Time:
		return applyDateTokens(v, tokens)
	case *time.Time:
		if v == nil {
			return ""
		}
		return applyDateTokens(*v, tokens)
	case string:
		if t, ok := parseDate(v); ok {
			return applyDateTokens(t, tokens)
		}
		klog.V(8).Infof("日期解析回退: value=%q", v)
		if dateOnly && len(v) > 10 {
			// 截断点退到 rune 边界，避免切出非法 UTF-8
			cut := 10
			for cut > 0 && !utf8.RuneStart(v[cut]) {
				cut--
			}
			return v[:cut]
		}
		return v
	default:
		return fmt.Sprint(value)
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// applyDateTokens 把 YYYY/MM/DD/MMM/HH/mm 记号替换为对应的 Go layout
func applyDateTokens(t time.Time, tokens string) string {
	r := strings.NewReplacer(
		"YYYY", "2006",
		"MMM", "Jan",
		"MM", "01",
		"DD", "02",
		"HH", "15",
		"mm", "04",
	)
	return t.Format(r.Replace(tokens))
}

// groupThousands 给十进制数字串的整数部分加千分位
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}

	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// toFloat 数值强转，字符串按十进制解析
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// isTruthy 真值判断：nil、零值数字、false、空字符串/序列/映射为假
func isTruthy(value any) bool {
	if value == nil {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	}

	if f, ok := toFloat(value); ok {
		return f != 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

func optString(opts map[string]any, key, def string) string {
	if opts == nil {
		return def
	}
	if v, ok := opts[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func optInt(opts map[string]any, key string, def int) int {
	if opts == nil {
		return def
	}
	if v, ok := opts[key]; ok {
		if f, ok := toFloat(v); ok {
			return int(f)
		}
	}
	return def
}
