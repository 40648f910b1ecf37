package render

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Resolve 按点号路径在嵌套数据中取值
// 路径段支持 name[idx] 形式的下标，键匹配先精确后大小写不敏感
// 任何一级缺失都返回 nil，绝不 panic：缺数据用 nil 表示，由下游区分
// nil 与 0/false/"" 这类"存在但为假"的值
func Resolve(data any, path string) any {
	if data == nil || path == "" {
		return nil
	}

	current := data
	for _, segment := range strings.Split(path, ".") {
		if current == nil {
			return nil
		}

		name, idx, hasIndex := splitIndex(segment)
		if name == "" {
			return nil
		}

		current = accessMember(current, name)
		if !hasIndex {
			continue
		}

		current = indexSequence(current, idx)
	}

	return current
}

// splitIndex 拆出 name[idx] 中的名字和下标
func splitIndex(segment string) (name string, idx int, ok bool) {
	open := strings.IndexByte(segment, '[')
	if open <= 0 || !strings.HasSuffix(segment, "]") {
		return segment, 0, false
	}

	n, err := strconv.Atoi(segment[open+1 : len(segment)-1])
	if err != nil {
		return segment, 0, false
	}
	return segment[:open], n, true
}

// accessMember 按名字访问当前节点的成员
// map 先精确匹配，再做大小写不敏感的回退扫描；结构体按字段名访问
func accessMember(node any, name string) any {
	switch m := node.(type) {
	case map[string]any:
		if v, ok := m[name]; ok {
			return v
		}
		// Go map 无序，回退扫描按排序后的键，保证解析结果确定
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if strings.EqualFold(k, name) {
				return m[k]
			}
		}
		return nil
	}

	rv := reflect.ValueOf(node)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		if v := rv.MapIndex(reflect.ValueOf(name)); v.IsValid() {
			return v.Interface()
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			if strings.EqualFold(k, name) {
				return rv.MapIndex(reflect.ValueOf(k)).Interface()
			}
		}
		return nil
	case reflect.Struct:
		if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
		f := rv.FieldByNameFunc(func(field string) bool {
			return strings.EqualFold(field, name)
		})
		if f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
		return nil
	default:
		return nil
	}
}

// indexSequence 对序列取下标，越界或非序列返回 nil
func indexSequence(node any, idx int) any {
	if node == nil || idx < 0 {
		return nil
	}

	if s, ok := node.([]any); ok {
		if idx >= len(s) {
			return nil
		}
		return s[idx]
	}

	rv := reflect.ValueOf(node)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if idx >= rv.Len() {
			return nil
		}
		return rv.Index(idx).Interface()
	default:
		return nil
	}
}

// toSequence 把任意值规整为序列：nil 为空，序列原样，标量包成单元素
func toSequence(value any) []any {
	if value == nil {
		return nil
	}

	if s, ok := value.([]any); ok {
		return s
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	default:
		return []any{value}
	}
}
