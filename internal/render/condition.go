package render

import (
	"fmt"
	"reflect"
	"strings"

	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/internal/model"
	"github.com/openreportkit/backend/internal/vocab"
)

// Evaluate 判断节的可见性条件
// 先解析 condition.field，再按运算符比较；不可比较的组合一律为 false
// 未知运算符返回 true（放行）：这是沿用的既有行为，配置写错时节不会
// 消失，风险已在设计文档中标注，勿在此处收紧
func Evaluate(cond *model.Condition, data any) bool {
	if cond == nil {
		return true
	}

	value := Resolve(data, cond.Field)

	switch cond.Op {
	case vocab.OpExists:
		return value != nil

	case vocab.OpNotEmpty:
		return !isEmpty(value)

	case vocab.OpEq:
		return valuesEqual(value, cond.Value)

	case vocab.OpNe:
		return !valuesEqual(value, cond.Value)

	case vocab.OpGt:
		cmp, ok := compare(value, cond.Value)
		return ok && cmp > 0

	case vocab.OpLt:
		cmp, ok := compare(value, cond.Value)
		return ok && cmp < 0

	case vocab.OpGte:
		cmp, ok := compare(value, cond.Value)
		return ok && cmp >= 0

	case vocab.OpLte:
		cmp, ok := compare(value, cond.Value)
		return ok && cmp <= 0

	case vocab.OpContains:
		if !isTruthy(value) {
			return false
		}
		return strings.Contains(fmt.Sprint(value), fmt.Sprint(cond.Value))

	case vocab.OpIn:
		for _, candidate := range toSequence(cond.Value) {
			if valuesEqual(value, candidate) {
				return true
			}
		}
		return false

	default:
		klog.V(6).Infof("未知条件运算符，按可见处理: op=%s field=%s", cond.Op, cond.Field)
		return true
	}
}

// isEmpty 空值判断：nil、空字符串、零长度序列/映射为空
// 0 和 false 是"存在但为假"的值，不算空
func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	if s, ok := value.(string); ok {
		return s == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// valuesEqual 结构相等，数字跨类型按数值比较（JSON 解码出的都是 float64）
// 只有双方都是真正的数字类型才走数值比较，"5" 和 5 不相等
func valuesEqual(a, b any) bool {
	if af, ok := numericValue(a); ok {
		if bf, ok := numericValue(b); ok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

// numericValue 仅对数字类型取数值，字符串和布尔不参与跨类型比较
func numericValue(v any) (float64, bool) {
	switch v.(type) {
	case string, bool:
		return 0, false
	}
	return toFloat(v)
}

// compare 序比较：双方都是数字按数值，都是字符串按字典序，否则不可比
func compare(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), true
	}

	return 0, false
}
