package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNestedMap(t *testing.T) {
	data := map[string]any{"A": map[string]any{"B": 1}}
	assert.Equal(t, 1, Resolve(data, "A.B"))
}

func TestResolveCaseInsensitiveFallback(t *testing.T) {
	data := map[string]any{"a": map[string]any{"b": 1}}
	assert.Equal(t, 1, Resolve(data, "A.B"), "键大小写不同时应回退匹配")

	// 精确匹配优先于大小写回退
	data = map[string]any{"Amount": 1, "amount": 2}
	assert.Equal(t, 1, Resolve(data, "Amount"))
}

func TestResolveIndexedSegment(t *testing.T) {
	data := map[string]any{"Items": []any{map[string]any{"X": 5}}}
	assert.Equal(t, 5, Resolve(data, "Items[0].X"))
}

func TestResolveIndexOutOfRange(t *testing.T) {
	data := map[string]any{"Items": []any{1, 2}}
	assert.Nil(t, Resolve(data, "Items[5]"))
	assert.Nil(t, Resolve(data, "Items[-1]"))
}

func TestResolveIndexOnNonSequence(t *testing.T) {
	data := map[string]any{"Items": 42}
	assert.Nil(t, Resolve(data, "Items[0]"))
}

func TestResolveMissingPathNeverPanics(t *testing.T) {
	assert.Nil(t, Resolve(map[string]any{}, "Missing.Path"))
	assert.Nil(t, Resolve(nil, "A.B"))
	assert.Nil(t, Resolve(map[string]any{"A": nil}, "A.B.C"))
}

func TestResolveNullIsNotFalsy(t *testing.T) {
	// 存在但为假的值要原样返回，不能和缺失混为一谈
	data := map[string]any{"Zero": 0, "False": false, "Empty": ""}
	assert.Equal(t, 0, Resolve(data, "Zero"))
	assert.Equal(t, false, Resolve(data, "False"))
	assert.Equal(t, "", Resolve(data, "Empty"))
}

func TestResolveStructFields(t *testing.T) {
	type project struct {
		Name   string
		Amount float64
	}
	data := map[string]any{"Project": project{Name: "办公楼改造", Amount: 120000}}

	assert.Equal(t, "办公楼改造", Resolve(data, "Project.Name"))
	assert.Equal(t, 120000.0, Resolve(data, "Project.amount"), "结构体字段也应支持大小写回退")
	assert.Nil(t, Resolve(data, "Project.Missing"))
}

func TestResolveTypedSlice(t *testing.T) {
	data := map[string]any{"Nums": []int{7, 8, 9}}
	assert.Equal(t, 8, Resolve(data, "Nums[1]"))
}
