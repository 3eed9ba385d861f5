package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFigure(t *testing.T) {
	tests := []struct {
		name  string
		alt   string
		label string
		body  string
		ok    bool
	}{
		{"标准格式", "图2.1 某结构示意图", "图2.1", "某结构示意图", true},
		{"序号带空格", "图 3.2 检测流程", "图 3.2", "检测流程", true},
		{"不合格式", "一张没有序号的图", UnknownFigureLabel, "一张没有序号的图", false},
		{"空 alt", "", UnknownFigureLabel, "Untitled Image", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := ParseFigure(tt.alt)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, Figure, ref.Kind)
			assert.Equal(t, tt.label, ref.Label)
			assert.Equal(t, tt.body, ref.Body)
		})
	}
}

func TestParseTableCell(t *testing.T) {
	ref, clean, ok := ParseTableCell("[表2.1 典型虚拟化环境的物理前缀特征]虚拟化平台")
	assert.True(t, ok)
	assert.Equal(t, Table, ref.Kind)
	assert.Equal(t, "表2.1", ref.Label)
	assert.Equal(t, "典型虚拟化环境的物理前缀特征", ref.Body)
	assert.Equal(t, "虚拟化平台", clean)
}

func TestParseTableCellMissingCaption(t *testing.T) {
	// 没有题注约定的表格仍要以占位序号渲染，不能丢弃
	ref, clean, ok := ParseTableCell("虚拟化平台")
	assert.False(t, ok)
	assert.Equal(t, UnknownTableLabel, ref.Label)
	assert.Equal(t, "虚拟化平台", clean)
}

func TestParseTableCellMalformedNumber(t *testing.T) {
	ref, clean, ok := ParseTableCell("[表格说明]列一")
	assert.False(t, ok)
	assert.Equal(t, UnknownTableLabel, ref.Label)
	assert.Equal(t, "表格说明", ref.Body)
	assert.Equal(t, "列一", clean)
}

func TestParseDiagram(t *testing.T) {
	src := "%%图3.1 某功能流程图\ngraph TD\n  A --> B\n"
	ref, rest, ok := ParseDiagram(src)
	assert.True(t, ok)
	assert.Equal(t, "图3.1", ref.Label)
	assert.Equal(t, "某功能流程图", ref.Body)
	assert.Equal(t, "graph TD\n  A --> B\n", rest)
}

func TestParseDiagramNoCaption(t *testing.T) {
	src := "graph TD\n  A --> B\n"
	ref, rest, ok := ParseDiagram(src)
	assert.False(t, ok)
	assert.Equal(t, UnknownFigureLabel, ref.Label)
	assert.Equal(t, src, rest)
}
