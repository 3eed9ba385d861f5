package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `---
header: 某大学学位论文
---

# 第一章 引言

正文段落，包含引用[^1]。

| [表1.1 样例]列一 | 列二 |
|------|------|
| a | b |

[^1]: 某参考文献条目
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)

	// 元数据
	assert.Equal(t, "某大学学位论文", doc.Meta["header"])

	// 块级元素：h1、p、table、脚注 div
	assert.Equal(t, 1, doc.HTML.Find("h1").Length())
	assert.Equal(t, 1, doc.HTML.Find("table").Length())
	assert.Equal(t, 1, doc.HTML.Find("div.footnotes").Length())
	assert.GreaterOrEqual(t, doc.HTML.Find("sup").Length(), 1)

	els := doc.BlockElements()
	assert.NotEmpty(t, els)
}

func TestParseAutoHeadingID(t *testing.T) {
	doc, err := Parse([]byte("# 第一章 引言\n"))
	require.NoError(t, err)
	id, ok := doc.HTML.Find("h1").Attr("id")
	assert.True(t, ok)
	assert.NotEmpty(t, id)
}
