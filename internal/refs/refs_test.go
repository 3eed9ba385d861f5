package refs

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldmark 脚注扩展渲染出的 HTML 形态
const fixture = `<html><body>
<p>第一处引用<sup id="fnref:1"><a href="#fn:1" class="footnote-ref">1</a></sup>，
第二处引用<sup id="fnref:2"><a href="#fn:2" class="footnote-ref">2</a></sup>。</p>
<div class="footnotes" role="doc-endnotes">
<hr>
<ol>
<li id="fn:1"><p>张三. 某检测方法研究[J]. 计算机学报, 2020.&#160;<a href="#fnref:1" class="footnote-backref">&#8617;</a></p></li>
<li id="fn:2"><p>Smith J. VM detection survey[C]. IEEE, 2021.&#160;<a href="#fnref:2" class="footnote-backref">&#8617;</a></p></li>
</ol>
</div>
</body></html>`

func TestCollect(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)

	entries := Collect(doc)
	require.Len(t, entries, 2)

	// 按定义出现顺序编号，1 起
	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, "张三. 某检测方法研究[J]. 计算机学报, 2020.", entries[0].Text)
	assert.Equal(t, 2, entries[1].Index)
	assert.Equal(t, "Smith J. VM detection survey[C]. IEEE, 2021.", entries[1].Text)

	// 正文脚注标记被改写为字面 [^N]
	body := doc.Find("p").First().Text()
	assert.Contains(t, body, "[^1]")
	assert.Contains(t, body, "[^2]")
	assert.Equal(t, 0, doc.Find("sup").Length())

	// 脚注列表已摘除，主遍历不会再碰到
	assert.Equal(t, 0, doc.Find("div.footnotes").Length())
}

func TestCollectNoFootnotes(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>无脚注</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, Collect(doc))
}

func TestCollectStripsBacklinkOnly(t *testing.T) {
	// 条目文本末尾不应残留回链符号
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)
	for _, e := range Collect(doc) {
		assert.False(t, strings.ContainsRune(e.Text, '↩'))
	}
}
