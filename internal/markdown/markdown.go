package markdown

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown 解析层。先用 goldmark 渲染为 HTML，再交给 goquery，
// 后续遍历都在 HTML 节点树上进行。启用的扩展：GFM 表格、脚注、
// YAML 元数据、自动标题锚点。

// Document 解析结果：HTML 节点树加文档元数据
type Document struct {
	HTML *goquery.Document
	Meta map[string]interface{}
}

// Parse 解析 Markdown 源文本
func Parse(src []byte) (*Document, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Footnote,
			meta.Meta,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := md.Convert(src, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("markdown 渲染失败: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("HTML 解析失败: %w", err)
	}

	return &Document{HTML: doc, Meta: meta.Get(ctx)}, nil
}

// BlockElements 返回文档顶层块级元素，按出现顺序排列。
// 遍历用下标推进，摘要等段落需要向前消费兄弟节点。
func (d *Document) BlockElements() []*goquery.Selection {
	var els []*goquery.Selection
	d.HTML.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		els = append(els, s)
	})
	return els
}
