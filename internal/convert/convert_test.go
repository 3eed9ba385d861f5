package convert

import (
	"archive/zip"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-thesis-docx/internal/config"
	"github.com/nerdneilsfield/go-thesis-docx/internal/style"
)

func testConfig() *config.Config {
	return &config.Config{
		ArticleHeader: "测试大学学位论文",
		ImageWidthCM:  style.DefaultImageWidthCM,
		Mermaid: config.MermaidConfig{
			Command:        "mmdc-definitely-not-installed",
			TimeoutSeconds: 5,
			Width:          1200,
			Height:         800,
			Scale:          1.5,
		},
	}
}

// convertToParts 跑一次完整转换并把生成的 docx 按 zip 条目读回
func convertToParts(t *testing.T, src string) (Stats, map[string]*etree.Document) {
	t.Helper()

	out := filepath.Join(t.TempDir(), "out.docx")
	c := New(testConfig(), zap.NewNop())
	stats, err := c.Convert(context.Background(), []byte(src), out)
	require.NoError(t, err)

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()

	parts := make(map[string]*etree.Document)
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".xml") && !strings.HasSuffix(f.Name, ".rels") {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		doc := etree.NewDocument()
		_, err = doc.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err, "解析 %s", f.Name)
		parts[f.Name] = doc
	}
	return stats, parts
}

// partText 汇总一个部件里所有 w:t 的文字
func partText(doc *etree.Document) string {
	var b strings.Builder
	for _, t := range doc.FindElements("//t") {
		b.WriteString(t.Text())
	}
	return b.String()
}

const canonicalManuscript = `# 摘要

本文研究了文档转换技术[^1]。

**关键词**：文档转换；排版

# ABSTRACT

This thesis studies document conversion[^2].

# 第一章 引言

## 1.1 研究背景

随着信息技术的发展，论文排版日益重要[^1]。

| [表1.1 工具对比] 工具 | 语言 |
|---|---|
| pandoc | Haskell |

# 参考文献

# 致谢

感谢各位老师的指导。

[^1]: 张三. 文档转换研究[J]. 计算机学报, 2023.
[^2]: Smith J. Document Processing. ACM, 2022.
`

func TestConvertCanonical(t *testing.T) {
	stats, parts := convertToParts(t, canonicalManuscript)

	assert.Equal(t, 1, stats.Chapters)
	assert.Equal(t, 1, stats.Sections)
	assert.Equal(t, 1, stats.Tables)
	assert.Equal(t, 2, stats.References)

	doc := parts["word/document.xml"]
	require.NotNil(t, doc)

	// 前置分区 + 正文分区，恰好两个 sectPr
	assert.Len(t, doc.FindElements("//sectPr"), 2)

	text := partText(doc)
	assert.Contains(t, text, "摘   要")
	assert.Contains(t, text, "目   录")
	assert.Contains(t, text, "第一章")
	assert.Contains(t, text, "引言")

	// 脚注引用改写成编号上标，文献条目按定义顺序排出
	assert.Contains(t, text, "[1]")
	assert.Contains(t, text, "[2]")
	assert.Less(t, strings.Index(text, "[1] 张三"), strings.Index(text, "[2] Smith"))
	assert.Contains(t, text, "张三. 文档转换研究[J]. 计算机学报, 2023.")
	assert.NotContains(t, text, "[^1]")

	// 目录域指令
	tocFound := false
	for _, it := range doc.FindElements("//instrText") {
		if strings.Contains(it.Text(), `TOC \o "1-3"`) {
			tocFound = true
		}
	}
	assert.True(t, tocFound, "缺少 TOC 域")

	// 正文分区的页脚带 PAGE 域，页眉带论文标题
	footerFound := false
	for name, p := range parts {
		if !strings.HasPrefix(name, "word/footer") {
			continue
		}
		for _, it := range p.FindElements("//instrText") {
			if strings.TrimSpace(it.Text()) == "PAGE" {
				footerFound = true
			}
		}
	}
	assert.True(t, footerFound, "页脚缺少 PAGE 域")

	headerFound := false
	for name, p := range parts {
		if strings.HasPrefix(name, "word/header") &&
			strings.Contains(partText(p), "测试大学学位论文") {
			headerFound = true
		}
	}
	assert.True(t, headerFound, "页眉缺少论文标题")
}

func TestConvertHeaderOverride(t *testing.T) {
	src := "---\nheader: 另一所大学\n---\n\n# 第一章 引言\n\n正文。\n"
	_, parts := convertToParts(t, src)

	found := false
	for name, p := range parts {
		if strings.HasPrefix(name, "word/header") &&
			strings.Contains(partText(p), "另一所大学") {
			found = true
		}
	}
	assert.True(t, found, "元数据 header 应覆盖配置")
}

func TestConvertMissingImage(t *testing.T) {
	src := "# 第一章 引言\n\n![图1.1 系统架构](no-such-dir/missing.png)\n"
	stats, parts := convertToParts(t, src)

	// 图片缺失仍要输出题注，保持图号序列
	assert.Equal(t, 1, stats.Figures)
	assert.GreaterOrEqual(t, stats.Warnings, 1)
	text := partText(parts["word/document.xml"])
	assert.Contains(t, text, "图1.1")
	assert.Contains(t, text, "系统架构")
}

func TestConvertTableWithoutCaption(t *testing.T) {
	src := "# 第一章 引言\n\n| 名称 | 值 |\n|---|---|\n| a | 1 |\n"
	stats, parts := convertToParts(t, src)

	assert.Equal(t, 1, stats.Tables)
	assert.GreaterOrEqual(t, stats.Warnings, 1)
	text := partText(parts["word/document.xml"])
	assert.Contains(t, text, "表?.?")
	assert.Contains(t, text, "名称")
}

func TestConvertMermaidFailure(t *testing.T) {
	src := "# 第一章 引言\n\n```mermaid\n%%图2.1 处理流程\ngraph TD\nA-->B\n```\n"
	stats, parts := convertToParts(t, src)

	assert.GreaterOrEqual(t, stats.Warnings, 1)
	assert.Zero(t, stats.Figures)
	text := partText(parts["word/document.xml"])
	assert.Contains(t, text, "[Failed to render Mermaid diagram: 图2.1 处理流程]")
}

func TestConvertMermaidWithoutCaption(t *testing.T) {
	src := "# 第一章 引言\n\n```mermaid\ngraph TD\nA-->B\n```\n"
	stats, parts := convertToParts(t, src)

	assert.GreaterOrEqual(t, stats.Warnings, 1)
	text := partText(parts["word/document.xml"])
	assert.Contains(t, text, "[Mermaid diagram - caption not found]")
}

func TestConvertCodeBlock(t *testing.T) {
	src := "# 第一章 引言\n\n```go\nfunc main() {\n\tprintln(1)\n}\n```\n"
	stats, parts := convertToParts(t, src)

	assert.Equal(t, 1, stats.CodeBlocks)
	text := partText(parts["word/document.xml"])
	assert.Contains(t, text, "func main() {")
}

func TestConvertUnemittedReferences(t *testing.T) {
	// 有脚注定义但没有参考文献章：照常转换，只记警告
	src := "# 第一章 引言\n\n见文献[^1]。\n\n[^1]: 某文献.\n"
	stats, parts := convertToParts(t, src)

	assert.GreaterOrEqual(t, stats.Warnings, 1)
	text := partText(parts["word/document.xml"])
	assert.NotContains(t, text, "某文献")
}

// TestConverterReuse 同一个转换器连续转换两次，状态不得串场
func TestConverterReuse(t *testing.T) {
	src := "# 第一章 引言\n\n见文献[^1]。\n\n# 参考文献\n\n[^1]: 某文献.\n"
	c := New(testConfig(), zap.NewNop())

	dir := t.TempDir()
	first, err := c.Convert(context.Background(), []byte(src), filepath.Join(dir, "a.docx"))
	require.NoError(t, err)
	second, err := c.Convert(context.Background(), []byte(src), filepath.Join(dir, "b.docx"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, second.Chapters)
	assert.Equal(t, 2, second.TOCEntries)
	assert.Equal(t, 1, second.References)

	// 第二份文档依然是前置 + 正文两节
	zr, err := zip.OpenReader(filepath.Join(dir, "b.docx"))
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		doc := etree.NewDocument()
		_, err = doc.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Len(t, doc.FindElements("//sectPr"), 2)
	}
}

func TestClassifyH1(t *testing.T) {
	cases := map[string]sectionKind{
		"摘要":      kindAbstractCN,
		"ABSTRACT": kindAbstractEN,
		"第一章 引言":  kindChapter,
		"第12章 总结": kindChapter,
		"参考文献":    kindReferences,
		"致谢":      kindAcknowledgments,
		"附录A":     kindGeneric,
	}
	for title, want := range cases {
		assert.Equal(t, want, classifyH1(title), title)
	}
}

func TestSplitHeadingNumber(t *testing.T) {
	num, rest := splitHeadingNumber("1.1 研究背景")
	assert.Equal(t, "1.1", num)
	assert.Equal(t, "研究背景", rest)

	num, rest = splitHeadingNumber("研究背景")
	assert.Empty(t, num)
	assert.Equal(t, "研究背景", rest)
}
