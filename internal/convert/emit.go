package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-thesis-docx/internal/caption"
	"github.com/nerdneilsfield/go-thesis-docx/internal/docx"
	"github.com/nerdneilsfield/go-thesis-docx/internal/segment"
	"github.com/nerdneilsfield/go-thesis-docx/internal/style"
)

// emitBlock 处理下标 i 处的块级元素，返回下一个待处理下标。
// 只有摘要分区会向前消费若干兄弟段落，其余块都是一进一出。
func (c *Converter) emitBlock(ctx context.Context, els []*goquery.Selection, i int) int {
	el := els[i]
	switch goquery.NodeName(el) {
	case "h1":
		return c.emitH1(ctx, els, i)
	case "h2":
		c.emitNumberedHeading(strings.TrimSpace(el.Text()), 2)
	case "h3":
		c.emitNumberedHeading(strings.TrimSpace(el.Text()), 3)
	case "h4":
		c.emitMinorHeading(strings.TrimSpace(el.Text()))
	case "h5":
		// 五级小标题按正文排，序号 ⑴⑵⑶ 由作者手工书写
		c.emitPlainParagraph(strings.TrimSpace(el.Text()))
	case "p":
		c.emitParagraph(el)
	case "ul":
		c.emitList(el, false)
	case "ol":
		c.emitList(el, true)
	case "table":
		c.emitTable(el)
	case "pre":
		c.emitCode(ctx, el)
	case "hr":
		// 分隔线不产生任何输出
	default:
		c.log.Debug("跳过未识别的块级元素", zap.String("tag", goquery.NodeName(el)))
	}
	return i + 1
}

// emitH1 一级标题驱动分区转换
func (c *Converter) emitH1(ctx context.Context, els []*goquery.Selection, i int) int {
	title := strings.TrimSpace(els[i].Text())
	next := i + 1

	switch classifyH1(title) {
	case kindAbstractCN:
		c.emitFrontTitle("摘   要", style.FontHeiti)
		next = c.consumeAbstract(els, next, style.For(style.AbstractCNBody))
		c.spacer()

	case kindAbstractEN:
		// 中文摘要之后空行，再排英文摘要
		c.spacer()
		c.emitFrontTitle("ABSTRACT", style.FontTimes)
		next = c.consumeAbstract(els, next, style.For(style.AbstractENBody))
		c.emitTOC()
		// 前置部分到此结束，正文另起一节
		c.doc.AddSection()
		c.mainStarted = true

	case kindChapter:
		c.ensureMainMatter()
		label, rest := "", title
		if m := chapterRe.FindStringSubmatch(title); m != nil {
			label, rest = m[1], m[2]
		}
		c.emitChapterHeading(label, rest, true)
		c.toc = append(c.toc, TOCEntry{Level: 1, Text: title})
		c.stats.Chapters++

	case kindReferences:
		c.ensureMainMatter()
		c.doc.AddParagraph().AddPageBreak()
		c.emitChapterHeading("", title, false)
		c.toc = append(c.toc, TOCEntry{Level: 1, Text: title})
		for _, e := range c.refs {
			c.emitReferenceEntry(strconv.Itoa(e.Index), e.Text)
		}
		c.refsEmitted = true
		c.stats.References = len(c.refs)

	case kindAcknowledgments:
		c.ensureMainMatter()
		c.emitChapterHeading("", title, false)
		c.toc = append(c.toc, TOCEntry{Level: 1, Text: title})

	default:
		// 未约定的一级标题按章标题样式排，不强制换页
		c.ensureMainMatter()
		c.emitChapterHeading("", title, false)
		c.toc = append(c.toc, TOCEntry{Level: 1, Text: title})
	}
	return next
}

// consumeAbstract 消费摘要正文：紧随其后的段落，直到下一个一级标题
func (c *Converter) consumeAbstract(els []*goquery.Selection, i int, s style.Style) int {
	for i < len(els) && goquery.NodeName(els[i]) != "h1" {
		if goquery.NodeName(els[i]) == "p" {
			text := strings.TrimSpace(els[i].Text())
			if text != "" {
				c.emitStyledParagraph(text, s, segment.RoleBody)
			}
		}
		i++
	}
	return i
}

// emitFrontTitle 前置部分的标题行（摘要 / ABSTRACT）
func (c *Converter) emitFrontTitle(text, asciiFont string) {
	p := c.doc.AddParagraph()
	p.SetFormat(docx.Format{Alignment: style.AlignCenter, SpaceAfterPT: style.SizeThree})
	p.AddRun(text, docx.RunFormat{
		EastAsia: style.FontHeiti,
		ASCII:    asciiFont,
		SizePT:   style.SizeThree,
		Bold:     true,
	})
}

// emitChapterHeading 章级标题：编号用西文数字字体，标题用黑体
func (c *Converter) emitChapterHeading(label, title string, pageBreak bool) {
	s := style.For(style.ChapterTitle)
	p := c.doc.AddParagraph()
	f := docx.FormatFromStyle(s)
	f.PageBreakBefore = pageBreak
	f.OutlineLevel = 1
	p.SetFormat(f)
	if label != "" {
		p.AddRun(label+" ", docx.RunFormat{
			EastAsia: s.EastAsia, ASCII: s.ASCII, SizePT: s.Size, Bold: s.Bold,
		})
	}
	c.headingRuns(p, title, s)
}

// emitNumberedHeading 节/小节标题：前导编号拆出来单独用西文字体
func (c *Converter) emitNumberedHeading(title string, level int) {
	role := style.SectionTitle
	if level == 3 {
		role = style.SubsectionTitle
	}
	s := style.For(role)
	p := c.doc.AddParagraph()
	f := docx.FormatFromStyle(s)
	f.OutlineLevel = level
	p.SetFormat(f)

	num, rest := splitHeadingNumber(title)
	if num != "" {
		p.AddRun(num+" ", docx.RunFormat{
			EastAsia: s.EastAsia, ASCII: s.ASCII, SizePT: s.Size, Bold: s.Bold,
		})
	}
	c.headingRuns(p, rest, s)

	c.toc = append(c.toc, TOCEntry{Level: level, Text: title})
	c.stats.Sections++
}

func (c *Converter) emitMinorHeading(title string) {
	s := style.For(style.MinorHeading)
	p := c.doc.AddParagraph()
	p.SetFormat(docx.FormatFromStyle(s))
	c.headingRuns(p, title, s)
}

// headingRuns 标题文字：西文子串也用标题的中文字体渲染，
// 编号类标记一律不上标
func (c *Converter) headingRuns(p *docx.Paragraph, text string, s style.Style) {
	for _, r := range segment.Split(text, segment.RoleHeading) {
		p.AddRun(r.Text, docx.RunFormat{
			EastAsia: s.EastAsia, ASCII: s.EastAsia,
			SizePT: s.Size, Bold: s.Bold, Italic: s.Italic,
		})
	}
}

// emitParagraph 普通段落；含图片的段落走插图路径
func (c *Converter) emitParagraph(el *goquery.Selection) {
	if img := el.Find("img").First(); img.Length() > 0 {
		alt := img.AttrOr("alt", "")
		src := img.AttrOr("src", "")
		ref, ok := caption.ParseFigure(alt)
		if !ok {
			c.log.Warn("插图题注不合 图X.Y 约定", zap.String("alt", alt))
			c.stats.Warnings++
		}
		c.emitImage(src, ref)
		return
	}

	text := strings.TrimSpace(el.Text())
	if text == "" {
		return
	}
	c.emitStyledParagraph(text, style.For(style.Body), segment.RoleBody)
}

// emitPlainParagraph 正文字体、无首行缩进的左对齐段落
func (c *Converter) emitPlainParagraph(text string) {
	if text == "" {
		return
	}
	s := style.For(style.Body)
	p := c.doc.AddParagraph()
	p.SetFormat(docx.Format{Alignment: style.AlignLeft, Line: s.Line})
	c.textRuns(p, text, s, segment.RoleBody)
}

// emitStyledParagraph 按样式排一个段落并做中西文切分
func (c *Converter) emitStyledParagraph(text string, s style.Style, role segment.Role) {
	p := c.doc.AddParagraph()
	p.SetFormat(docx.FormatFromStyle(s))
	c.textRuns(p, text, s, role)
}

// textRuns 把切分结果写进段落：中文子串用中文字体对，引文标记
// 用西文数字字体并按需上标
func (c *Converter) textRuns(p *docx.Paragraph, text string, s style.Style, role segment.Role) {
	for _, r := range segment.Split(text, role) {
		var f docx.RunFormat
		switch {
		case r.Superscript:
			f = docx.RunFormat{
				EastAsia: s.EastAsia, ASCII: style.FontTimes,
				SizePT: s.Size, Bold: s.Bold, Superscript: true,
			}
		case r.Script:
			f = docx.RunFormatFromStyle(s, true)
		default:
			f = docx.RunFormatFromStyle(s, false)
		}
		p.AddRun(r.Text, f)
	}
}

// emitImage 嵌入插图。图片缺失或嵌入失败时仍输出题注占位，
// 保证文内图号与题注序列一致。
func (c *Converter) emitImage(src string, ref caption.Ref) {
	c.stats.Figures++

	resolved := src
	if src != "" && !filepath.IsAbs(src) && c.baseDir != "" {
		resolved = filepath.Join(c.baseDir, src)
	}
	if _, err := os.Stat(resolved); err != nil {
		c.log.Warn("找不到图片文件，只输出题注", zap.String("src", src))
		c.stats.Warnings++
		c.emitCaption(ref)
		c.spacer()
		return
	}

	p := c.doc.AddParagraph()
	p.SetFormat(docx.Format{Alignment: style.AlignCenter})
	if err := p.AddImage(resolved, c.cfg.ImageWidthCM); err != nil {
		c.log.Warn("嵌入图片失败", zap.String("src", src), zap.Error(err))
		c.stats.Warnings++
	}
	c.emitCaption(ref)
	c.spacer()
}

// emitCaption 题注行：序号用西文数字字体，题注正文用楷体
func (c *Converter) emitCaption(ref caption.Ref) {
	s := style.For(style.Caption)
	p := c.doc.AddParagraph()
	p.SetFormat(docx.FormatFromStyle(s))
	p.AddRun(ref.Label+" ", docx.RunFormat{
		EastAsia: s.EastAsia, ASCII: style.FontTimes, SizePT: s.Size,
	})
	c.textRuns(p, ref.Body, s, segment.RoleBody)
}

// spacer 图表之后的空行
func (c *Converter) spacer() {
	p := c.doc.AddParagraph()
	p.SetFormat(docx.Format{Line: style.Spacing125, SpaceAfterPT: 6})
}

// emitList 列表。形如 [^N]: 正文 的列表项是文献源条目，按参考
// 文献样式悬挂缩进；其余项按编号/项目符号前缀排成普通段落。
func (c *Converter) emitList(el *goquery.Selection, ordered bool) {
	idx := 0
	el.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		text := strings.TrimSpace(li.Text())
		if text == "" {
			return
		}
		if m := footnoteDefRe.FindStringSubmatch(text); m != nil {
			c.emitReferenceEntry(m[1], strings.TrimSpace(m[2]))
			return
		}
		idx++
		prefix := "- "
		if ordered {
			prefix = fmt.Sprintf("%d. ", idx)
		}
		s := style.For(style.Body)
		p := c.doc.AddParagraph()
		f := docx.FormatFromStyle(s)
		f.SpaceBeforePT, f.SpaceAfterPT = 2, 2
		p.SetFormat(f)
		c.textRuns(p, prefix+text, s, segment.RoleBody)
	})
}

// emitReferenceEntry 文献条目：[N] 正文，悬挂缩进让折行对齐到
// 序号之后
func (c *Converter) emitReferenceEntry(num, body string) {
	s := style.For(style.Reference)
	p := c.doc.AddParagraph()
	f := docx.FormatFromStyle(s)
	f.LeftIndentCM = style.HangingIndentCM
	f.FirstLineIndentCM = -style.HangingIndentCM
	p.SetFormat(f)

	text := "[" + num + "] " + body
	for _, r := range segment.Split(text, segment.RoleReference) {
		p.AddRun(r.Text, docx.RunFormatFromStyle(s, false))
	}
}

// emitTable 表格。题注内嵌在表头第一格，缺失时以占位序号照常
// 输出；表头加粗居中，数据行左对齐，空表只排表头网格。
func (c *Converter) emitTable(el *goquery.Selection) {
	var headers []string
	headerSel := el.Find("thead th")
	if headerSel.Length() == 0 {
		headerSel = el.Find("tr").First().Find("th, td")
	}
	headerSel.Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(cell.Text()))
	})

	var ref caption.Ref
	ok := false
	if len(headers) > 0 {
		var clean string
		ref, clean, ok = caption.ParseTableCell(headers[0])
		headers[0] = clean
	} else {
		ref = caption.Ref{Kind: caption.Table, Label: caption.UnknownTableLabel, Body: "Unknown Table"}
	}
	if !ok {
		c.log.Warn("表格缺少 [表X.Y 题注] 约定，使用占位题注")
		c.stats.Warnings++
	}

	var rows [][]string
	el.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	cols := len(headers)
	if cols == 0 {
		if len(rows) == 0 {
			c.log.Warn("表格既无表头也无数据，跳过", zap.String("label", ref.Label))
			c.stats.Warnings++
			return
		}
		cols = len(rows[0])
	}

	// 表题在表格上方
	c.emitCaption(ref)

	tbl := c.doc.AddTable(1, cols)
	for j, h := range headers {
		c.fillCell(tbl.Cell(0, j), h, true, style.AlignCenter)
	}
	for _, cells := range rows {
		r := tbl.AddRow()
		for j, cell := range cells {
			if j >= cols {
				c.log.Warn("表格数据列数超过表头列数，截断",
					zap.String("label", ref.Label))
				c.stats.Warnings++
				break
			}
			c.fillCell(tbl.Cell(r, j), cell, false, style.AlignLeft)
		}
	}

	c.spacer()
	c.stats.Tables++
}

func (c *Converter) fillCell(p *docx.Paragraph, text string, bold bool, align style.Alignment) {
	if p == nil {
		return
	}
	s := style.For(style.Body)
	s.Bold = bold
	p.SetFormat(docx.Format{Alignment: align, Line: style.Spacing125})
	c.textRuns(p, text, s, segment.RoleBody)
}

// emitCode 围栏代码块。mermaid 块转成插图，其余按等宽小字排版。
func (c *Converter) emitCode(ctx context.Context, el *goquery.Selection) {
	code := el.Find("code").First()
	content := code.Text()
	if class, _ := code.Attr("class"); strings.Contains(class, "language-mermaid") {
		c.emitMermaid(ctx, content)
		return
	}

	c.stats.CodeBlocks++
	s := style.For(style.CodeLine)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for n, line := range lines {
		p := c.doc.AddParagraph()
		f := docx.FormatFromStyle(s)
		f.LeftIndentCM = 1.0
		if n == 0 {
			f.SpaceBeforePT = 5
		}
		if n == len(lines)-1 {
			f.SpaceAfterPT = 5
		}
		p.SetFormat(f)
		p.AddRun(line, docx.RunFormatFromStyle(s, false))
	}
}

// emitMermaid 渲染 Mermaid 图表并按插图嵌入；渲染失败降级为
// 占位段落，临时图片无论成败都会清理。
func (c *Converter) emitMermaid(ctx context.Context, source string) {
	ref, rest, ok := caption.ParseDiagram(source)
	if !ok {
		c.log.Warn("Mermaid 图表缺少 %%图X.Y 题注注释")
		c.stats.Warnings++
		c.emitPlainParagraph("[Mermaid diagram - caption not found]")
		return
	}

	img, err := c.renderer.Render(ctx, rest, c.tmpDir)
	if err != nil {
		c.log.Warn("Mermaid 渲染失败",
			zap.String("label", ref.Label), zap.Error(err))
		c.stats.Warnings++
		c.emitPlainParagraph(fmt.Sprintf("[Failed to render Mermaid diagram: %s %s]", ref.Label, ref.Body))
		return
	}
	defer os.Remove(img)

	c.stats.Figures++
	p := c.doc.AddParagraph()
	p.SetFormat(docx.Format{Alignment: style.AlignCenter})
	if err := p.AddImage(img, c.cfg.ImageWidthCM); err != nil {
		c.log.Warn("嵌入 Mermaid 图片失败", zap.Error(err))
		c.stats.Warnings++
	}
	c.emitCaption(ref)
	c.spacer()
}

// emitTOC 目录标题与目录域，打开文档后由 Word 按 1-3 级标题填充
func (c *Converter) emitTOC() {
	s := style.For(style.TOCTitle)
	p := c.doc.AddParagraph()
	p.SetFormat(docx.FormatFromStyle(s))
	p.AddRun("目   录", docx.RunFormatFromStyle(s, true))

	body := style.For(style.Body)
	fieldP := c.doc.AddParagraph()
	fieldP.SetFormat(docx.Format{Line: style.Spacing125})
	fieldP.AddField(`TOC \o "1-3" \h \z \u`, docx.RunFormatFromStyle(body, false))
}

func headerRunFormat() docx.RunFormat {
	return docx.RunFormatFromStyle(style.For(style.Header), false)
}

func footerRunFormat() docx.RunFormat {
	return docx.RunFormatFromStyle(style.For(style.Footer), false)
}
