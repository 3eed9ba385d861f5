package docx

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/nerdneilsfield/go-thesis-docx/internal/style"
)

// Paragraph 文档、页眉或表格单元格里的一个段落
type Paragraph struct {
	d  *Document
	el *etree.Element
}

// Format 段落格式。零值字段不输出，继承默认样式。
type Format struct {
	Alignment         style.Alignment
	Line              style.LineSpacing
	SpaceBeforePT     float64
	SpaceAfterPT      float64
	FirstLineIndentCM float64 // 负值表示悬挂缩进
	LeftIndentCM      float64
	PageBreakBefore   bool
	BottomBorder      bool // 页眉下横线
	OutlineLevel      int  // 1-3 进目录，0 不进
}

// FormatFromStyle 把样式表条目换算成段落格式
func FormatFromStyle(s style.Style) Format {
	return Format{
		Alignment:         s.Alignment,
		Line:              s.Line,
		SpaceBeforePT:     s.SpaceBeforePT,
		SpaceAfterPT:      s.SpaceAfterPT,
		FirstLineIndentCM: s.FirstLineIndentCM,
	}
}

// SetFormat 写入段落属性。子元素按 CT_PPr 的模式顺序生成。
func (p *Paragraph) SetFormat(f Format) {
	pPr := p.el.SelectElement("w:pPr")
	if pPr == nil {
		pPr = etree.NewElement("w:pPr")
		p.el.InsertChildAt(0, pPr)
	}

	if f.PageBreakBefore {
		pPr.CreateElement("w:pageBreakBefore")
	}
	if f.BottomBorder {
		bdr := pPr.CreateElement("w:pBdr")
		bottom := bdr.CreateElement("w:bottom")
		bottom.CreateAttr("w:val", "single")
		bottom.CreateAttr("w:sz", "4")
		bottom.CreateAttr("w:space", "1")
		bottom.CreateAttr("w:color", "auto")
	}

	if f.Line.Value > 0 || f.SpaceBeforePT > 0 || f.SpaceAfterPT > 0 {
		sp := pPr.CreateElement("w:spacing")
		sp.CreateAttr("w:before", fmt.Sprint(ptToTwentieths(f.SpaceBeforePT)))
		sp.CreateAttr("w:after", fmt.Sprint(ptToTwentieths(f.SpaceAfterPT)))
		if f.Line.Value > 0 {
			if f.Line.Exact {
				sp.CreateAttr("w:line", fmt.Sprint(ptToTwentieths(f.Line.Value)))
				sp.CreateAttr("w:lineRule", "exact")
			} else {
				sp.CreateAttr("w:line", fmt.Sprint(int(f.Line.Value*240)))
				sp.CreateAttr("w:lineRule", "auto")
			}
		}
	}

	if f.FirstLineIndentCM != 0 || f.LeftIndentCM != 0 {
		ind := pPr.CreateElement("w:ind")
		if f.LeftIndentCM != 0 {
			ind.CreateAttr("w:left", fmt.Sprint(cmToTwips(f.LeftIndentCM)))
		}
		if f.FirstLineIndentCM > 0 {
			ind.CreateAttr("w:firstLine", fmt.Sprint(cmToTwips(f.FirstLineIndentCM)))
		} else if f.FirstLineIndentCM < 0 {
			ind.CreateAttr("w:hanging", fmt.Sprint(cmToTwips(-f.FirstLineIndentCM)))
		}
	}

	if f.Alignment != "" {
		pPr.CreateElement("w:jc").CreateAttr("w:val", string(f.Alignment))
	}
	if f.OutlineLevel > 0 {
		pPr.CreateElement("w:outlineLvl").CreateAttr("w:val", fmt.Sprint(f.OutlineLevel-1))
	}
}

// RunFormat 文本块格式：中文字体、西文字体、字号与修饰
type RunFormat struct {
	EastAsia    string
	ASCII       string
	SizePT      float64
	Bold        bool
	Italic      bool
	Superscript bool
}

// RunFormatFromStyle 从样式表条目取文本块格式。
// script 为 true 时西文字符也用中文字体渲染（中文串内嵌符号）。
func RunFormatFromStyle(s style.Style, script bool) RunFormat {
	f := RunFormat{
		EastAsia: s.EastAsia,
		ASCII:    s.ASCII,
		SizePT:   s.Size,
		Bold:     s.Bold,
		Italic:   s.Italic,
	}
	if script {
		f.ASCII = s.EastAsia
	}
	return f
}

// AddRun 追加一段带格式的文本
func (p *Paragraph) AddRun(text string, f RunFormat) {
	r := p.el.CreateElement("w:r")
	p.runProps(r, f)
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
}

func (p *Paragraph) runProps(r *etree.Element, f RunFormat) {
	rPr := r.CreateElement("w:rPr")
	fonts := rPr.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", f.ASCII)
	fonts.CreateAttr("w:hAnsi", f.ASCII)
	fonts.CreateAttr("w:eastAsia", f.EastAsia)
	fonts.CreateAttr("w:cs", f.ASCII)
	if f.Bold {
		rPr.CreateElement("w:b")
	}
	if f.Italic {
		rPr.CreateElement("w:i")
	}
	rPr.CreateElement("w:color").CreateAttr("w:val", "000000")
	if f.SizePT > 0 {
		sz := fmt.Sprint(halfPoints(f.SizePT))
		rPr.CreateElement("w:sz").CreateAttr("w:val", sz)
		rPr.CreateElement("w:szCs").CreateAttr("w:val", sz)
	}
	if f.Superscript {
		rPr.CreateElement("w:vertAlign").CreateAttr("w:val", "superscript")
	}
}

// AddPageBreak 在段落内插入分页符
func (p *Paragraph) AddPageBreak() {
	br := p.el.CreateElement("w:r").CreateElement("w:br")
	br.CreateAttr("w:type", "page")
}

// AddField 插入动态域，instr 为域指令，如 PAGE 或 TOC \o "1-3" \h \z \u
func (p *Paragraph) AddField(instr string, f RunFormat) {
	r := p.el.CreateElement("w:r")
	p.runProps(r, f)
	begin := r.CreateElement("w:fldChar")
	begin.CreateAttr("w:fldCharType", "begin")
	it := r.CreateElement("w:instrText")
	it.CreateAttr("xml:space", "preserve")
	it.SetText(instr)
	sep := r.CreateElement("w:fldChar")
	sep.CreateAttr("w:fldCharType", "separate")
	end := r.CreateElement("w:fldChar")
	end.CreateAttr("w:fldCharType", "end")
}
