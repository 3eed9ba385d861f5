package docx

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/nerdneilsfield/go-thesis-docx/internal/style"
)

// Section 文档的一个节。页眉页脚按节挂接：前置部分（摘要、目录）
// 清空页眉页脚，正文各节挂运行页眉与页码页脚。
type Section struct {
	d  *Document
	pr *etree.Element
}

// SetHeaderText 设置本节页眉：居中单行文本，可带页眉下横线
func (s *Section) SetHeaderText(text string, f RunFormat, rule bool) {
	doc, name := s.d.newHdrFtrPart(true)
	p := &Paragraph{d: s.d, el: doc.Root().CreateElement("w:p")}
	p.SetFormat(Format{Alignment: style.AlignCenter, BottomBorder: rule})
	p.AddRun(text, f)
	s.attachRef("w:headerReference", relTypeHeader, name)
}

// SetFooterPageNumber 设置本节页脚为居中的动态页码域
func (s *Section) SetFooterPageNumber(f RunFormat) {
	doc, name := s.d.newHdrFtrPart(false)
	p := &Paragraph{d: s.d, el: doc.Root().CreateElement("w:p")}
	p.SetFormat(Format{Alignment: style.AlignCenter})
	p.AddField("PAGE", f)
	s.attachRef("w:footerReference", relTypeFooter, name)
}

// ClearHeaderFooter 给本节挂接空白页眉页脚，切断任何继承内容
func (s *Section) ClearHeaderFooter() {
	hdr, hname := s.d.newHdrFtrPart(true)
	hdr.Root().CreateElement("w:p")
	s.attachRef("w:headerReference", relTypeHeader, hname)

	ftr, fname := s.d.newHdrFtrPart(false)
	ftr.Root().CreateElement("w:p")
	s.attachRef("w:footerReference", relTypeFooter, fname)
}

// newHdrFtrPart 新建页眉/页脚部件并登记到包里
func (d *Document) newHdrFtrPart(header bool) (*etree.Document, string) {
	var tag, base string
	if header {
		tag, base = "w:hdr", "header"
	} else {
		tag, base = "w:ftr", "footer"
	}
	n := 1
	for _, p := range d.hdrftr {
		if p.IsHeader == header {
			n++
		}
	}
	name := fmt.Sprintf("%s%d.xml", base, n)

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := x.CreateElement(tag)
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)

	d.hdrftr = append(d.hdrftr, hdrFtrPart{Name: name, IsHeader: header, XML: x})
	return x, name
}

// attachRef 把页眉/页脚引用插到 sectPr 里。引用元素必须位于
// w:pgSz 之前，按模式顺序排在最前。
func (s *Section) attachRef(tag, relType, partName string) {
	rid := s.d.addRelationship(relType, partName)
	ref := etree.NewElement(tag)
	ref.CreateAttr("w:type", "default")
	ref.CreateAttr("r:id", rid)

	pos := 0
	for i, child := range s.pr.ChildElements() {
		if child.Tag == "headerReference" || child.Tag == "footerReference" {
			pos = i + 1
		}
	}
	s.pr.InsertChildAt(pos, ref)
}
