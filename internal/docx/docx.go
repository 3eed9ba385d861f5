// Package docx 是一个最小化的 OOXML 写入层，只实现论文排版需要的
// 原语：分节、带中西文字体对的段落与文本块、表格、内嵌图片、
// 页眉页脚与域代码（页码、目录）。文档先在内存里用 etree 组装成
// XML，保存时打包为 zip 容器。
package docx

import (
	"fmt"
	"math"

	"github.com/beevik/etree"
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"

	relTypeStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

// 页面几何：A4，四边 2.5 厘米页边距
const (
	pageWidthTwips  = 11906 // 21.0 cm
	pageHeightTwips = 16838 // 29.7 cm
	marginTwips     = 1417  // 2.5 cm
	headerTwips     = 851   // 1.5 cm
)

type relationship struct {
	ID     string
	Type   string
	Target string
}

type mediaPart struct {
	Name        string
	Extension   string
	ContentType string
	Data        []byte
}

type hdrFtrPart struct {
	Name     string
	IsHeader bool
	XML      *etree.Document
}

// Document 一个正在组装的 docx 文档
type Document struct {
	xml      *etree.Document
	body     *etree.Element
	sections []*Section
	rels     []relationship
	media    []mediaPart
	hdrftr   []hdrFtrPart

	drawingSeq int
	finalized  bool
}

// New 创建空文档：一个打开的节，A4 页面，2.5 厘米页边距
func New() *Document {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := x.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:wp", nsWP)
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("xmlns:pic", nsPic)
	body := root.CreateElement("w:body")

	d := &Document{xml: x, body: body}
	d.rels = append(d.rels, relationship{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"})
	d.sections = []*Section{{d: d, pr: newSectPr()}}
	return d
}

// AddParagraph 在文档末尾追加空段落
func (d *Document) AddParagraph() *Paragraph {
	return &Paragraph{d: d, el: d.body.CreateElement("w:p")}
}

// AddSection 结束当前节并另起新的一节（从新页开始）。
// 按 OOXML 约定，被结束的节的 sectPr 包进一个空段落里。
func (d *Document) AddSection() *Section {
	cur := d.sections[len(d.sections)-1]
	p := d.body.CreateElement("w:p")
	p.CreateElement("w:pPr").AddChild(cur.pr)

	s := &Section{d: d, pr: newSectPr()}
	d.sections = append(d.sections, s)
	return s
}

// Sections 返回全部节，按文档顺序
func (d *Document) Sections() []*Section {
	return d.sections
}

func (d *Document) addRelationship(typ, target string) string {
	id := fmt.Sprintf("rId%d", len(d.rels)+1)
	d.rels = append(d.rels, relationship{ID: id, Type: typ, Target: target})
	return id
}

func newSectPr() *etree.Element {
	pr := etree.NewElement("w:sectPr")
	sz := pr.CreateElement("w:pgSz")
	sz.CreateAttr("w:w", fmt.Sprint(pageWidthTwips))
	sz.CreateAttr("w:h", fmt.Sprint(pageHeightTwips))
	mar := pr.CreateElement("w:pgMar")
	mar.CreateAttr("w:top", fmt.Sprint(marginTwips))
	mar.CreateAttr("w:right", fmt.Sprint(marginTwips))
	mar.CreateAttr("w:bottom", fmt.Sprint(marginTwips))
	mar.CreateAttr("w:left", fmt.Sprint(marginTwips))
	mar.CreateAttr("w:header", fmt.Sprint(headerTwips))
	mar.CreateAttr("w:footer", fmt.Sprint(headerTwips))
	mar.CreateAttr("w:gutter", "0")
	return pr
}

// 单位换算

func cmToTwips(cm float64) int {
	return int(math.Round(cm * 1440 / 2.54))
}

func ptToTwentieths(pt float64) int {
	return int(math.Round(pt * 20))
}

func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

func cmToEMU(cm float64) int64 {
	return int64(math.Round(cm * 914400 / 2.54))
}
