package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// docx 包结构固定：[Content_Types].xml、_rels/.rels、word/document.xml
// 及其关系表、word/styles.xml、页眉页脚部件和 media 图片。

const ctNS = "http://schemas.openxmlformats.org/package/2006/content-types"
const relNS = "http://schemas.openxmlformats.org/package/2006/relationships"

const relTypeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"

const (
	ctDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctHeader   = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	ctFooter   = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	ctRels     = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML      = "application/xml"
)

// 默认样式：Normal 为宋体/Times New Roman 小四、1.25 倍行距
const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman" w:eastAsia="宋体" w:cs="Times New Roman"/>
        <w:sz w:val="24"/>
        <w:szCs w:val="24"/>
      </w:rPr>
    </w:rPrDefault>
    <w:pPrDefault>
      <w:pPr>
        <w:spacing w:after="0" w:line="300" w:lineRule="auto"/>
      </w:pPr>
    </w:pPrDefault>
  </w:docDefaults>
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
</w:styles>
`

// SaveTo 把文档写到指定路径
func (d *Document) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	defer f.Close()
	if err := d.Write(f); err != nil {
		return err
	}
	return f.Close()
}

// Write 把文档打包写入 w。只能调用一次。
func (d *Document) Write(w io.Writer) error {
	if d.finalized {
		return fmt.Errorf("文档已经写出过一次")
	}
	d.finalized = true

	// 收尾：最后一节的 sectPr 直接挂在 body 末尾
	d.body.AddChild(d.sections[len(d.sections)-1].pr)

	zw := zip.NewWriter(w)

	if err := d.writeContentTypes(zw); err != nil {
		return err
	}
	if err := writeRels(zw, "_rels/.rels", []relationship{
		{ID: "rId1", Type: relTypeDocument, Target: "word/document.xml"},
	}); err != nil {
		return err
	}
	if err := writeRels(zw, "word/_rels/document.xml.rels", d.rels); err != nil {
		return err
	}
	if err := writeXMLPart(zw, "word/document.xml", d.xml); err != nil {
		return err
	}
	if err := writeRaw(zw, "word/styles.xml", []byte(stylesXML)); err != nil {
		return err
	}
	for _, p := range d.hdrftr {
		if err := writeXMLPart(zw, "word/"+p.Name, p.XML); err != nil {
			return err
		}
	}
	for _, m := range d.media {
		if err := writeRaw(zw, "word/media/"+m.Name, m.Data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("关闭 zip 容器失败: %w", err)
	}
	return nil
}

func (d *Document) writeContentTypes(zw *zip.Writer) error {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	types := x.CreateElement("Types")
	types.CreateAttr("xmlns", ctNS)

	addDefault := func(ext, ct string) {
		e := types.CreateElement("Default")
		e.CreateAttr("Extension", ext)
		e.CreateAttr("ContentType", ct)
	}
	addOverride := func(part, ct string) {
		e := types.CreateElement("Override")
		e.CreateAttr("PartName", part)
		e.CreateAttr("ContentType", ct)
	}

	addDefault("rels", ctRels)
	addDefault("xml", ctXML)
	seen := map[string]bool{}
	for _, m := range d.media {
		if !seen[m.Extension] {
			addDefault(m.Extension, m.ContentType)
			seen[m.Extension] = true
		}
	}

	addOverride("/word/document.xml", ctDocument)
	addOverride("/word/styles.xml", ctStyles)
	for _, p := range d.hdrftr {
		if p.IsHeader {
			addOverride("/word/"+p.Name, ctHeader)
		} else {
			addOverride("/word/"+p.Name, ctFooter)
		}
	}

	return writeXMLPart(zw, "[Content_Types].xml", x)
}

func writeRels(zw *zip.Writer, name string, rels []relationship) error {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := x.CreateElement("Relationships")
	root.CreateAttr("xmlns", relNS)
	for _, r := range rels {
		e := root.CreateElement("Relationship")
		e.CreateAttr("Id", r.ID)
		e.CreateAttr("Type", r.Type)
		e.CreateAttr("Target", r.Target)
	}
	return writeXMLPart(zw, name, x)
}

func writeXMLPart(zw *zip.Writer, name string, x *etree.Document) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("创建包内条目 %s 失败: %w", name, err)
	}
	if _, err := x.WriteTo(f); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	return nil
}

func writeRaw(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("创建包内条目 %s 失败: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	return nil
}
