package docx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// AddImage 把图片按固定物理宽度嵌入段落，高度按纵横比缩放。
// 支持 PNG/JPEG/GIF，类型按文件内容判断，不信扩展名。
func (p *Paragraph) AddImage(path string, widthCM float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取图片失败: %w", err)
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return fmt.Errorf("识别图片类型失败: %w", err)
	}
	switch kind {
	case matchers.TypePng, matchers.TypeJpeg, matchers.TypeGif:
	default:
		return fmt.Errorf("不支持的图片类型: %q (%s)", kind.Extension, path)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("解析图片尺寸失败: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("图片尺寸无效: %dx%d", cfg.Width, cfg.Height)
	}

	cx := cmToEMU(widthCM)
	cy := cx * int64(cfg.Height) / int64(cfg.Width)

	d := p.d
	name := fmt.Sprintf("image%d.%s", len(d.media)+1, kind.Extension)
	rid := d.addRelationship(relTypeImage, "media/"+name)
	d.media = append(d.media, mediaPart{
		Name:        name,
		Extension:   kind.Extension,
		ContentType: kind.MIME.Value,
		Data:        data,
	})

	d.drawingSeq++
	p.addDrawing(rid, name, d.drawingSeq, cx, cy)
	return nil
}

// addDrawing 生成 wp:inline 图形结构
func (p *Paragraph) addDrawing(rid, name string, id int, cx, cy int64) {
	r := p.el.CreateElement("w:r")
	inline := r.CreateElement("w:drawing").CreateElement("wp:inline")
	for _, a := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(a, "0")
	}
	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", fmt.Sprint(cx))
	extent.CreateAttr("cy", fmt.Sprint(cy))
	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", fmt.Sprint(id))
	docPr.CreateAttr("name", name)
	inline.CreateElement("wp:cNvGraphicFramePr").
		CreateElement("a:graphicFrameLocks").
		CreateAttr("noChangeAspect", "1")

	graphic := inline.CreateElement("a:graphic")
	gd := graphic.CreateElement("a:graphicData")
	gd.CreateAttr("uri", nsPic)

	pic := gd.CreateElement("pic:pic")
	nv := pic.CreateElement("pic:nvPicPr")
	cNvPr := nv.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", fmt.Sprint(id))
	cNvPr.CreateAttr("name", name)
	nv.CreateElement("pic:cNvPicPr")

	fill := pic.CreateElement("pic:blipFill")
	fill.CreateElement("a:blip").CreateAttr("r:embed", rid)
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")

	sp := pic.CreateElement("pic:spPr")
	xfrm := sp.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	sz := xfrm.CreateElement("a:ext")
	sz.CreateAttr("cx", fmt.Sprint(cx))
	sz.CreateAttr("cy", fmt.Sprint(cy))
	geom := sp.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
}
