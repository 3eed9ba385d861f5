package docx

import "github.com/beevik/etree"

// Table 网格线表格。所有边框单线，列宽由 Word 自动调整。
type Table struct {
	d    *Document
	el   *etree.Element
	cols int
}

// AddTable 追加 rows×cols 的表格，至少一行一列
func (d *Document) AddTable(rows, cols int) *Table {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	tbl := d.body.CreateElement("w:tbl")
	pr := tbl.CreateElement("w:tblPr")
	tw := pr.CreateElement("w:tblW")
	tw.CreateAttr("w:w", "0")
	tw.CreateAttr("w:type", "auto")
	borders := pr.CreateElement("w:tblBorders")
	for _, side := range []string{"w:top", "w:left", "w:bottom", "w:right", "w:insideH", "w:insideV"} {
		b := borders.CreateElement(side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", "auto")
	}

	grid := tbl.CreateElement("w:tblGrid")
	for i := 0; i < cols; i++ {
		grid.CreateElement("w:gridCol")
	}

	t := &Table{d: d, el: tbl, cols: cols}
	for i := 0; i < rows; i++ {
		t.AddRow()
	}
	return t
}

// AddRow 追加一行，返回行号
func (t *Table) AddRow() int {
	tr := t.el.CreateElement("w:tr")
	for i := 0; i < t.cols; i++ {
		tc := tr.CreateElement("w:tc")
		tcPr := tc.CreateElement("w:tcPr")
		tcPr.CreateElement("w:vAlign").CreateAttr("w:val", "center")
		tc.CreateElement("w:p")
	}
	return len(t.el.SelectElements("w:tr")) - 1
}

// Rows 当前行数
func (t *Table) Rows() int {
	return len(t.el.SelectElements("w:tr"))
}

// Cols 列数
func (t *Table) Cols() int {
	return t.cols
}

// Cell 返回指定单元格的段落，越界返回 nil
func (t *Table) Cell(row, col int) *Paragraph {
	trs := t.el.SelectElements("w:tr")
	if row < 0 || row >= len(trs) {
		return nil
	}
	tcs := trs[row].SelectElements("w:tc")
	if col < 0 || col >= len(tcs) {
		return nil
	}
	return &Paragraph{d: t.d, el: tcs[col].SelectElement("w:p")}
}
