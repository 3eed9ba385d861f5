package caption

import (
	"regexp"
	"strings"
)

// 图表题注解析。作者约定：
//   - 插图：![图2.1 某结构示意图](path)，题注写在 alt 文本里
//   - 表格：表头第一格内嵌 [表2.1 某某特征]
//   - Mermaid 图：源码首行注释 %%图3.1 某功能流程图
// 解析失败时返回占位题注而不是报错，保证文档结构完整。

// Kind 题注种类
type Kind int

const (
	Figure Kind = iota
	Table
)

// Ref 一条图表题注：种类、序号标签（如 图3.2）与题注正文
type Ref struct {
	Kind  Kind
	Label string
	Body  string
}

const (
	// UnknownFigureLabel 无法解析的插图占位序号
	UnknownFigureLabel = "图?.?"
	// UnknownTableLabel 无法解析的表格占位序号
	UnknownTableLabel = "表?.?"
)

var (
	figureRe    = regexp.MustCompile(`^(图\s*[\d.]+)\s*(.*)$`)
	tableRe     = regexp.MustCompile(`^(表\s*[\d.]+)\s*(.*)$`)
	tableCellRe = regexp.MustCompile(`\[(表[^\]]*)\]`)
	diagramRe   = regexp.MustCompile(`^%%\s*(图\s*[\d.]+)\s*(.*)$`)
)

// ParseFigure 从图片 alt 文本解析题注。
// 解析失败时用占位序号，alt 原文作为题注正文。
func ParseFigure(alt string) (Ref, bool) {
	alt = strings.TrimSpace(alt)
	if m := figureRe.FindStringSubmatch(alt); m != nil {
		return Ref{Kind: Figure, Label: strings.TrimSpace(m[1]), Body: strings.TrimSpace(m[2])}, true
	}
	body := alt
	if body == "" {
		body = "Untitled Image"
	}
	return Ref{Kind: Figure, Label: UnknownFigureLabel, Body: body}, false
}

// ParseTableCell 从表头第一格文本中提取 [表X.Y 题注]。
// 返回题注、去掉题注片段后的表头文本，以及是否解析成功。
// 题注片段只做字面替换，格式不合约定时表头原样保留（已知的
// 保真缺口：畸形输入下题注可能残留在表头里）。
func ParseTableCell(cell string) (Ref, string, bool) {
	m := tableCellRe.FindStringSubmatch(cell)
	if m == nil {
		return Ref{Kind: Table, Label: UnknownTableLabel, Body: "Unknown Table"}, cell, false
	}
	full := m[1]
	clean := strings.TrimSpace(strings.Replace(cell, "["+full+"]", "", 1))

	if tm := tableRe.FindStringSubmatch(full); tm != nil {
		return Ref{Kind: Table, Label: strings.TrimSpace(tm[1]), Body: strings.TrimSpace(tm[2])}, clean, true
	}
	// 有方括号但序号不合 表X.Y 格式
	return Ref{Kind: Table, Label: UnknownTableLabel, Body: strings.TrimSpace(full)}, clean, false
}

// ParseDiagram 从 Mermaid 源码解析首行题注注释。
// 返回题注与去掉题注行之后的源码；没有题注注释时源码原样返回。
func ParseDiagram(source string) (Ref, string, bool) {
	lines := strings.SplitN(source, "\n", 2)
	first := strings.TrimSpace(lines[0])
	if m := diagramRe.FindStringSubmatch(first); m != nil {
		rest := ""
		if len(lines) == 2 {
			rest = lines[1]
		}
		return Ref{Kind: Figure, Label: strings.TrimSpace(m[1]), Body: strings.TrimSpace(m[2])}, rest, true
	}
	return Ref{Kind: Figure, Label: UnknownFigureLabel, Body: ""}, source, false
}
