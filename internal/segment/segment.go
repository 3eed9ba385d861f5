package segment

import (
	"regexp"
	"strings"
)

// 中西文混排切分器。把一段纯文本切成若干子串，每个子串要么是
// 西文/符号（用西文字体），要么是中文（用中文字体），并识别
// 方括号引文标记以便上标处理。所有子串按原顺序拼接即还原输入。

// Role 切分时的语境角色
type Role int

const (
	// RoleBody 正文：识别引文标记，[^N] 转为上标 [N]
	RoleBody Role = iota
	// RoleHeading 标题：标题中的编号（如 1.1）不是引文，一律不上标
	RoleHeading
	// RoleReference 参考文献条目：已带编号，整段原样输出，不再切分
	RoleReference
)

// Run 一个子串及其渲染属性
type Run struct {
	Text        string
	Script      bool // 中文（含全角符号）
	Superscript bool // 上标引文标记
}

// 西文/符号字符类，与正文切分规则一致
const latinClass = `a-zA-Z0-9\s!"#$%&'()*+,\-./:;<=>?@\[\\\]^_` + "`" + `{|}~`

// 同一字符类去掉空白，用于中文串内的二次扫描
const latinClassNoSpace = `a-zA-Z0-9!"#$%&'()*+,\-./:;<=>?@\[\\\]^_` + "`" + `{|}~`

var (
	latinRunRe  = regexp.MustCompile(`[` + latinClass + `]+`)
	innerRunRe  = regexp.MustCompile(`[` + latinClassNoSpace + `]+`)
	hatCiteRe   = regexp.MustCompile(`\[\^(\d+)\]`)
	plainCiteRe = regexp.MustCompile(`\[(\d+(?:[,-]\d+)*)\]`)
)

// Split 把 text 按字符类切分为子串序列。
//
// RoleReference 直接返回单个原样子串。其余角色先提取西文/符号的
// 最长连续串，剩余部分视为中文；中文串再按同样规则扫描一次，
// 处理夹在中文里的符号（仅一层，不再递归）。
//
// 西文串内识别两种引文标记：[^N] 渲染为 [N] 并在正文角色下置
// 上标；[N]、[N,M]、[N-M] 原样保留、不上标。除 [^N] 去掉帽号外，
// 子串拼接结果与输入一致。
func Split(text string, role Role) []Run {
	if role == RoleReference {
		if text == "" {
			return nil
		}
		return []Run{{Text: text}}
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var runs []Run
	last := 0
	for _, loc := range latinRunRe.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			runs = append(runs, scriptRuns(text[last:loc[0]])...)
		}
		runs = append(runs, latinRuns(text[loc[0]:loc[1]], role)...)
		last = loc[1]
	}
	if last < len(text) {
		runs = append(runs, scriptRuns(text[last:])...)
	}
	return runs
}

// latinRuns 切分一段西文串，把引文标记拆成独立子串
func latinRuns(seg string, role Role) []Run {
	var runs []Run
	for seg != "" {
		hat := hatCiteRe.FindStringSubmatchIndex(seg)
		plain := plainCiteRe.FindStringIndex(seg)

		// 取最先出现的标记
		pos, isHat := -1, false
		if hat != nil {
			pos, isHat = hat[0], true
		}
		if plain != nil && (pos < 0 || plain[0] < pos) {
			pos, isHat = plain[0], false
		}
		if pos < 0 {
			runs = append(runs, Run{Text: seg})
			break
		}

		if pos > 0 {
			runs = append(runs, Run{Text: seg[:pos]})
		}
		if isHat {
			num := seg[hat[2]:hat[3]]
			runs = append(runs, Run{
				Text:        "[" + num + "]",
				Superscript: role != RoleHeading,
			})
			seg = seg[hat[1]:]
		} else {
			runs = append(runs, Run{Text: seg[plain[0]:plain[1]]})
			seg = seg[plain[1]:]
		}
	}
	return runs
}

// scriptRuns 中文串的二次扫描，提取夹杂的符号串
func scriptRuns(seg string) []Run {
	var runs []Run
	last := 0
	for _, loc := range innerRunRe.FindAllStringIndex(seg, -1) {
		if loc[0] > last {
			runs = append(runs, Run{Text: seg[last:loc[0]], Script: true})
		}
		runs = append(runs, Run{Text: seg[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(seg) {
		runs = append(runs, Run{Text: seg[last:], Script: true})
	}
	return runs
}
