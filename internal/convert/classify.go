package convert

import "regexp"

// 文稿分区。一级标题的文字决定进入哪个分区，这里用显式的
// 枚举与判定函数，而不是把字符串比较散在遍历代码里。

type sectionKind int

const (
	kindGeneric         sectionKind = iota // 未约定的一级标题
	kindAbstractCN                         // 摘要
	kindAbstractEN                         // ABSTRACT，前置部分到此结束
	kindChapter                            // 第X章 XXX
	kindReferences                         // 参考文献
	kindAcknowledgments                    // 致谢
)

var (
	chapterRe     = regexp.MustCompile(`^(第[一二三四五六七八九十百千零0-9]+章)\s*(.*)$`)
	numberedRe    = regexp.MustCompile(`^([\d.]+)\s*(.*)$`)
	footnoteDefRe = regexp.MustCompile(`(?s)^\[\^(\d+)\]:\s*(.*)$`)
)

func classifyH1(title string) sectionKind {
	switch {
	case title == "摘要":
		return kindAbstractCN
	case title == "ABSTRACT":
		return kindAbstractEN
	case chapterRe.MatchString(title):
		return kindChapter
	case title == "参考文献":
		return kindReferences
	case title == "致谢":
		return kindAcknowledgments
	default:
		return kindGeneric
	}
}

// splitHeadingNumber 把 "1.1 标题" 切成编号与标题两段。
// 没有前导编号时编号为空串。
func splitHeadingNumber(title string) (string, string) {
	m := numberedRe.FindStringSubmatch(title)
	if m == nil {
		return "", title
	}
	return m[1], m[2]
}
