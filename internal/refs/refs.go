package refs

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 参考文献收集。主遍历之前跑一遍预处理：
//  1. 把正文中脚注渲染出的 <sup id="fnref:N"> 回写成字面 [^N]，
//     交给切分器按引文标记处理；
//  2. 把文末脚注列表 div.footnotes 里每条定义的正文收进有序列表，
//     去掉回链锚点；
//  3. 从树上摘除脚注列表，避免主遍历重复输出。
//
// 编号按定义出现顺序从 1 起，不按正文首次引用顺序。作者约定
// 定义顺序即引用顺序；两者不一致时正文编号与文献表编号会错位，
// 这是沿用的既有行为。

// Entry 一条参考文献：序号与正文
type Entry struct {
	Index int
	Text  string
}

// Collect 收集参考文献并改写脚注标记。会就地修改 doc。
func Collect(doc *goquery.Document) []Entry {
	// 回写正文脚注标记
	doc.Find("sup[id^=fnref]").Each(func(_ int, s *goquery.Selection) {
		num := strings.TrimSpace(s.Find("a.footnote-ref").First().Text())
		if num != "" && isDigits(num) {
			s.ReplaceWithHtml("[^" + num + "]")
		}
	})

	// 收集定义正文
	var entries []Entry
	doc.Find("div.footnotes ol li").Each(func(_ int, li *goquery.Selection) {
		body := li.Find("p").First()
		if body.Length() == 0 {
			body = li
		}
		body.Find("a").Remove()
		text := strings.TrimSpace(body.Text())
		if text == "" {
			return
		}
		entries = append(entries, Entry{Index: len(entries) + 1, Text: text})
	})

	doc.Find("div.footnotes").Remove()
	return entries
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
