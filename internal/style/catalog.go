package style

// 论文排版样式表。字体、字号、行距等常量均来自学位论文格式要求，
// 不随配置变化。

// 字体名称
const (
	FontSongti  = "宋体"
	FontHeiti   = "黑体"
	FontKaiti   = "楷体"
	FontTimes   = "Times New Roman"
	FontCourier = "Courier New"
)

// 字号（磅）
const (
	SizeThree      = 16.0 // 三号
	SizeSmallThree = 15.0 // 小三号
	SizeFour       = 14.0 // 四号
	SizeSmallFour  = 12.0 // 小四号
	SizeFive       = 10.5 // 五号
	SizeSmallFive  = 9.0  // 小五号
)

// 页面与缩进（厘米）
const (
	MarginCM            = 2.5
	BodyIndentCM        = 0.7 // 正文首行缩进，约两个汉字
	HangingIndentCM     = 0.7 // 参考文献悬挂缩进
	DefaultImageWidthCM = 15.0
)

// Alignment 段落对齐方式，取值与 OOXML w:jc 一致
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// LineSpacing 行距。Exact 为 true 时 Value 是固定行高（磅），
// 否则 Value 是倍数行距。
type LineSpacing struct {
	Exact bool
	Value float64
}

var (
	Spacing125     = LineSpacing{Value: 1.25}
	Spacing15      = LineSpacing{Value: 1.5}
	SpacingSingle  = LineSpacing{Value: 1.0}
	SpacingFixed20 = LineSpacing{Exact: true, Value: 20}
)

// Role 语义角色，用于从样式表中取样式
type Role int

const (
	ChapterTitle Role = iota // 章标题：第X章 XXX
	SectionTitle             // 节标题：1.1 XXX
	SubsectionTitle          // 小节标题：1.1.1 XXX
	MinorHeading             // 小节内小标题，黑体单列一行
	Body                     // 正文
	AbstractCNBody           // 中文摘要正文
	AbstractENBody           // 英文摘要正文
	Caption                  // 图题/表题
	Reference                // 参考文献条目
	CodeLine                 // 代码行
	Header                   // 页眉
	Footer                   // 页脚（页码）
	TOCTitle                 // 目录标题
)

// Style 一条样式：中西文字体对、字号、加粗斜体、对齐、行距与缩进
type Style struct {
	EastAsia          string
	ASCII             string
	Size              float64
	Bold              bool
	Italic            bool
	Alignment         Alignment
	Line              LineSpacing
	FirstLineIndentCM float64
	SpaceBeforePT     float64
	SpaceAfterPT      float64
}

var catalog = map[Role]Style{
	ChapterTitle: {
		EastAsia: FontHeiti, ASCII: FontTimes, Size: SizeThree, Bold: true,
		Alignment: AlignCenter, Line: Spacing15, SpaceAfterPT: 12,
	},
	SectionTitle: {
		EastAsia: FontHeiti, ASCII: FontTimes, Size: SizeSmallThree, Bold: true,
		Alignment: AlignCenter, Line: Spacing15, SpaceBeforePT: 12, SpaceAfterPT: 6,
	},
	SubsectionTitle: {
		EastAsia: FontHeiti, ASCII: FontTimes, Size: SizeFour, Bold: true,
		Alignment: AlignLeft, Line: Spacing15, SpaceBeforePT: 10, SpaceAfterPT: 5,
	},
	MinorHeading: {
		EastAsia: FontHeiti, ASCII: FontHeiti, Size: SizeSmallFour, Bold: true,
		Alignment: AlignLeft, Line: Spacing125, SpaceBeforePT: 5, SpaceAfterPT: 2,
	},
	Body: {
		EastAsia: FontSongti, ASCII: FontTimes, Size: SizeSmallFour,
		Alignment: AlignJustify, Line: Spacing125, FirstLineIndentCM: BodyIndentCM,
	},
	AbstractCNBody: {
		EastAsia: FontKaiti, ASCII: FontKaiti, Size: SizeFour,
		Alignment: AlignJustify, Line: SpacingFixed20, FirstLineIndentCM: BodyIndentCM,
	},
	AbstractENBody: {
		EastAsia: FontTimes, ASCII: FontTimes, Size: SizeFour,
		Alignment: AlignJustify, Line: SpacingFixed20, FirstLineIndentCM: BodyIndentCM,
	},
	Caption: {
		EastAsia: FontKaiti, ASCII: FontKaiti, Size: SizeFive,
		Alignment: AlignCenter, Line: Spacing125,
	},
	Reference: {
		EastAsia: FontSongti, ASCII: FontTimes, Size: SizeSmallFour,
		Alignment: AlignLeft, Line: Spacing125,
	},
	CodeLine: {
		EastAsia: FontCourier, ASCII: FontCourier, Size: SizeSmallFour - 2,
		Alignment: AlignLeft, Line: SpacingSingle, SpaceBeforePT: 0, SpaceAfterPT: 0,
	},
	Header: {
		EastAsia: FontSongti, ASCII: FontSongti, Size: SizeFive,
		Alignment: AlignCenter, Line: SpacingSingle,
	},
	Footer: {
		EastAsia: FontSongti, ASCII: FontSongti, Size: SizeSmallFive,
		Alignment: AlignCenter, Line: SpacingSingle,
	},
	TOCTitle: {
		EastAsia: FontHeiti, ASCII: FontHeiti, Size: SizeThree, Bold: true,
		Alignment: AlignCenter, Line: Spacing15, SpaceBeforePT: 12, SpaceAfterPT: 12,
	},
}

// For 返回指定角色的样式
func For(r Role) Style {
	return catalog[r]
}
