package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-thesis-docx/internal/config"
	"github.com/nerdneilsfield/go-thesis-docx/internal/docx"
	"github.com/nerdneilsfield/go-thesis-docx/internal/markdown"
	"github.com/nerdneilsfield/go-thesis-docx/internal/mermaid"
	"github.com/nerdneilsfield/go-thesis-docx/internal/refs"
)

// 主转换器。对解析出的块级元素做一次线性遍历，按语义角色逐块
// 映射为排版单元；遍历状态（当前章号、是否进入正文、目录条目）
// 只在一次转换内有效。

// TOCEntry 目录条目，随标题遍历记录
type TOCEntry struct {
	Level int
	Text  string
}

// Stats 一次转换的产出统计
type Stats struct {
	Chapters   int
	Sections   int
	Figures    int
	Tables     int
	CodeBlocks int
	References int
	TOCEntries int
	Warnings   int
}

// Converter 把 Markdown 文稿转换为论文格式的 docx
type Converter struct {
	cfg      *config.Config
	log      *zap.Logger
	renderer *mermaid.Renderer

	// 一次转换内的状态
	doc         *docx.Document
	refs        []refs.Entry
	refsEmitted bool
	header      string
	mainStarted bool
	toc         []TOCEntry
	stats       Stats
	tmpDir      string
	baseDir     string
}

// New 创建转换器
func New(cfg *config.Config, log *zap.Logger) *Converter {
	return &Converter{
		cfg: cfg,
		log: log,
		renderer: mermaid.NewRenderer(mermaid.Options{
			Command: cfg.Mermaid.Command,
			Timeout: time.Duration(cfg.Mermaid.TimeoutSeconds) * time.Second,
			Width:   cfg.Mermaid.Width,
			Height:  cfg.Mermaid.Height,
			Scale:   cfg.Mermaid.Scale,
		}),
	}
}

// ConvertFile 读入 Markdown 文件并写出 docx。
// 图片相对路径以输入文件所在目录解析。
func (c *Converter) ConvertFile(ctx context.Context, inPath, outPath string) (Stats, error) {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("读取输入文件失败: %w", err)
	}
	c.baseDir = filepath.Dir(inPath)
	return c.Convert(ctx, src, outPath)
}

// Convert 执行一次完整转换：预处理收集参考文献，线性遍历输出
// 各块，最后统一挂接页眉页脚并保存。
// 遍历状态只属于本次转换，进入时清零，同一个转换器可以复用。
func (c *Converter) Convert(ctx context.Context, src []byte, outPath string) (Stats, error) {
	c.doc = nil
	c.refs = nil
	c.refsEmitted = false
	c.header = ""
	c.mainStarted = false
	c.toc = nil
	c.stats = Stats{}
	c.tmpDir = ""

	md, err := markdown.Parse(src)
	if err != nil {
		return Stats{}, err
	}

	// 页眉标题：配置值，可被文稿元数据 header 覆盖
	c.header = c.cfg.ArticleHeader
	if h, ok := md.Meta["header"].(string); ok && h != "" {
		c.header = h
	}
	if c.header == "" {
		c.log.Warn("未配置页眉标题，正文页眉将为空")
	}

	// 预处理：收集参考文献并改写脚注标记
	c.refs = refs.Collect(md.HTML)

	c.doc = docx.New()

	tmp, err := os.MkdirTemp("", "thesisdocx-*")
	if err != nil {
		return Stats{}, fmt.Errorf("创建临时目录失败: %w", err)
	}
	defer os.RemoveAll(tmp)
	c.tmpDir = tmp

	els := md.BlockElements()
	for i := 0; i < len(els); {
		i = c.emitBlock(ctx, els, i)
	}

	if len(c.refs) > 0 && !c.refsEmitted {
		c.log.Warn("文稿没有 参考文献 标题，收集到的文献条目未输出",
			zap.Int("count", len(c.refs)))
		c.stats.Warnings++
	}

	c.finalize()
	c.stats.TOCEntries = len(c.toc)

	if err := c.doc.SaveTo(outPath); err != nil {
		return c.stats, err
	}
	c.log.Info("文档已保存", zap.String("output", outPath))
	return c.stats, nil
}

// ensureMainMatter 进入正文分节。正常情况下由 ABSTRACT 分区开启；
// 文稿缺少摘要时在第一个章标题处兜底。
func (c *Converter) ensureMainMatter() {
	if c.mainStarted {
		return
	}
	c.doc.AddSection()
	c.mainStarted = true
}

// finalize 分节收尾：前置部分清空页眉页脚，正文各节设置运行
// 页眉（带下横线）与居中页码页脚。
func (c *Converter) finalize() {
	for i, s := range c.doc.Sections() {
		if i == 0 {
			s.ClearHeaderFooter()
			continue
		}
		s.SetHeaderText(c.header, headerRunFormat(), true)
		s.SetFooterPageNumber(footerRunFormat())
	}
}
