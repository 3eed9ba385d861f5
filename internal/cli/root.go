package cli

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-thesis-docx/internal/config"
	"github.com/nerdneilsfield/go-thesis-docx/internal/convert"
	"github.com/nerdneilsfield/go-thesis-docx/internal/logger"
)

var (
	// 命令行标志变量
	cfgFile        string
	articleHeader  string  // 页眉文字，覆盖配置
	imageWidthCM   float64 // 插图宽度（厘米）
	mermaidCommand string  // mmdc 可执行文件路径
	debugMode      bool
	verboseMode    bool
	showVersion    bool
)

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "thesisdocx [flags] input.md output.docx",
		Short: "把 Markdown 书稿转换为学位论文格式的 Word 文档",
		Long: `把 Markdown 书稿转换为学位论文格式的 Word 文档。

按一级标题划分前置部分（摘要、ABSTRACT、目录）与正文部分，
自动套用论文排版样式：黑体标题、宋体正文、楷体题注、
Times New Roman 西文，以及页眉横线和页脚页码。

书稿约定:
  - # 摘要 / # ABSTRACT 为摘要分区
  - # 第X章 XXX 为章，## 1.1 / ### 1.1.1 为节
  - 插图 alt 文字以 图X.Y 开头，表头第一格以 [表X.Y 题注] 开头
  - 脚注 [^N] 改写成编号引文，在 # 参考文献 章排出`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			log := logger.NewLogger(debugMode, verboseMode)
			defer func() {
				_ = log.Sync()
			}()

			defer func() {
				if r := recover(); r != nil {
					log.Error("转换过程出现未预期的错误",
						zap.Any("panic", r),
						zap.String("stack", string(debug.Stack())))
					os.Exit(1)
				}
			}()

			if showVersion {
				fmt.Printf("thesisdocx %s (commit %s, built %s)\n", version, commit, buildDate)
				return
			}

			inputPath := args[0]
			outputPath := args[1]

			if _, err := os.Stat(inputPath); err != nil {
				log.Error("输入文件不存在", zap.String("文件", inputPath), zap.Error(err))
				os.Exit(1)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				log.Error("加载配置失败", zap.Error(err))
				os.Exit(1)
			}
			updateConfigFromFlags(cmd, cfg)

			start := time.Now()
			conv := convert.New(cfg, log)
			stats, err := conv.ConvertFile(cmd.Context(), inputPath, outputPath)
			if err != nil {
				log.Error("转换失败",
					zap.String("输入文件", inputPath),
					zap.Error(err))
				os.Exit(1)
			}

			printSummary(outputPath, stats, time.Since(start))
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径")
	rootCmd.PersistentFlags().StringVar(&articleHeader, "header", "", "页眉文字（覆盖配置文件）")
	rootCmd.PersistentFlags().Float64Var(&imageWidthCM, "image-width", 0, "插图宽度（厘米）")
	rootCmd.PersistentFlags().StringVar(&mermaidCommand, "mermaid-cmd", "", "mmdc 可执行文件路径")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "启用调试模式")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "显示详细日志")
	rootCmd.PersistentFlags().BoolVar(&showVersion, "version", false, "显示版本信息")

	return rootCmd
}

// updateConfigFromFlags 使用命令行参数覆盖配置
func updateConfigFromFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("header") {
		cfg.ArticleHeader = articleHeader
	}
	if cmd.Flags().Changed("image-width") {
		cfg.ImageWidthCM = imageWidthCM
	}
	if cmd.Flags().Changed("mermaid-cmd") {
		cfg.Mermaid.Command = mermaidCommand
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugMode
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verboseMode
	}
}

// printSummary 在终端打印转换结果统计表
func printSummary(outputPath string, stats convert.Stats, elapsed time.Duration) {
	title := color.New(color.FgCyan, color.Bold)
	_, _ = title.Println("\n转换完成")

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendRow(table.Row{"项", "值"})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"输出文件", outputPath})
	tw.AppendRow(table.Row{"章", stats.Chapters})
	tw.AppendRow(table.Row{"节", stats.Sections})
	tw.AppendRow(table.Row{"插图", stats.Figures})
	tw.AppendRow(table.Row{"表格", stats.Tables})
	tw.AppendRow(table.Row{"代码块", stats.CodeBlocks})
	tw.AppendRow(table.Row{"参考文献", stats.References})
	tw.AppendRow(table.Row{"目录条目", stats.TOCEntries})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"耗时", elapsed.Round(time.Millisecond)})
	tw.SetStyle(table.StyleLight)
	tw.Render()

	if stats.Warnings > 0 {
		warn := color.New(color.FgYellow)
		_, _ = warn.Printf("共 %d 条警告，详见上方日志\n", stats.Warnings)
	}
}
