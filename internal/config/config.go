package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// MermaidConfig 外部 Mermaid CLI 的调用参数
type MermaidConfig struct {
	Command        string  `mapstructure:"command"`
	TimeoutSeconds int     `mapstructure:"timeout"`
	Width          int     `mapstructure:"width"`
	Height         int     `mapstructure:"height"`
	Scale          float64 `mapstructure:"scale"`
}

// Config 转换器配置
type Config struct {
	// ArticleHeader 正文每页的页眉标题
	ArticleHeader string `mapstructure:"article_header"`
	// ImageWidthCM 插图统一物理宽度（厘米）
	ImageWidthCM float64       `mapstructure:"image_width_cm"`
	Mermaid      MermaidConfig `mapstructure:"mermaid"`
	Debug        bool          `mapstructure:"debug"`
	Verbose      bool          `mapstructure:"verbose"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("article_header", "")
	v.SetDefault("image_width_cm", 15.0)
	v.SetDefault("mermaid.command", "mmdc")
	v.SetDefault("mermaid.timeout", 30)
	v.SetDefault("mermaid.width", 1200)
	v.SetDefault("mermaid.height", 800)
	v.SetDefault("mermaid.scale", 1.5)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
}

// Load 加载配置。configPath 为空时在当前目录和家目录中搜索
// .thesisdocx.yaml；找不到配置文件时使用内置默认值。
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".thesisdocx")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
			// 没有配置文件时用内置默认值
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}
