package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 创建日志记录器。debug 打开 Debug 级别；verbose 在
// Info 级别下保留逐块的转换日志。
func NewLogger(debug, verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()

	switch {
	case debug:
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case verbose:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		panic("初始化日志系统失败: " + err.Error())
	}

	return logger
}
