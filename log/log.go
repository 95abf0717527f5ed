package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Plugin 是一个日志输出端，多个 Plugin 可以通过 NewLogger 合并
type Plugin = zapcore.Core

// NewLogger 将多个 plugin 合并为一个 logger，日志会同时写入每一个 plugin
func NewLogger(plugins ...Plugin) *zap.Logger {
	return zap.New(zapcore.NewTee(plugins...), DefaultOption()...)
}

// NewPlugin 以 json 格式输出诊断日志
func NewPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(DefaultEncoder(), writer, enabler)
}

func NewStderrPlugin(enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(zapcore.Lock(zapcore.AddSync(os.Stderr)), enabler)
}

// NewFileWriter 返回按大小切分的文件 writer，调用方负责关闭
func NewFileWriter(filePath string) (zapcore.WriteSyncer, io.Closer) {
	writer := NewLumberjackLogger(filePath)
	return zapcore.AddSync(writer), writer
}

func NewFilePlugin(filePath string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	writer, closer := NewFileWriter(filePath)
	return NewPlugin(writer, enabler), closer
}
