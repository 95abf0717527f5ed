package log

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
)

// RunTimeLayout 运行日志的时间格式，输出形如 [2006-01-02 15:04:05]
const RunTimeLayout = "[2006-01-02 15:04:05]"

func runTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(RunTimeLayout))
}

// RunEncoderConfig 运行日志只保留时间和消息两列，用空格分隔
func RunEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       runTimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func RunEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(RunEncoderConfig())
}

// NewRunPlugin 输出 "[时间] 消息" 格式的运行日志
func NewRunPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(RunEncoder(), zapcore.Lock(writer), enabler)
}

// NewRunFilePlugin 运行日志写入文件，同时镜像到标准输出
func NewRunFilePlugin(filePath string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	writer, closer := NewFileWriter(filePath)
	file := NewRunPlugin(writer, enabler)
	stdout := NewRunPlugin(zapcore.AddSync(os.Stdout), enabler)
	return zapcore.NewTee(file, stdout), closer
}
